// Package dao provides data access objects for persisting the llparse
// server's domain objects: uploaded grammars and the parse requests run
// against them.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store holds all the repositories needed by the server.
type Store interface {
	Grammars() GrammarRepository
	ParseLogs() ParseLogRepository
	Close() error
}

// GrammarRepository persists uploaded grammars.
type GrammarRepository interface {
	Create(ctx context.Context, g Grammar) (Grammar, error)
	GetByID(ctx context.Context, id uuid.UUID) (Grammar, error)
	GetAll(ctx context.Context) ([]Grammar, error)
	Delete(ctx context.Context, id uuid.UUID) (Grammar, error)
	Close() error
}

// Grammar is a stored grammar: its source text plus the surface format it
// was parsed with, kept alongside the uploaded text so it can be re-parsed
// on demand rather than serializing the grammar.Grammar value itself.
type Grammar struct {
	ID           uuid.UUID
	Name         string
	Format       string // "text" or "toml"
	Source       string
	Terminals    int
	NonTerminals int
	HasConflicts bool
	Created      time.Time
}

// ParseLogRepository records the outcome of parse requests run against a
// stored grammar, for diagnostic replay.
type ParseLogRepository interface {
	Create(ctx context.Context, p ParseLog) (ParseLog, error)
	GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]ParseLog, error)
	Close() error
}

// ParseLog is one recorded parse attempt against a stored grammar.
type ParseLog struct {
	ID             uuid.UUID
	GrammarID      uuid.UUID
	Input          string
	Accepted       bool
	Classification string // empty on accept
	Created        time.Time
}
