package svc

import (
	"context"
	"errors"

	"github.com/dekarrin/llparse/internal/advisory"
	"github.com/dekarrin/llparse/internal/grammar"
	"github.com/dekarrin/llparse/internal/lex"
	"github.com/dekarrin/llparse/internal/recognize"
	"github.com/dekarrin/llparse/internal/surface"
	"github.com/dekarrin/llparse/internal/table"
	"github.com/dekarrin/llparse/server/dao"
	"github.com/dekarrin/llparse/server/serr"
	"github.com/google/uuid"
)

// loadSurface parses rec's stored source text in its stored format back
// into a grammar.Grammar. Grammars are never serialized directly; the
// source text is the single source of truth, re-parsed on demand.
func loadSurface(rec dao.Grammar) (grammar.Grammar, error) {
	switch rec.Format {
	case "toml":
		return surface.LoadTOML([]byte(rec.Source))
	default:
		return surface.Load(rec.Source, surface.Options{})
	}
}

// UploadGrammar parses and validates source (in the given format, "text" or
// "toml"), persists it, and returns the stored record plus any LL(1)
// conflicts found while building its table.
func (svc Service) UploadGrammar(ctx context.Context, name, format, source string) (dao.Grammar, []table.Conflict, error) {
	rec := dao.Grammar{Name: name, Format: format, Source: source}

	g, err := loadSurface(rec)
	if err != nil {
		return dao.Grammar{}, nil, err
	}

	_, conflicts, err := table.Build(g)
	if err != nil {
		return dao.Grammar{}, nil, err
	}

	rec.Terminals = len(g.Terminals())
	rec.NonTerminals = len(g.NonTerminals())
	rec.HasConflicts = len(conflicts) > 0

	rec, err = svc.DB.Grammars().Create(ctx, rec)
	if err != nil {
		return dao.Grammar{}, nil, serr.WrapDB("store grammar", err)
	}

	return rec, conflicts, nil
}

// GetGrammar retrieves a stored grammar's record.
func (svc Service) GetGrammar(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	rec, err := svc.DB.Grammars().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, serr.ErrNotFound
		}
		return dao.Grammar{}, serr.WrapDB("retrieve grammar", err)
	}
	return rec, nil
}

// DeleteGrammar removes a stored grammar.
func (svc Service) DeleteGrammar(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	rec, err := svc.DB.Grammars().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Grammar{}, serr.ErrNotFound
		}
		return dao.Grammar{}, serr.WrapDB("delete grammar", err)
	}
	return rec, nil
}

// BuildTable rebuilds the LL(1) parsing table for a stored grammar.
func (svc Service) BuildTable(ctx context.Context, id uuid.UUID) (table.Table, []table.Conflict, error) {
	rec, err := svc.GetGrammar(ctx, id)
	if err != nil {
		return table.Table{}, nil, err
	}

	g, err := loadSurface(rec)
	if err != nil {
		return table.Table{}, nil, err
	}

	return table.Build(g)
}

// ParseOutcome reports the result of recognizing one input against a
// stored grammar.
type ParseOutcome struct {
	Accepted       bool
	Classification string
	Token          string
	Stack          []string
}

// Parse tokenizes and recognizes input against a stored grammar's table,
// logging the outcome alongside the grammar for later inspection.
func (svc Service) Parse(ctx context.Context, id uuid.UUID, input string) (ParseOutcome, error) {
	rec, err := svc.GetGrammar(ctx, id)
	if err != nil {
		return ParseOutcome{}, err
	}

	g, err := loadSurface(rec)
	if err != nil {
		return ParseOutcome{}, err
	}

	tbl, _, err := table.Build(g)
	if err != nil {
		return ParseOutcome{}, err
	}

	stream, err := lex.StreamOf(input)
	if err != nil {
		return ParseOutcome{}, err
	}

	outcome := ParseOutcome{Accepted: true}

	runErr := recognize.Run(tbl, g, stream)
	if runErr != nil {
		var parseErr *recognize.ParseError
		if errors.As(runErr, &parseErr) {
			outcome.Accepted = false
			outcome.Classification = parseErr.Classification.String()
			outcome.Token = parseErr.Token.String()
			for _, s := range parseErr.Stack {
				outcome.Stack = append(outcome.Stack, s.String())
			}
		} else {
			return ParseOutcome{}, runErr
		}
	}

	logEntry := dao.ParseLog{
		GrammarID:      id,
		Input:          input,
		Accepted:       outcome.Accepted,
		Classification: outcome.Classification,
	}
	if _, err := svc.DB.ParseLogs().Create(ctx, logEntry); err != nil {
		return outcome, serr.WrapDB("log parse attempt", err)
	}

	return outcome, nil
}

// AdvisoryResult carries an advisory rewrite alongside the table it
// produces, so a caller can compare it against the original without the
// rewrite ever touching the stored grammar.
type AdvisoryResult struct {
	Note      string
	Table     table.Table
	Conflicts []table.Conflict
}

// AdviseLeftRecursion runs the opt-in left-recursion removal rewrite
// against a stored grammar and reports the rewritten grammar's table.
func (svc Service) AdviseLeftRecursion(ctx context.Context, id uuid.UUID) (AdvisoryResult, error) {
	return svc.runAdvisory(ctx, id, advisory.RemoveLeftRecursion)
}

// AdviseLeftFactor runs the opt-in left-factoring rewrite against a stored
// grammar and reports the rewritten grammar's table.
func (svc Service) AdviseLeftFactor(ctx context.Context, id uuid.UUID) (AdvisoryResult, error) {
	return svc.runAdvisory(ctx, id, advisory.LeftFactor)
}

func (svc Service) runAdvisory(ctx context.Context, id uuid.UUID, rewrite func(grammar.Grammar) (advisory.Result, error)) (AdvisoryResult, error) {
	rec, err := svc.GetGrammar(ctx, id)
	if err != nil {
		return AdvisoryResult{}, err
	}

	g, err := loadSurface(rec)
	if err != nil {
		return AdvisoryResult{}, err
	}

	result, err := rewrite(g)
	if err != nil {
		return AdvisoryResult{}, err
	}

	tbl, conflicts, err := table.Build(result.Grammar)
	if err != nil {
		return AdvisoryResult{}, err
	}

	return AdvisoryResult{Note: result.Note, Table: tbl, Conflicts: conflicts}, nil
}
