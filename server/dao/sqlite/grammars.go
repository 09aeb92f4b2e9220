package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/llparse/server/dao"
	"github.com/google/uuid"
)

// GrammarsDB is the sqlite-backed dao.GrammarRepository.
type GrammarsDB struct {
	db *sql.DB
}

func (repo *GrammarsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		format TEXT NOT NULL,
		source TEXT NOT NULL,
		terminals INTEGER NOT NULL,
		nonterminals INTEGER NOT NULL,
		has_conflicts INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *GrammarsDB) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO grammars
		(id, name, format, source, terminals, nonterminals, has_conflicts, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	now := time.Now()
	_, err = stmt.ExecContext(ctx,
		newUUID.String(), g.Name, g.Format, g.Source,
		g.Terminals, g.NonTerminals, boolToInt(g.HasConflicts), now.Unix(),
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *GrammarsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	g := dao.Grammar{ID: id}
	var created int64
	var hasConflicts int

	row := repo.db.QueryRowContext(ctx, `SELECT name, format, source, terminals, nonterminals, has_conflicts, created
		FROM grammars WHERE id = ?;`, id.String())
	err := row.Scan(&g.Name, &g.Format, &g.Source, &g.Terminals, &g.NonTerminals, &hasConflicts, &created)
	if err != nil {
		return g, wrapDBError(err)
	}

	g.HasConflicts = hasConflicts != 0
	g.Created = time.Unix(created, 0)
	return g, nil
}

func (repo *GrammarsDB) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, format, source, terminals, nonterminals, has_conflicts, created
		FROM grammars ORDER BY created;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Grammar
	for rows.Next() {
		var g dao.Grammar
		var id string
		var created int64
		var hasConflicts int

		if err := rows.Scan(&id, &g.Name, &g.Format, &g.Source, &g.Terminals, &g.NonTerminals, &hasConflicts, &created); err != nil {
			return nil, wrapDBError(err)
		}

		g.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		g.HasConflicts = hasConflicts != 0
		g.Created = time.Unix(created, 0)
		all = append(all, g)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *GrammarsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM grammars WHERE id = ?`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *GrammarsDB) Close() error {
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
