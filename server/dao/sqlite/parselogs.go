package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/llparse/server/dao"
	"github.com/google/uuid"
)

// ParseLogsDB is the sqlite-backed dao.ParseLogRepository.
type ParseLogsDB struct {
	db *sql.DB
}

func (repo *ParseLogsDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS parse_logs (
		id TEXT NOT NULL PRIMARY KEY,
		grammar_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES grammars(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		input TEXT NOT NULL,
		accepted INTEGER NOT NULL,
		classification TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *ParseLogsDB) Create(ctx context.Context, p dao.ParseLog) (dao.ParseLog, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.ParseLog{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()
	_, err = repo.db.ExecContext(ctx, `INSERT INTO parse_logs
		(id, grammar_id, input, accepted, classification, created)
		VALUES (?, ?, ?, ?, ?, ?)`,
		newUUID.String(), p.GrammarID.String(), p.Input, boolToInt(p.Accepted), p.Classification, now.Unix(),
	)
	if err != nil {
		return dao.ParseLog{}, wrapDBError(err)
	}

	p.ID = newUUID
	p.Created = now
	return p, nil
}

func (repo *ParseLogsDB) GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.ParseLog, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, input, accepted, classification, created
		FROM parse_logs WHERE grammar_id = ? ORDER BY created;`, grammarID.String())
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.ParseLog
	for rows.Next() {
		p := dao.ParseLog{GrammarID: grammarID}
		var id string
		var accepted int
		var created int64

		if err := rows.Scan(&id, &p.Input, &accepted, &p.Classification, &created); err != nil {
			return nil, wrapDBError(err)
		}

		p.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		p.Accepted = accepted != 0
		p.Created = time.Unix(created, 0)
		all = append(all, p)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}
	return all, nil
}

func (repo *ParseLogsDB) Close() error {
	return nil
}
