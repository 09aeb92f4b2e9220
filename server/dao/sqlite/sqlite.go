// Package sqlite provides a modernc.org/sqlite backed implementation of
// dao.Store.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/llparse/server/dao"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	grammars  *GrammarsDB
	parseLogs *ParseLogsDB
}

// NewDatastore opens (creating if necessary) a sqlite database under
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "llparse.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.grammars = &GrammarsDB{db: st.db}
	if err := st.grammars.init(); err != nil {
		return nil, err
	}

	st.parseLogs = &ParseLogsDB{db: st.db}
	if err := st.parseLogs.init(true); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Grammars() dao.GrammarRepository {
	return s.grammars
}

func (s *store) ParseLogs() dao.ParseLogRepository {
	return s.parseLogs
}

func (s *store) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
