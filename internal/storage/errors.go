package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"budgman/internal/core"
)

// classify maps driver errors onto the core error sentinels so callers can
// use errors.Is without knowing about SQLite result codes.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %v", core.ErrForeignKey, err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: %v", core.ErrConstraint, err)
	}
	// primary code only, when extended result codes are unavailable
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		if strings.Contains(se.Error(), "FOREIGN KEY") {
			return fmt.Errorf("%w: %v", core.ErrForeignKey, err)
		}
		return fmt.Errorf("%w: %v", core.ErrConstraint, err)
	}
	return err
}
