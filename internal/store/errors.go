package store

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nhle/classify/internal/model"
)

// mapConstraint translates SQLite constraint failures into the model's
// error kinds, keeping the driver message for logs. Other errors pass
// through unchanged.
func mapConstraint(err error) error {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return err
	}

	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %s", model.ErrDuplicateKey, serr.Error())
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %s", model.ErrMissingReference, serr.Error())
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return &model.ValidationError{Fields: []model.FieldError{{
			Field:   notNullColumn(serr.Error()),
			Message: "is required",
		}}}
	}

	// Without extended result codes only the primary code is set.
	if serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := serr.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %s", model.ErrMissingReference, msg)
		case strings.Contains(msg, "UNIQUE"), strings.Contains(msg, "PRIMARY KEY"):
			return fmt.Errorf("%w: %s", model.ErrDuplicateKey, msg)
		}
	}
	return err
}

// notNullColumn extracts "col" from "NOT NULL constraint failed: table.col".
func notNullColumn(msg string) string {
	i := strings.LastIndex(msg, ".")
	if i < 0 {
		return "value"
	}
	fields := strings.Fields(msg[i+1:])
	if len(fields) == 0 {
		return "value"
	}
	return fields[0]
}
