package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ViolationKind names the integrity rule a statement broke.
type ViolationKind int

const (
	NotNullViolation ViolationKind = iota + 1
	UniqueViolation
	ForeignKeyViolation
	CheckViolation
)

// SQLSTATE codes for integrity constraint violations.
const (
	codeNotNull    = "23502"
	codeForeignKey = "23503"
	codeUnique     = "23505"
	codeCheck      = "23514"
)

var (
	ErrNotNullViolation    = errors.New("not-null constraint violation")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
)

func (k ViolationKind) String() string {
	switch k {
	case NotNullViolation:
		return "not_null"
	case UniqueViolation:
		return "unique"
	case ForeignKeyViolation:
		return "foreign_key"
	case CheckViolation:
		return "check"
	default:
		return "unknown"
	}
}

func (k ViolationKind) sentinel() error {
	switch k {
	case NotNullViolation:
		return ErrNotNullViolation
	case UniqueViolation:
		return ErrUniqueViolation
	case ForeignKeyViolation:
		return ErrForeignKeyViolation
	case CheckViolation:
		return ErrCheckViolation
	default:
		return nil
	}
}

// ConstraintError is a store rejection caused by an integrity rule. It
// wraps the driver error.
type ConstraintError struct {
	Kind       ViolationKind
	Table      string
	Column     string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("%s violation on %s.%s: %v", e.Kind, e.Table, e.Column, e.Err)
	case e.Constraint != "":
		return fmt.Sprintf("%s violation (%s): %v", e.Kind, e.Constraint, e.Err)
	default:
		return fmt.Sprintf("%s violation: %v", e.Kind, e.Err)
	}
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// Is lets callers match on the sentinel of the violation kind.
func (e *ConstraintError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Classify converts driver integrity errors from lib/pq or pgx into a
// *ConstraintError. Any other error is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if kind, ok := kindFor(string(pqErr.Code)); ok {
			return &ConstraintError{
				Kind:       kind,
				Table:      pqErr.Table,
				Column:     pqErr.Column,
				Constraint: pqErr.Constraint,
				Err:        err,
			}
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if kind, ok := kindFor(pgErr.Code); ok {
			return &ConstraintError{
				Kind:       kind,
				Table:      pgErr.TableName,
				Column:     pgErr.ColumnName,
				Constraint: pgErr.ConstraintName,
				Err:        err,
			}
		}
	}

	return err
}

func kindFor(code string) (ViolationKind, bool) {
	switch code {
	case codeNotNull:
		return NotNullViolation, true
	case codeUnique:
		return UniqueViolation, true
	case codeForeignKey:
		return ForeignKeyViolation, true
	case codeCheck:
		return CheckViolation, true
	default:
		return 0, false
	}
}
