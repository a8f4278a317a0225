package store

import (
	"errors"
	"fmt"
	"strings"

	"agri/entities"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate key")
	ErrForeignKey     = errors.New("foreign key violation")
	ErrCheckViolation = errors.New("check constraint violated")
	// ErrUnindexedFilter rejects FindBy lookups that would scan a table.
	ErrUnindexedFilter = errors.New("filter column is not indexed")

	// A failed CHECK also matches the validation sentinel for its rule.
	// Range checks are named chk_<table>_<column>_range.
	errEnumCheck  = fmt.Errorf("%w: %w", ErrCheckViolation, entities.ErrInvalidEnum)
	errRangeCheck = fmt.Errorf("%w: %w", ErrCheckViolation, entities.ErrOutOfRange)
)

const rangeCheckSuffix = "_range"

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Classify maps driver and gorm errors onto the package sentinels. The
// driver error stays in the chain. Errors it does not recognise, including
// validation errors from the entities package, are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if kind := kindOf(err); kind != nil && !errors.Is(err, kind) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}

func kindOf(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errEnumCheck
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrForeignKey
		case pgNotNullViolation:
			return entities.ErrRequired
		case pgCheckViolation:
			return checkKind(pgErr.ConstraintName)
		}
		return nil
	}

	// glebarez/sqlite reports extended result codes only through the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKey
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return entities.ErrRequired
	case strings.Contains(msg, "CHECK constraint failed"):
		_, name, _ := strings.Cut(msg, "CHECK constraint failed:")
		name, _, _ = strings.Cut(strings.TrimSpace(name), " ")
		return checkKind(name)
	}
	return nil
}

func checkKind(constraint string) error {
	if strings.HasSuffix(constraint, rangeCheckSuffix) {
		return errRangeCheck
	}
	return errEnumCheck
}
