package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrRequired is a not-null violation detected before the write.
	ErrRequired = errors.New("required value missing")

	// ErrInvalidEnum is a value outside its closed enumeration.
	ErrInvalidEnum = errors.New("value not in enumeration")

	// ErrOutOfRange is a value outside its allowed range or column precision.
	ErrOutOfRange = errors.New("value out of range")
)

// FieldError reports which column of which entity failed validation.
type FieldError struct {
	Entity string
	Column string
	Value  any
	Err    error
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s.%s: %v", e.Entity, e.Column, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v (%v)", e.Entity, e.Column, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

type enum interface {
	Valid() bool
	String() string
}

// checks collects every violation of one entity so callers see them all.
type checks struct {
	entity string
	errs   []error
}

func newChecks(entity string) *checks { return &checks{entity: entity} }

func (c *checks) fail(column string, value any, err error) {
	c.errs = append(c.errs, &FieldError{Entity: c.entity, Column: column, Value: value, Err: err})
}

func (c *checks) required(column string, missing bool) {
	if missing {
		c.fail(column, nil, ErrRequired)
	}
}

func (c *checks) text(column, value string, maxLen int, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			c.fail(column, nil, ErrRequired)
		}
		return
	}
	if maxLen > 0 && len(value) > maxLen {
		c.fail(column, fmt.Sprintf("len=%d max=%d", len(value), maxLen), ErrOutOfRange)
	}
}

func (c *checks) oneOf(column string, v enum) {
	if v.String() == "" {
		c.fail(column, nil, ErrRequired)
		return
	}
	if !v.Valid() {
		c.fail(column, v.String(), ErrInvalidEnum)
	}
}

func (c *checks) intBetween(column string, v, lo, hi int) {
	if v < lo || v > hi {
		c.fail(column, v, ErrOutOfRange)
	}
}

// numeric rounds d to the column scale and checks precision and bounds.
// lo and hi are inclusive; nil means unbounded.
func (c *checks) numeric(column string, d *decimal.Decimal, n Numeric, lo, hi *decimal.Decimal) {
	fitted, ok := n.Fit(*d)
	if !ok {
		c.fail(column, d.String(), ErrOutOfRange)
		return
	}
	*d = fitted
	if (lo != nil && d.LessThan(*lo)) || (hi != nil && d.GreaterThan(*hi)) {
		c.fail(column, d.String(), ErrOutOfRange)
	}
}

func (c *checks) nullNumeric(column string, d *decimal.NullDecimal, n Numeric, lo, hi *decimal.Decimal) {
	if !d.Valid {
		return
	}
	c.numeric(column, &d.Decimal, n, lo, hi)
}

func (c *checks) err() error { return errors.Join(c.errs...) }
