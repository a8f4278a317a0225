package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Identity is the primary key shared by every table. IDs are generated on
// the client so a record can be referenced before it is persisted.
type Identity struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
}

func NewID() uuid.UUID { return uuid.New() }

// EnsureID assigns a fresh ID when none is set and returns the current one.
func (i *Identity) EnsureID() uuid.UUID {
	if i.ID == uuid.Nil {
		i.ID = NewID()
	}
	return i.ID
}

// Timestamps is embedded by entities that track modification time.
// Both columns are written by the persistence layer, never by callers.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// Validator is implemented by every entity; the write path calls it before
// INSERT and before full-row UPDATE.
type Validator interface {
	Validate() error
}

// Normalizer canonicalises column values. It runs before Validate on
// INSERT and on full-row UPDATE.
type Normalizer interface {
	Normalize()
}

// ColumnNormalizer is the Normalizer counterpart for column-map updates.
type ColumnNormalizer interface {
	NormalizeColumn(column string, v any) any
}

// Defaulter fills column defaults that depend on the write time.
// It runs on INSERT only, before Validate.
type Defaulter interface {
	ApplyDefaults(now time.Time)
}

// Day returns the calendar date y-m-d in UTC as a date column value.
func Day(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) datatypes.Date {
	t = t.UTC()
	return Day(t.Year(), t.Month(), t.Day())
}

// CalendarDate keeps the calendar day of d and pins it to UTC midnight.
func CalendarDate(d datatypes.Date) datatypes.Date {
	t := time.Time(d)
	if t.IsZero() {
		return d
	}
	return Day(t.Year(), t.Month(), t.Day())
}

func dateIsZero(d datatypes.Date) bool { return time.Time(d).IsZero() }

func formatDate(d datatypes.Date) string {
	if dateIsZero(d) {
		return "-"
	}
	return time.Time(d).Format("2006-01-02")
}
