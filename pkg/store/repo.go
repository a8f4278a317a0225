package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agri/entities"
)

// Scope narrows a query, see gorm.DB.Scopes.
type Scope = func(*gorm.DB) *gorm.DB

// Repo is the CRUD surface shared by every entity table. Entity packages
// embed it and add their own lookups on top of DB.
type Repo[T any] struct {
	db *gorm.DB

	once    sync.Once
	indexed map[string]bool
	table   string
	err     error
}

func NewRepo[T any](db *gorm.DB) *Repo[T] { return &Repo[T]{db: db} }

// DB returns a session bound to ctx.
func (r *Repo[T]) DB(ctx context.Context) *gorm.DB { return r.db.WithContext(ctx) }

// WithTx returns a repository that runs on tx instead of the root handle.
func (r *Repo[T]) WithTx(tx *gorm.DB) *Repo[T] { return &Repo[T]{db: tx} }

func (r *Repo[T]) Create(ctx context.Context, v *T) error {
	return Classify(r.DB(ctx).Create(v).Error)
}

func (r *Repo[T]) CreateInBatches(ctx context.Context, vs []T, size int) error {
	if len(vs) == 0 {
		return nil
	}
	return Classify(r.DB(ctx).CreateInBatches(vs, size).Error)
}

func (r *Repo[T]) FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*T, error) {
	q := r.DB(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	var v T
	if err := q.Where("id = ?", id).Take(&v).Error; err != nil {
		return nil, Classify(err)
	}
	return &v, nil
}

// FindBy returns the rows whose column equals value, newest first. Only
// indexed columns are accepted.
func (r *Repo[T]) FindBy(ctx context.Context, column string, value any) ([]T, error) {
	if err := r.parse(); err != nil {
		return nil, err
	}
	if !r.indexed[column] {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnindexedFilter, r.table, column)
	}
	return r.List(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: UTC(value)})
	}, NewestFirst)
}

// List runs the scopes against the table. Without an ordering scope the
// row order is unspecified.
func (r *Repo[T]) List(ctx context.Context, scopes ...Scope) ([]T, error) {
	var out []T
	if err := r.DB(ctx).Model(new(T)).Scopes(scopes...).Find(&out).Error; err != nil {
		return nil, Classify(err)
	}
	return out, nil
}

// Update writes every column of v except id and created_at. Associations
// are left alone.
func (r *Repo[T]) Update(ctx context.Context, v *T) error {
	res := r.DB(ctx).Model(v).Select("*").Omit(clause.Associations, "id", "created_at").Updates(v)
	if res.Error != nil {
		return Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Patch sets the given columns on the row with the given id. It bypasses
// entity validation; storage constraints still apply.
func (r *Repo[T]) Patch(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	res := r.DB(ctx).Model(new(T)).Where("id = ?", id).Omit("id", "created_at").Updates(cols)
	if res.Error != nil {
		return Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(new(T)).Scopes(scopes...).Count(&n).Error
	return n, Classify(err)
}

// Transaction runs fn in a database transaction; fn's error rolls it back.
func (r *Repo[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return Classify(r.DB(ctx).Transaction(fn))
}

func (r *Repo[T]) parse() error {
	r.once.Do(func() {
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(new(T)); err != nil {
			r.err = err
			return
		}
		r.table = stmt.Schema.Table
		r.indexed = make(map[string]bool)
		for _, f := range stmt.Schema.Fields {
			if f.DBName == "" {
				continue
			}
			_, idx := f.TagSettings["INDEX"]
			_, uniq := f.TagSettings["UNIQUEINDEX"]
			if idx || uniq || f.PrimaryKey {
				r.indexed[f.DBName] = true
			}
		}
	})
	return r.err
}

// NewestFirst orders by creation time, most recent first.
func NewestFirst(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }

// Between restricts column to the closed interval [from, to].
func Between(column string, from, to any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Gte{Column: clause.Column{Name: column}, Value: UTC(from)}).
			Where(clause.Lte{Column: clause.Column{Name: column}, Value: UTC(to)})
	}
}

// Eq restricts column to value.
func Eq(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: UTC(value)})
	}
}

// UTC moves a time argument to UTC and a date to UTC midnight, matching
// how rows are written. Other values are returned unchanged.
func UTC(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t != nil {
			u := t.UTC()
			return &u
		}
	case datatypes.Date:
		return entities.CalendarDate(t)
	case *datatypes.Date:
		if t != nil {
			d := entities.CalendarDate(*t)
			return &d
		}
	}
	return v
}

// Limit caps the result size; n <= 0 means no cap.
func Limit(n int) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	}
}

// CRUD is the part of Repo that entity repository interfaces expose.
type CRUD[T any] interface {
	Create(ctx context.Context, v *T) error
	FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*T, error)
	FindBy(ctx context.Context, column string, value any) ([]T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, scopes ...Scope) (int64, error)
}
