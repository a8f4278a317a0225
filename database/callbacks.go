package database

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"agri/entities"
	"agri/pkg/store"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

func registerCallbacks(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("agri:prepare_create", prepareCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("agri:prepare_update", prepareUpdate)
}

// prepareCreate assigns ids, applies defaults, validates and stamps both
// timestamps. Caller supplied timestamps are overwritten.
func prepareCreate(tx *gorm.DB) {
	if tx.Error != nil || tx.Statement.Schema == nil {
		return
	}
	s := tx.Statement.Schema
	ctx := tx.Statement.Context
	now := tx.Config.NowFunc()

	eachRow(tx.Statement.ReflectValue, func(rv reflect.Value) bool {
		if pk := s.PrioritizedPrimaryField; pk != nil && pk.FieldType == uuidType {
			if _, zero := pk.ValueOf(ctx, rv); zero {
				if err := pk.Set(ctx, rv, uuid.New()); err != nil {
					tx.AddError(err)
					return false
				}
			}
		}
		obj := rv.Addr().Interface()
		if n, ok := obj.(entities.Normalizer); ok {
			n.Normalize()
		}
		utcTimes(ctx, s, rv)
		if d, ok := obj.(entities.Defaulter); ok {
			d.ApplyDefaults(now)
		}
		if v, ok := obj.(entities.Validator); ok {
			if err := v.Validate(); err != nil {
				tx.AddError(err)
				return false
			}
		}
		for _, name := range []string{"CreatedAt", "UpdatedAt"} {
			if f := s.LookUpField(name); f != nil && f.DataType == schema.Time {
				if err := f.Set(ctx, rv, now); err != nil {
					tx.AddError(err)
					return false
				}
			}
		}
		return true
	})
}

// prepareUpdate keeps created_at immutable, normalises the written values
// and validates full-row updates. Column-map updates are checked by storage
// constraints only.
func prepareUpdate(tx *gorm.DB) {
	if tx.Error != nil || tx.Statement.Schema == nil {
		return
	}
	s := tx.Statement.Schema
	if f := s.LookUpField("CreatedAt"); f != nil {
		tx.Statement.Omits = append(tx.Statement.Omits, f.DBName)
	}

	if cols, ok := tx.Statement.Dest.(map[string]any); ok {
		normalizeColumns(s, cols)
		return
	}
	dest := reflect.ValueOf(tx.Statement.Dest)
	if dest.Kind() != reflect.Ptr || reflect.Indirect(dest).Kind() != reflect.Struct {
		return
	}
	if n, ok := dest.Interface().(entities.Normalizer); ok {
		n.Normalize()
	}
	utcTimes(tx.Statement.Context, s, dest.Elem())
	if v, ok := dest.Interface().(entities.Validator); ok {
		if err := v.Validate(); err != nil {
			tx.AddError(err)
		}
	}
}

// utcTimes moves every time column of row to UTC and pins dates to UTC
// midnight. SQLite compares stored times as text, so all rows must share
// one offset.
func utcTimes(ctx context.Context, s *schema.Schema, row reflect.Value) {
	for _, f := range s.Fields {
		if f.DBName == "" || (f.DataType != schema.Time && f.DataType != "date") {
			continue
		}
		fv := f.ReflectValueOf(ctx, row)
		if !fv.CanSet() {
			continue
		}
		switch t := fv.Interface().(type) {
		case time.Time:
			if !t.IsZero() {
				fv.Set(reflect.ValueOf(t.UTC()))
			}
		case *time.Time:
			if t != nil {
				u := t.UTC()
				fv.Set(reflect.ValueOf(&u))
			}
		case datatypes.Date:
			if !time.Time(t).IsZero() {
				fv.Set(reflect.ValueOf(entities.CalendarDate(t)))
			}
		case *datatypes.Date:
			if t != nil {
				d := entities.CalendarDate(*t)
				fv.Set(reflect.ValueOf(&d))
			}
		}
	}
}

// normalizeColumns applies the same rules as Normalize and utcTimes to a
// column-map update.
func normalizeColumns(s *schema.Schema, cols map[string]any) {
	cn, _ := reflect.New(s.ModelType).Interface().(entities.ColumnNormalizer)
	for k, v := range cols {
		f := s.LookUpField(k)
		if f == nil {
			continue
		}
		cols[k] = store.UTC(v)
		if cn != nil {
			cols[k] = cn.NormalizeColumn(f.DBName, cols[k])
		}
	}
}

func eachRow(rv reflect.Value, fn func(reflect.Value) bool) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			el := reflect.Indirect(rv.Index(i))
			if el.Kind() == reflect.Struct && el.CanAddr() && !fn(el) {
				return
			}
		}
	case reflect.Struct:
		if rv.CanAddr() {
			fn(rv)
		}
	}
}
