package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	Cascade = "CASCADE"
	SetNull = "SET NULL"
)

// ForeignKeyRule is one relationship storage must enforce.
type ForeignKeyRule struct {
	Table    string
	Column   string
	Parent   string
	OnDelete string
}

func (r ForeignKeyRule) String() string {
	return fmt.Sprintf("%s.%s -> %s ON DELETE %s", r.Table, r.Column, r.Parent, r.OnDelete)
}

// ForeignKeyRules is the full relationship table. Deleting a parent removes
// owned children; audit logs and chat turns only lose the reference.
var ForeignKeyRules = []ForeignKeyRule{
	{"fields", "user_id", "users", Cascade},
	{"image_inferences", "user_id", "users", Cascade},
	{"chat_history", "user_id", "users", Cascade},
	{"weather_alerts", "user_id", "users", Cascade},
	{"irrigation_schedules", "user_id", "users", Cascade},
	{"device_tokens", "user_id", "users", Cascade},
	{"system_logs", "user_id", "users", SetNull},
	{"crop_records", "field_id", "fields", Cascade},
	{"image_inferences", "field_id", "fields", Cascade},
	{"weather_alerts", "field_id", "fields", Cascade},
	{"irrigation_schedules", "field_id", "fields", Cascade},
	{"chat_history", "field_id", "fields", SetNull},
	{"recommendations", "inference_id", "image_inferences", Cascade},
}

// storedKey is a foreign key as reported by the database catalog.
type storedKey struct {
	ColumnName  string
	ParentTable string
	OnDelete    string
}

// VerifyForeignKeys reports every rule that storage does not enforce
// exactly, joined into one error.
func VerifyForeignKeys(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	cache := map[string][]storedKey{}
	var errs []error
	for _, rule := range ForeignKeyRules {
		keys, ok := cache[rule.Table]
		if !ok {
			var err error
			if keys, err = foreignKeys(db, rule.Table); err != nil {
				return fmt.Errorf("inspect %s: %w", rule.Table, err)
			}
			cache[rule.Table] = keys
		}
		if err := match(rule, keys); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func match(rule ForeignKeyRule, keys []storedKey) error {
	for _, k := range keys {
		if !strings.EqualFold(k.ColumnName, rule.Column) || !strings.EqualFold(k.ParentTable, rule.Parent) {
			continue
		}
		if !strings.EqualFold(k.OnDelete, rule.OnDelete) {
			return fmt.Errorf("%s: stored ON DELETE %s", rule, k.OnDelete)
		}
		return nil
	}
	return fmt.Errorf("%s: missing", rule)
}

func foreignKeys(db *gorm.DB, table string) ([]storedKey, error) {
	switch db.Dialector.Name() {
	case "sqlite":
		type fkInfo struct {
			ID       int
			Seq      int
			Table    string
			From     string
			To       string
			OnUpdate string
			OnDelete string
			Match    string
		}
		var rows []fkInfo
		// PRAGMA arguments cannot be bound.
		if err := db.Raw(fmt.Sprintf("PRAGMA foreign_key_list(%q)", table)).Scan(&rows).Error; err != nil {
			return nil, err
		}
		out := make([]storedKey, 0, len(rows))
		for _, r := range rows {
			out = append(out, storedKey{ColumnName: r.From, ParentTable: r.Table, OnDelete: r.OnDelete})
		}
		return out, nil
	case "postgres":
		var out []storedKey
		err := db.Raw(`
SELECT kcu.column_name, ccu.table_name AS parent_table, rc.delete_rule AS on_delete
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
  ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.constraint_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND tc.table_schema = current_schema()
  AND tc.table_name = ?`, table).Scan(&out).Error
		return out, err
	}
	return nil, fmt.Errorf("foreign key inspection not supported for %s", db.Dialector.Name())
}
