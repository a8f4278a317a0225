package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agri/config"
	"agri/entities"
	"agri/pkg/logging"
)

type Options struct {
	Logger          logger.Interface
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Models lists every table in dependency order, parents first.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Field{},
		&entities.CropRecord{},
		&entities.ImageInference{},
		&entities.Recommendation{},
		&entities.ChatHistory{},
		&entities.WeatherAlert{},
		&entities.IrrigationSchedule{},
		&entities.DeviceToken{},
		&entities.SystemLog{},
		&entities.ModelMetric{},
	}
}

// Open connects to the database selected by cfg.DBDriver.
func Open(ctx context.Context, cfg config.AppConfig, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
	db, err := New(dialector, Options{
		Logger:          logging.Gorm(log, cfg.LogLevel),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}
	log.Info("database opened", "driver", cfg.DBDriver)
	return db, nil
}

// SQLiteDSN appends the connection pragmas every SQLite handle needs.
// Foreign keys are off by default in SQLite and are per connection.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// New opens dialector with the write-path callbacks installed.
func New(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Default.LogMode(logger.Silent)
	}
	// Driver errors are left untranslated; store.Classify needs the
	// constraint name that gorm's translation drops.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  opts.Logger,
		NowFunc: Now,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns <= 0 || opts.MaxIdleConns > opts.MaxOpenConns {
		opts.MaxIdleConns = opts.MaxOpenConns
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if db.Dialector.Name() == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	if err := registerCallbacks(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Now is the clock used for every stored timestamp: UTC at the microsecond
// resolution both drivers can round-trip.
func Now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// Migrate creates or alters every table and then checks that storage
// enforces the relationship rules.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := VerifyForeignKeys(ctx, db); err != nil {
		return fmt.Errorf("verify foreign keys: %w", err)
	}
	return nil
}

// VerifySchema checks that every table and column of the models exists and
// that the relationship rules hold.
func VerifySchema(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	m := db.Migrator()
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		if !m.HasTable(stmt.Schema.Table) {
			return fmt.Errorf("table %s missing", stmt.Schema.Table)
		}
		for _, col := range stmt.Schema.DBNames {
			if !m.HasColumn(model, col) {
				return fmt.Errorf("column %s.%s missing", stmt.Schema.Table, col)
			}
		}
	}
	return VerifyForeignKeys(ctx, db)
}
