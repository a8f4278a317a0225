package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type AppConfig struct {
	Port     string
	Timezone string

	DBDriver          string
	DBPath            string
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	LogLevel       string
	AuditEnabled   bool
	AuditRetention time.Duration
}

// Load reads .env when present, then the process environment.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("cfg: loading .env", "err", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		Timezone:          get("TZ", "Asia/Bangkok"),
		DBDriver:          strings.ToLower(get("DB_DRIVER", DriverSQLite)),
		DBPath:            get("DB_PATH", "agri.db"),
		DatabaseURL:       get("DATABASE_URL", ""),
		DBMaxOpenConns:    parseInt(get("DB_MAX_OPEN_CONNS", ""), 10),
		DBMaxIdleConns:    parseInt(get("DB_MAX_IDLE_CONNS", ""), 2),
		DBConnMaxLifetime: parseDuration(get("DB_CONN_MAX_LIFETIME", ""), 30*time.Minute),
		LogLevel:          strings.ToLower(get("LOG_LEVEL", "info")),
		AuditEnabled:      parseBool(get("AUDIT_ENABLED", ""), true),
		AuditRetention:    parseDuration(get("AUDIT_RETENTION", ""), 90*24*time.Hour),
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required when DB_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TZ %q: %w", c.Timezone, err)
	}
	return nil
}

// Location is the farm-local zone used to read calendar days. An unknown
// zone falls back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || c.Timezone == "" {
		return time.UTC
	}
	return loc
}

func (c AppConfig) String() string {
	db := c.DBPath
	if c.DBDriver == DriverPostgres {
		db = redactURL(c.DatabaseURL)
	}
	return fmt.Sprintf("port=%s tz=%s db=%s(%s) pool=%d/%d/%s log=%s audit=%v retention=%s",
		c.Port, c.Timezone, c.DBDriver, db,
		c.DBMaxOpenConns, c.DBMaxIdleConns, c.DBConnMaxLifetime,
		c.LogLevel, c.AuditEnabled, c.AuditRetention)
}

func redactURL(raw string) string {
	if raw == "" {
		return "<none>"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<set>"
	}
	user := "?"
	if u.User != nil {
		user = u.User.Username()
	}
	return fmt.Sprintf("%s@%s/%s", user, u.Host, strings.TrimPrefix(u.Path, "/"))
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseBool(v string, def bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDuration accepts Go durations plus a "d" suffix for days.
func parseDuration(v string, def time.Duration) time.Duration {
	if strings.HasSuffix(v, "d") {
		if n, err := strconv.Atoi(strings.TrimSuffix(v, "d")); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
