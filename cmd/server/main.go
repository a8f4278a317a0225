package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"agri/config"
	"agri/database"
	"agri/pkg/logging"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

type app struct {
	cfg config.AppConfig
	log *slog.Logger
}

// open connects using the loaded config. The returned func closes the pool.
func (a *app) open(ctx context.Context) (*gorm.DB, func(), error) {
	db, err := database.Open(ctx, a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

func rootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "agri",
		Short:         "Agriculture platform persistence service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.New(os.Stderr, cfg.LogLevel)
			slog.SetDefault(a.log)
			a.log.Debug("config loaded", "config", cfg.String())
			return nil
		},
	}
	root.AddCommand(
		serveCommand(a),
		migrateCommand(a),
		importCropsCommand(a),
		schedulesCommand(a),
		pruneLogsCommand(a),
		versionCommand(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{log: logging.New(os.Stderr, "info")}
	if err := rootCommand(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
