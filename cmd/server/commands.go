package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"agri/database"
	auditRepo "agri/pkg/audit/repository"
	auditRepoImp "agri/pkg/audit/repositoryImp"
	"agri/pkg/audit/retention"
	"agri/pkg/croprecord/importer"
	cropRepoImp "agri/pkg/croprecord/repositoryImp"
	healthCtrlImp "agri/pkg/health/controllerImp"
	irrigationRepoImp "agri/pkg/irrigation/repositoryImp"
	irrigationSvcImp "agri/pkg/irrigation/serviceImp"
	"agri/pkg/middleware"
	"agri/router"
)

func serveCommand(a *app) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the health and metrics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, closeDB, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			if migrate {
				if err := database.Migrate(ctx, db); err != nil {
					return err
				}
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			if sqlDB, err := db.DB(); err == nil {
				reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, a.cfg.DBDriver))
			}
			metrics := middleware.NewMetrics(reg)

			var audit auditRepo.AuditRepository
			if a.cfg.AuditEnabled {
				audit = auditRepoImp.New(db)
				if a.cfg.AuditRetention > 0 {
					p := retention.New(audit, a.cfg.AuditRetention, a.log)
					p.OnPruned = metrics.AuditPruned
					go p.Run(ctx, 6*time.Hour)
				}
			}

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true
			router.New(e, router.Deps{
				Health:   healthCtrlImp.NewHealthCtrl(db),
				Metrics:  metrics,
				Gatherer: reg,
				Audit:    audit,
				Log:      a.log,
			})

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("listening", "addr", ":"+a.cfg.Port)
				errCh <- e.Start(":" + a.cfg.Port)
			}()
			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			a.log.Info("shutting down")
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply schema migrations before serving")
	return cmd
}

func migrateCommand(a *app) *cobra.Command {
	var verifyOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table, then verify the relationship rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, closeDB, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			if verifyOnly {
				if err := database.VerifySchema(ctx, db); err != nil {
					return err
				}
				a.log.Info("schema verified")
				return nil
			}
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			a.log.Info("schema migrated", "tables", len(database.Models()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&verifyOnly, "verify", false, "only check the existing schema")
	return cmd
}

func importCropsCommand(a *app) *cobra.Command {
	var fieldID string
	cmd := &cobra.Command{
		Use:   "import-crops --field <uuid> <sheet.xlsx|sheet.csv>",
		Short: "Import historical crop seasons for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(fieldID)
			if err != nil {
				return fmt.Errorf("--field: %w", err)
			}
			ctx := cmd.Context()
			db, closeDB, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			res, err := importer.New(cropRepoImp.New(db), a.log).ImportFile(ctx, args[0], id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows, skipped %d\n", res.Imported, len(res.Skipped))
			for _, s := range res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "  "+s.Error())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fieldID, "field", "", "id of the field the seasons belong to")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func schedulesCommand(a *app) *cobra.Command {
	var fieldID, from, to string
	cmd := &cobra.Command{
		Use:   "schedules --field <uuid> [--from YYYY-MM-DD] [--to YYYY-MM-DD]",
		Short: "List irrigation schedules of a field by farm-local day",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(fieldID)
			if err != nil {
				return fmt.Errorf("--field: %w", err)
			}
			ctx := cmd.Context()
			db, closeDB, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			loc := a.cfg.Location()
			svc := irrigationSvcImp.NewIrrigationService(irrigationRepoImp.New(db), loc, a.log)
			ss, err := svc.List(ctx, id, from, to)
			if err != nil {
				return err
			}
			for _, s := range ss {
				status := "pending"
				if s.IsCompleted {
					status = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s L  %s\n",
					s.RecommendedDate.In(loc).Format("2006-01-02 15:04"), s.WaterVolumeLiters.StringFixed(2), status)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d schedules\n", len(ss))
			return nil
		},
	}
	cmd.Flags().StringVar(&fieldID, "field", "", "id of the field")
	cmd.Flags().StringVar(&from, "from", "", "first day, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "last day, inclusive")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func pruneLogsCommand(a *app) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune-logs",
		Short: "Delete system logs past the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				olderThan = a.cfg.AuditRetention
			}
			if olderThan <= 0 {
				return errors.New("retention must be positive")
			}
			ctx := cmd.Context()
			db, closeDB, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := retention.New(auditRepoImp.New(db), olderThan, a.log).PruneOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d system logs\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "retention window (default AUDIT_RETENTION)")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
