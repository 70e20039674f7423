package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"care-reminders/internal/adapters/storage/postgres"
	"care-reminders/internal/domain/notifications"
	"care-reminders/internal/domain/reminders"
	"care-reminders/internal/platform/config"
	"care-reminders/internal/router"

	"github.com/spf13/cobra"
)

// @title Care Reminders API
// @version 1.0
// @description Motor local de recordatorios de medicación: horarios, dosis tomadas, reposiciones y notificaciones.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:          "reminders",
		Short:        "Medication reminder scheduling engine",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(refillsCmd())
	rootCmd.AddCommand(pruneCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the monitoring loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Evaluate due reminders once and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(a.reminders.CheckMedicationReminders(ctx))
		},
	}
}

func refillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refills",
		Short: "Evaluate refill reminders once and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			return printJSON(a.reminders.CheckRefillReminders(ctx))
		},
	}
}

func pruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove taken-log days older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			days, _ := cmd.Flags().GetInt("days")
			if days < 0 {
				days = a.cfg.TakenRetentionDays
			}
			removed := a.reminders.PruneTakenLog(ctx, days)
			fmt.Printf("Removed %d day(s) from the taken log.\n", removed)
			return nil
		},
	}
	cmd.Flags().Int("days", -1, "Days to keep (default TAKEN_RETENTION_DAYS)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres key-value table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsePostgres() {
				return errors.New("DB_DSN is required for migrate")
			}

			db, err := postgres.Open(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Migration applied successfully.")
			return nil
		},
	}
}

func runServer() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	log := a.log

	// El host "muestra" cada notificación en el log.
	unsubscribe := a.notifications.Subscribe(func(n notifications.Notification) {
		log.Info("notification", map[string]any{
			"id":    n.ID,
			"level": string(n.Level),
			"msg":   n.Message,
		})
	})
	defer unsubscribe()

	stopMonitor := reminders.NewMonitor(a.reminders, log, a.cfg.DueCheckInterval, a.cfg.RefillCheckInterval).Start(ctx)

	srv := &http.Server{
		Addr: a.cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Reminders:     a.reminders,
			Notifications: a.notifications,
			Log:           log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		stopMonitor()
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("shutting down server", nil)
	stopMonitor()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
