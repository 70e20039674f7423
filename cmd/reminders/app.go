package main

import (
	"context"
	"database/sql"
	"fmt"

	mem "care-reminders/internal/adapters/storage/memory"
	pg "care-reminders/internal/adapters/storage/postgres"
	"care-reminders/internal/domain/notifications"
	"care-reminders/internal/domain/reminders"
	"care-reminders/internal/platform/config"
	"care-reminders/internal/platform/logger"
	"care-reminders/internal/ports/storage"
)

type app struct {
	cfg *config.Config
	log logger.Logger

	notifications *notifications.Service
	reminders     *reminders.Service

	db *sql.DB
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

// buildApp arma store, servicios y logger a partir de la config.
// Con DB_DSN usa Postgres (y crea la tabla si falta); sin DB_DSN, memoria.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	var kv storage.KeyValueStore
	if cfg.UsePostgres() {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = db
		kv = pg.NewKeyValueStore(db)
		log.Info("using postgres store", nil)
	} else {
		kv = mem.NewKeyValueStore()
		log.Warn("DB_DSN not set, using in-memory store (data is lost on restart)", nil)
	}

	a.notifications = notifications.NewService(notifications.NewKVRepository(kv), log, cfg.NotificationInboxLimit)
	a.reminders = reminders.NewService(reminders.NewKVRepository(kv), a.notifications, log, reminders.Options{
		DueWindow:      cfg.DueWindow,
		RefillLeadDays: cfg.RefillLeadDays,
		Policy:         reminders.FrequencyPolicy{Strict: cfg.StrictFrequency},
		Location:       loc,
	})

	return a, nil
}
