package router

import (
	"net/http"

	_ "care-reminders/docs"
	mem "care-reminders/internal/adapters/storage/memory"
	"care-reminders/internal/domain/notifications"
	"care-reminders/internal/domain/reminders"
	"care-reminders/internal/middleware"
	"care-reminders/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcionales: si no vienen, se arman in-memory (modo dev / tests).
	Reminders     *reminders.Service
	Notifications *notifications.Service

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(opts.Log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	notesSvc := opts.Notifications
	remindersSvc := opts.Reminders
	if notesSvc == nil || remindersSvc == nil {
		kv := mem.NewKeyValueStore()
		if notesSvc == nil {
			notesSvc = notifications.NewService(notifications.NewKVRepository(kv), opts.Log, notifications.DefaultInboxLimit)
		}
		if remindersSvc == nil {
			remindersSvc = reminders.NewService(reminders.NewKVRepository(kv), notesSvc, opts.Log, reminders.Options{})
		}
	}

	// Rutas por módulo
	reminders.RegisterRoutes(r, remindersSvc)
	notifications.RegisterRoutes(r, notesSvc)

	return r
}
