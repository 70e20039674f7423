package notifications

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", listNotificationsHandler(svc))
		nr.Delete("/", clearNotificationsHandler(svc))
		nr.Get("/unread-count", unreadCountHandler(svc))

		nr.Post("/{notificationID}/read", markReadHandler(svc))
		nr.Delete("/{notificationID}", deleteNotificationHandler(svc))
	})
}

type unreadCountResponse struct {
	Unread int `json:"unread"`
}

// listNotificationsHandler godoc
// @Summary Listar notificaciones
// @Description Devuelve el inbox completo, la más reciente primero.
// @Tags notifications
// @Produce json
// @Success 200 {array} Notification
// @Failure 500 {string} string "internal error"
// @Router /notifications [get]
func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// unreadCountHandler godoc
// @Summary Cantidad de no leídas
// @Tags notifications
// @Produce json
// @Success 200 {object} unreadCountResponse
// @Failure 500 {string} string "internal error"
// @Router /notifications/unread-count [get]
func unreadCountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.UnreadCount(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, unreadCountResponse{Unread: n})
	}
}

// markReadHandler godoc
// @Summary Marcar notificación como leída
// @Tags notifications
// @Produce json
// @Param notificationID path string true "ID de la notificación"
// @Success 200 {object} Notification
// @Failure 404 {string} string "notification not found"
// @Failure 500 {string} string "internal error"
// @Router /notifications/{notificationID}/read [post]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.MarkRead(r.Context(), chi.URLParam(r, "notificationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, n)
	}
}

// deleteNotificationHandler godoc
// @Summary Borrar notificación
// @Tags notifications
// @Param notificationID path string true "ID de la notificación"
// @Success 204
// @Failure 404 {string} string "notification not found"
// @Failure 500 {string} string "internal error"
// @Router /notifications/{notificationID} [delete]
func deleteNotificationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "notificationID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// clearNotificationsHandler godoc
// @Summary Vaciar inbox
// @Tags notifications
// @Success 204
// @Failure 500 {string} string "internal error"
// @Router /notifications [delete]
func clearNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "notification not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente (ver reminders/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
