package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Post("/", scheduleHandler(svc))
		rr.Get("/", listRemindersHandler(svc))

		rr.Post("/{reminderID}/disable", disableHandler(svc))

		// Evaluadores on-demand (además del loop)
		rr.Post("/check", checkDueHandler(svc))
		rr.Post("/refills/check", checkRefillsHandler(svc))

		rr.Get("/schedules", listSchedulesHandler(svc))
		rr.Get("/defaults", defaultTimesHandler())

		rr.Route("/taken", func(tr chi.Router) {
			tr.Post("/", markTakenHandler(svc))
			tr.Get("/", listTakenHandler(svc))
			tr.Delete("/", clearTakenHandler(svc))
			tr.Post("/prune", pruneTakenHandler(svc))
		})
	})

	r.Route("/frequencies", func(fr chi.Router) {
		fr.Get("/validate", validateFrequencyHandler(svc))
		fr.Get("/examples", frequencyExamplesHandler())
	})
}

// scheduleRequest es el horario que guarda el cuidador.
type scheduleRequest struct {
	MedicationName  string   `json:"medication_name"`
	Dosage          string   `json:"dosage"`
	ScheduleTypes   []string `json:"schedule_types" enums:"Morning,Evening,Night,Other"`
	CustomFrequency string   `json:"custom_frequency"` // requerido si schedule_types incluye Other
	RefillDate      string   `json:"refill_date"`      // RFC3339
}

type markTakenRequest struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	ScheduleType   string `json:"schedule_type"`
	TakenTime      string `json:"taken_time"` // RFC3339 opcional; default ahora
}

type markTakenResponse struct {
	Taken bool `json:"taken"`
}

type pruneResponse struct {
	Removed int `json:"removed"`
}

type defaultTimeResponse struct {
	ScheduleType string `json:"schedule_type"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
	Display      string `json:"display"`
}

// scheduleHandler godoc
// @Summary Programar recordatorios de medicación
// @Description Genera recordatorios para cada tipo de horario y los agrega a los existentes. Con `Other` + `custom_frequency` se pre-generan hasta 50 instancias dentro de 7 días.
// @Tags reminders
// @Accept json
// @Produce json
// @Param payload body scheduleRequest true "Horario; refill_date en RFC3339"
// @Success 201 {array} MedicationReminder
// @Failure 400 {string} string "invalid json / refill_date inválido / horario no reconocido"
// @Router /reminders [post]
func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		refill, err := time.Parse(time.RFC3339, req.RefillDate)
		if err != nil {
			http.Error(w, "refill_date must be RFC3339", http.StatusBadRequest)
			return
		}

		created, err := svc.ScheduleMedicationReminder(r.Context(), ScheduleInput{
			MedicationName:  req.MedicationName,
			Dosage:          req.Dosage,
			ScheduleTypes:   req.ScheduleTypes,
			CustomFrequency: req.CustomFrequency,
			RefillDate:      refill,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Description Por defecto solo los activos; `all=true` incluye los desactivados.
// @Tags reminders
// @Produce json
// @Param all query bool false "Incluir desactivados"
// @Success 200 {array} MedicationReminder
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); all {
			writeJSON(w, http.StatusOK, svc.Reminders(r.Context()))
			return
		}
		writeJSON(w, http.StatusOK, svc.ActiveReminders(r.Context()))
	}
}

// disableHandler godoc
// @Summary Desactivar recordatorio
// @Tags reminders
// @Param reminderID path string true "ID del recordatorio"
// @Success 204
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID}/disable [post]
func disableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DisableReminder(r.Context(), chi.URLParam(r, "reminderID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// checkDueHandler godoc
// @Summary Evaluar recordatorios vencidos
// @Description Corre el evaluador una vez y devuelve los recordatorios notificados.
// @Tags reminders
// @Produce json
// @Success 200 {array} MedicationReminder
// @Router /reminders/check [post]
func checkDueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.CheckMedicationReminders(r.Context()))
	}
}

// checkRefillsHandler godoc
// @Summary Evaluar reposiciones
// @Tags reminders
// @Produce json
// @Success 200 {array} RefillStatus
// @Router /reminders/refills/check [post]
func checkRefillsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.CheckRefillReminders(r.Context()))
	}
}

// listSchedulesHandler godoc
// @Summary Listar horarios guardados
// @Tags reminders
// @Produce json
// @Success 200 {array} ScheduleDefinition
// @Router /reminders/schedules [get]
func listSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Schedules(r.Context()))
	}
}

// defaultTimesHandler godoc
// @Summary Horas por defecto de cada horario
// @Tags reminders
// @Produce json
// @Success 200 {array} defaultTimeResponse
// @Router /reminders/defaults [get]
func defaultTimesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]defaultTimeResponse, 0, len(DefaultTimes))
		for _, st := range []string{ScheduleMorning, ScheduleEvening, ScheduleNight} {
			ct := DefaultTimes[st]
			out = append(out, defaultTimeResponse{
				ScheduleType: st,
				Hour:         ct.Hour,
				Minute:       ct.Minute,
				Display:      FormatTimeDisplay(st),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// markTakenHandler godoc
// @Summary Marcar dosis como tomada
// @Description Registra la dosis en el día calendario de taken_time. Repetir el mismo día sobrescribe.
// @Tags taken
// @Accept json
// @Produce json
// @Param payload body markTakenRequest true "Dosis tomada"
// @Success 200 {object} markTakenResponse
// @Failure 400 {string} string "invalid json / taken_time inválido"
// @Failure 500 {string} string "could not persist"
// @Router /reminders/taken [post]
func markTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.MedicationName) == "" || strings.TrimSpace(req.ScheduleType) == "" {
			http.Error(w, "medication_name and schedule_type are required", http.StatusBadRequest)
			return
		}

		var takenAt time.Time
		if strings.TrimSpace(req.TakenTime) != "" {
			t, err := time.Parse(time.RFC3339, req.TakenTime)
			if err != nil {
				http.Error(w, "taken_time must be RFC3339", http.StatusBadRequest)
				return
			}
			takenAt = t
		}

		if !svc.MarkAsTaken(r.Context(), req.MedicationName, req.Dosage, req.ScheduleType, takenAt) {
			http.Error(w, "could not persist", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, markTakenResponse{Taken: true})
	}
}

// listTakenHandler godoc
// @Summary Listar dosis tomadas
// @Tags taken
// @Produce json
// @Success 200 {array} TakenRecord
// @Router /reminders/taken [get]
func listTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.TakenRecords(r.Context()))
	}
}

// clearTakenHandler godoc
// @Summary Borrar el taken log
// @Tags taken
// @Success 204
// @Failure 500 {string} string "internal error"
// @Router /reminders/taken [delete]
func clearTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.ClearTakenLog(r.Context()) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// pruneTakenHandler godoc
// @Summary Podar días viejos del taken log
// @Tags taken
// @Produce json
// @Param days query int false "Días de retención (default 7)"
// @Success 200 {object} pruneResponse
// @Failure 400 {string} string "days inválido"
// @Router /reminders/taken/prune [post]
func pruneTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := DefaultTakenRetentionDays
		if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
				return
			}
			days = n
		}
		writeJSON(w, http.StatusOK, pruneResponse{Removed: svc.PruneTakenLog(r.Context(), days)})
	}
}

// validateFrequencyHandler godoc
// @Summary Validar frecuencia libre
// @Tags frequencies
// @Produce json
// @Param text query string true "Frecuencia, p.ej. 'Every 4 hours'"
// @Success 200 {object} FrequencyValidation
// @Router /frequencies/validate [get]
func validateFrequencyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Policy().Validate(r.URL.Query().Get("text")))
	}
}

// frequencyExamplesHandler godoc
// @Summary Ejemplos de frecuencias
// @Tags frequencies
// @Produce json
// @Success 200 {array} string
// @Router /frequencies/examples [get]
func frequencyExamplesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, FrequencyExamples())
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "reminder not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnrecognizedSchedule):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
