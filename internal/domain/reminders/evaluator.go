package reminders

import (
	"context"
	"fmt"
	"math"
	"time"

	"care-reminders/internal/domain/notifications"
)

// CheckMedicationReminders notifica cada recordatorio activo cuyo instante
// cayó dentro de la ventana [time, time+dueWindow] y cuya dosis no figura
// como tomada hoy.
//
// La entrega es at-least-once: si se llama varias veces dentro de la misma
// ventana antes de marcar la dosis, se notifica en cada llamada.
func (s *Service) CheckMedicationReminders(ctx context.Context) []MedicationReminder {
	now := s.clock()
	items := s.loadReminders(ctx)

	takenLog, err := s.repo.LoadTakenLog(ctx)
	if err != nil {
		s.log.Error("load taken log failed", map[string]any{"err": err})
		takenLog = TakenLog{}
	}

	due := make([]MedicationReminder, 0)
	for _, r := range items {
		if !r.IsActive {
			continue
		}
		if !s.isDue(r, now) {
			continue
		}

		if s.takenIn(takenLog, r.MedicationName, r.Dosage, r.ScheduleType, now) {
			s.log.Debug("reminder skipped, already taken", map[string]any{
				"reminder_id": r.ID,
				"medication":  r.MedicationName,
			})
			continue
		}

		due = append(due, r)
		s.notify(ctx, fmt.Sprintf("Time to take your medication: %s (%s)", r.MedicationName, r.Dosage), notifications.LevelWarning, map[string]any{
			"type":           "medication_reminder",
			"reminderId":     r.ID,
			"medicationName": r.MedicationName,
			"dosage":         r.Dosage,
			"scheduleType":   r.ScheduleType,
			"scheduledTime":  r.Time,
			"action":         "mark_as_taken",
		})
	}

	if len(due) > 0 {
		s.log.Info("due reminders notified", map[string]any{"count": len(due)})
	}
	return due
}

func (s *Service) isDue(r MedicationReminder, now time.Time) bool {
	diff := now.Sub(r.Time)
	return diff >= 0 && diff <= s.dueWindow
}

// CheckRefillReminders evalúa desde cero en cada llamada; no deduplica entre ciclos.
func (s *Service) CheckRefillReminders(ctx context.Context) []RefillStatus {
	now := s.clock()
	items := s.loadReminders(ctx)

	out := make([]RefillStatus, 0)
	for _, r := range items {
		if !r.IsActive {
			continue
		}

		days := DaysUntil(r.RefillDate, now)
		switch {
		case days < 0:
			st := RefillStatus{MedicationReminder: r, DaysUntilRefill: days, Overdue: true}
			out = append(out, st)
			s.notify(ctx, fmt.Sprintf("Your %s refill is overdue!", r.MedicationName), notifications.LevelError, refillData(st))
		case days <= s.leadDays:
			st := RefillStatus{MedicationReminder: r, DaysUntilRefill: days}
			out = append(out, st)
			s.notify(ctx, fmt.Sprintf("Your %s needs to be refilled in %d day(s)", r.MedicationName, days), notifications.LevelWarning, refillData(st))
		}
	}
	return out
}

// DaysUntil es ceil((t - now) / 24h).
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(float64(t.Sub(now)) / float64(24*time.Hour)))
}

func refillData(st RefillStatus) map[string]any {
	return map[string]any{
		"type":            "refill_reminder",
		"reminderId":      st.ID,
		"medicationName":  st.MedicationName,
		"refillDate":      st.RefillDate,
		"daysUntilRefill": st.DaysUntilRefill,
		"overdue":         st.Overdue,
	}
}
