package reminders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"care-reminders/internal/domain/notifications"
)

// MarkAsTaken registra la dosis en el día calendario de takenTime
// (zero = ahora). Marcar dos veces la misma dosis el mismo día sobrescribe.
// Devuelve false si no se pudo leer o persistir el taken log.
func (s *Service) MarkAsTaken(ctx context.Context, medicationName, dosage, scheduleType string, takenTime time.Time) bool {
	now := s.clock()
	if takenTime.IsZero() {
		takenTime = now
	}
	day := DayKey(takenTime.In(s.loc))

	takenLog, err := s.repo.LoadTakenLog(ctx)
	if err != nil {
		s.log.Error("load taken log failed", map[string]any{"err": err})
		return false
	}

	entry, ok := takenLog[day]
	if !ok || entry.Medications == nil {
		entry = TakenLogEntry{Date: day, Medications: map[string]TakenRecord{}}
	}
	entry.Medications[TakenKey(medicationName, dosage, scheduleType)] = TakenRecord{
		MedicationName: medicationName,
		Dosage:         dosage,
		ScheduleType:   scheduleType,
		TakenTime:      takenTime,
		Timestamp:      now,
	}
	takenLog[day] = entry

	if err := s.repo.SaveTakenLog(ctx, takenLog); err != nil {
		s.log.Error("save taken log failed", map[string]any{"err": err})
		return false
	}

	s.notify(ctx, fmt.Sprintf("✓ %s marked as taken", medicationName), notifications.LevelSuccess, map[string]any{
		"type":           "medication_taken",
		"medicationName": medicationName,
		"dosage":         dosage,
		"scheduleType":   scheduleType,
		"takenAt":        takenTime,
	})
	return true
}

// IsAlreadyTaken nunca es ambiguo: sin registro (o con error de lectura) es false.
func (s *Service) IsAlreadyTaken(ctx context.Context, medicationName, dosage, scheduleType string, checkTime time.Time) bool {
	if checkTime.IsZero() {
		checkTime = s.clock()
	}
	takenLog, err := s.repo.LoadTakenLog(ctx)
	if err != nil {
		s.log.Error("load taken log failed", map[string]any{"err": err})
		return false
	}
	return s.takenIn(takenLog, medicationName, dosage, scheduleType, checkTime)
}

func (s *Service) takenIn(takenLog TakenLog, medicationName, dosage, scheduleType string, at time.Time) bool {
	entry, ok := takenLog[DayKey(at.In(s.loc))]
	if !ok {
		return false
	}
	_, ok = entry.Medications[TakenKey(medicationName, dosage, scheduleType)]
	return ok
}

// TakenRecords aplana el taken log, ordenado por hora de toma.
func (s *Service) TakenRecords(ctx context.Context) []TakenRecord {
	takenLog, err := s.repo.LoadTakenLog(ctx)
	if err != nil {
		s.log.Error("load taken log failed", map[string]any{"err": err})
		return []TakenRecord{}
	}

	out := make([]TakenRecord, 0)
	for _, entry := range takenLog {
		for _, rec := range entry.Medications {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenTime.Before(out[j].TakenTime)
	})
	return out
}

func (s *Service) ClearTakenLog(ctx context.Context) bool {
	if err := s.repo.ClearTakenLog(ctx); err != nil {
		s.log.Error("clear taken log failed", map[string]any{"err": err})
		return false
	}
	s.notify(ctx, "Medication taken records cleared", notifications.LevelInfo, map[string]any{
		"type": "taken_log_cleared",
	})
	return true
}

// PruneTakenLog borra los días anteriores a hoy-retentionDays.
// No hay expiración automática: es una llamada de mantenimiento explícita.
// retentionDays < 0 usa DefaultTakenRetentionDays.
func (s *Service) PruneTakenLog(ctx context.Context, retentionDays int) int {
	if retentionDays < 0 {
		retentionDays = DefaultTakenRetentionDays
	}

	takenLog, err := s.repo.LoadTakenLog(ctx)
	if err != nil {
		s.log.Error("load taken log failed", map[string]any{"err": err})
		return 0
	}

	now := s.clock()
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, s.loc).AddDate(0, 0, -retentionDays)

	removed := 0
	for key := range takenLog {
		day, err := time.ParseInLocation(DayKeyLayout, key, s.loc)
		if err != nil {
			s.log.Warn("unparseable taken log key kept", map[string]any{"key": key})
			continue
		}
		if day.Before(cutoff) {
			delete(takenLog, key)
			removed++
		}
	}
	if removed == 0 {
		return 0
	}

	if err := s.repo.SaveTakenLog(ctx, takenLog); err != nil {
		s.log.Error("save taken log failed", map[string]any{"err": err})
		return 0
	}
	s.log.Info("taken log pruned", map[string]any{"removed": removed, "retention_days": retentionDays})
	return removed
}
