package reminders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// La serie de una frecuencia libre se pre-materializa con estos límites;
	// más allá hay que volver a guardar el horario.
	customHorizon      = 7 * 24 * time.Hour
	maxCustomReminders = 50
)

// newReminderID combina timestamp en ms con un sufijo aleatorio para no
// colisionar en creaciones rápidas.
func newReminderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return strconv.FormatInt(now.UnixMilli(), 10) + suffix
}

func newReminder(medicationName, dosage, scheduleType string, at, refillDate, now time.Time) MedicationReminder {
	return MedicationReminder{
		ID:             newReminderID(now),
		MedicationName: medicationName,
		Dosage:         dosage,
		ScheduleType:   scheduleType,
		Time:           at,
		RefillDate:     refillDate,
		IsActive:       true,
		CreatedAt:      now,
	}
}

// CreateScheduleTime devuelve la próxima ocurrencia de la hora por defecto
// del horario (hoy, o mañana si ya pasó). false si el tipo no tiene hora.
func CreateScheduleTime(scheduleType string, now time.Time) (time.Time, bool) {
	ct, ok := DefaultTimes[scheduleType]
	if !ok {
		return time.Time{}, false
	}

	y, m, d := now.Date()
	at := time.Date(y, m, d, ct.Hour, ct.Minute, 0, 0, now.Location())
	if at.Before(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at, true
}

// CreateCustomFrequencyReminders aplica DefaultFrequencyPolicy.
func CreateCustomFrequencyReminders(medicationName, dosage, frequencyText string, refillDate, now time.Time) []MedicationReminder {
	return createCustomFrequencyReminders(DefaultFrequencyPolicy, medicationName, dosage, frequencyText, refillDate, now)
}

// La primera instancia cae en la próxima hora en punto; luego se avanza de a
// intervalo hasta pasar now+7d o llegar a 50 instancias.
func createCustomFrequencyReminders(policy FrequencyPolicy, medicationName, dosage, frequencyText string, refillDate, now time.Time) []MedicationReminder {
	interval, ok := policy.Parse(frequencyText)
	if !ok {
		return []MedicationReminder{}
	}
	step := time.Duration(interval) * time.Minute

	y, m, d := now.Date()
	current := time.Date(y, m, d, now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)
	end := now.Add(customHorizon)

	label := CustomScheduleLabel(frequencyText)
	out := make([]MedicationReminder, 0, maxCustomReminders)
	for !current.After(end) && len(out) < maxCustomReminders {
		out = append(out, newReminder(medicationName, dosage, label, current, refillDate, now))
		current = current.Add(step)
	}
	return out
}

// FormatTimeDisplay formatea la hora por defecto del horario, p.ej. "8:00 AM".
// Tipos sin hora por defecto usan 12:00 PM.
func FormatTimeDisplay(scheduleType string) string {
	ct, ok := DefaultTimes[scheduleType]
	if !ok {
		ct = ClockTime{Hour: 12}
	}

	hour := ct.Hour % 12
	if hour == 0 {
		hour = 12
	}
	period := "AM"
	if ct.Hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, ct.Minute, period)
}
