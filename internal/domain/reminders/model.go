package reminders

import (
	"fmt"
	"time"
)

// Tipos de horario fijos. ScheduleOther marca un horario con frecuencia libre.
const (
	ScheduleMorning = "Morning"
	ScheduleEvening = "Evening"
	ScheduleNight   = "Night"
	ScheduleOther   = "Other"
)

// ClockTime es una hora del día sin fecha.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DefaultTimes son las horas por defecto de los horarios fijos.
var DefaultTimes = map[string]ClockTime{
	ScheduleMorning: {Hour: 8, Minute: 0},
	ScheduleEvening: {Hour: 19, Minute: 20},
	ScheduleNight:   {Hour: 0, Minute: 25},
}

// CustomScheduleLabel arma el scheduleType de un recordatorio con frecuencia libre.
func CustomScheduleLabel(frequencyText string) string {
	return fmt.Sprintf("Custom (%s)", frequencyText)
}

// MedicationReminder es una instancia concreta de recordatorio.
// Time se calcula una sola vez al crear y nunca se modifica;
// reprogramar implica crear recordatorios nuevos.
type MedicationReminder struct {
	ID             string    `json:"id"`
	MedicationName string    `json:"medicationName"`
	Dosage         string    `json:"dosage"`
	ScheduleType   string    `json:"scheduleType"`
	Time           time.Time `json:"time"`
	RefillDate     time.Time `json:"refillDate"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RefillStatus es un recordatorio aumentado con el estado de reposición.
type RefillStatus struct {
	MedicationReminder
	DaysUntilRefill int  `json:"daysUntilRefill"`
	Overdue         bool `json:"overdue,omitempty"`
}

// TakenRecord registra que una dosis fue tomada.
type TakenRecord struct {
	MedicationName string    `json:"medicationName"`
	Dosage         string    `json:"dosage"`
	ScheduleType   string    `json:"scheduleType"`
	TakenTime      time.Time `json:"takenTime"`
	Timestamp      time.Time `json:"timestamp"`
}

// TakenLogEntry agrupa las dosis tomadas de un día calendario.
// Medications va indexado por TakenKey: a lo sumo un registro por dosis y día.
type TakenLogEntry struct {
	Date        string                 `json:"date"`
	Medications map[string]TakenRecord `json:"medications"`
}

// TakenLog va indexado por DayKey.
type TakenLog map[string]TakenLogEntry

// DayKeyLayout produce claves tipo "Wed Jul 23 2025".
const DayKeyLayout = "Mon Jan 02 2006"

func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// TakenKey es la clave compuesta medicationName_dosage_scheduleType.
func TakenKey(medicationName, dosage, scheduleType string) string {
	return medicationName + "_" + dosage + "_" + scheduleType
}

// ScheduleDefinition es lo que guardó el cuidador; sirve para volver a
// generar la serie cuando se agotan las instancias pre-calculadas.
type ScheduleDefinition struct {
	MedicationName  string    `json:"medicationName"`
	Dosage          string    `json:"dosage"`
	ScheduleTypes   []string  `json:"scheduleTypes"`
	CustomFrequency string    `json:"customFrequency,omitempty"`
	RefillDate      time.Time `json:"refillDate"`
	SavedAt         time.Time `json:"savedAt"`
	ReminderCount   int       `json:"reminderCount"`
}

// FrequencyValidation es el resultado de ValidateFrequency.
type FrequencyValidation struct {
	IsValid         bool   `json:"isValid"`
	Error           string `json:"error,omitempty"`
	IntervalMinutes int    `json:"intervalMinutes,omitempty"`
	Description     string `json:"description,omitempty"`
}
