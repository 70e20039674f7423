package reminders

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"care-reminders/internal/domain/notifications"
	"care-reminders/internal/platform/logger"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("reminder not found")
	ErrUnrecognizedSchedule = errors.New("unrecognized schedule")
)

const (
	DefaultDueWindow          = 5 * time.Minute
	DefaultRefillLeadDays     = 3
	DefaultTakenRetentionDays = 7
)

// Notifier es el sink donde el motor empuja notificaciones legibles.
type Notifier interface {
	Notify(ctx context.Context, message string, level notifications.Level, data map[string]any) notifications.Notification
}

type Options struct {
	DueWindow      time.Duration
	RefillLeadDays int
	Policy         FrequencyPolicy

	// Location define el día calendario del taken log y las horas por defecto.
	// nil = time.Local.
	Location *time.Location
}

type Service struct {
	repo     Repository
	notifier Notifier
	log      logger.Logger

	dueWindow time.Duration
	leadDays  int
	policy    FrequencyPolicy
	loc       *time.Location

	now func() time.Time
}

func NewService(repo Repository, notifier Notifier, log logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if opts.DueWindow <= 0 {
		opts.DueWindow = DefaultDueWindow
	}
	if opts.RefillLeadDays <= 0 {
		opts.RefillLeadDays = DefaultRefillLeadDays
	}
	if opts.Policy.FallbackMinutes <= 0 {
		opts.Policy.FallbackMinutes = DefaultFallbackMinutes
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Service{
		repo:      repo,
		notifier:  notifier,
		log:       log.With(map[string]any{"component": "reminders"}),
		dueWindow: opts.DueWindow,
		leadDays:  opts.RefillLeadDays,
		policy:    opts.Policy,
		loc:       opts.Location,
		now:       time.Now,
	}
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Policy() FrequencyPolicy {
	return s.policy
}

type ScheduleInput struct {
	MedicationName  string
	Dosage          string
	ScheduleTypes   []string
	CustomFrequency string
	RefillDate      time.Time
}

// ScheduleMedicationReminder genera los recordatorios de un horario y los
// agrega a los existentes (no reemplaza ni deduplica).
// En modo lenient las entradas que no generan nada se ignoran en silencio;
// en modo strict se rechaza el horario completo con ErrUnrecognizedSchedule.
func (s *Service) ScheduleMedicationReminder(ctx context.Context, in ScheduleInput) ([]MedicationReminder, error) {
	name := strings.TrimSpace(in.MedicationName)
	if name == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock()
	custom := strings.TrimSpace(in.CustomFrequency)

	created := make([]MedicationReminder, 0)
	skipped := make([]string, 0)
	customCount := -1

	for _, st := range in.ScheduleTypes {
		if st == ScheduleOther && custom != "" {
			items := createCustomFrequencyReminders(s.policy, name, in.Dosage, custom, in.RefillDate, now)
			if len(items) == 0 {
				skipped = append(skipped, CustomScheduleLabel(custom))
				continue
			}
			created = append(created, items...)
			customCount = len(items)
			continue
		}

		at, ok := CreateScheduleTime(st, now)
		if !ok {
			skipped = append(skipped, st)
			continue
		}
		created = append(created, newReminder(name, in.Dosage, st, at, in.RefillDate, now))
	}

	if len(skipped) > 0 {
		if s.policy.Strict {
			return nil, fmt.Errorf("%w: %s", ErrUnrecognizedSchedule, strings.Join(skipped, ", "))
		}
		s.log.Warn("schedule entries produced no reminders", map[string]any{
			"medication": name,
			"skipped":    skipped,
		})
	}

	existing := s.loadReminders(ctx)
	s.saveReminders(ctx, append(existing, created...))
	s.recordSchedule(ctx, ScheduleDefinition{
		MedicationName:  name,
		Dosage:          in.Dosage,
		ScheduleTypes:   in.ScheduleTypes,
		CustomFrequency: custom,
		RefillDate:      in.RefillDate,
		SavedAt:         now,
		ReminderCount:   len(created),
	})

	if customCount >= 0 {
		s.notify(ctx, fmt.Sprintf("Custom medication schedule set: %s - %s", name, custom), notifications.LevelInfo, map[string]any{
			"type":           "custom_schedule_set",
			"medicationName": name,
			"frequency":      custom,
			"reminderCount":  customCount,
		})
	}

	info := strings.Join(in.ScheduleTypes, ", ")
	if custom != "" && slices.Contains(in.ScheduleTypes, ScheduleOther) {
		info = fmt.Sprintf("custom schedule (%s)", custom)
	}
	s.notify(ctx, fmt.Sprintf("Medication reminders set for %s - %s", name, info), notifications.LevelSuccess, map[string]any{
		"type":            "medication_scheduled",
		"medicationName":  name,
		"scheduleTypes":   in.ScheduleTypes,
		"customFrequency": custom,
		"reminderCount":   len(created),
	})

	s.log.Info("medication reminders scheduled", map[string]any{
		"medication": name,
		"count":      len(created),
	})
	return created, nil
}

// Reminders devuelve todos los recordatorios, incluidos los desactivados.
func (s *Service) Reminders(ctx context.Context) []MedicationReminder {
	return s.loadReminders(ctx)
}

func (s *Service) ActiveReminders(ctx context.Context) []MedicationReminder {
	all := s.loadReminders(ctx)
	out := make([]MedicationReminder, 0, len(all))
	for _, r := range all {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

// DisableReminder es un soft-delete: el recordatorio queda para historial.
func (s *Service) DisableReminder(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	items := s.loadReminders(ctx)
	idx := slices.IndexFunc(items, func(r MedicationReminder) bool { return r.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	items[idx].IsActive = false
	s.saveReminders(ctx, items)

	s.notify(ctx, "Medication reminder disabled", notifications.LevelInfo, map[string]any{
		"type":       "reminder_disabled",
		"reminderId": id,
	})
	return nil
}

func (s *Service) Schedules(ctx context.Context) []ScheduleDefinition {
	items, err := s.repo.LoadSchedules(ctx)
	if err != nil {
		s.log.Error("load schedules failed", map[string]any{"err": err})
		return []ScheduleDefinition{}
	}
	return items
}

func (s *Service) recordSchedule(ctx context.Context, def ScheduleDefinition) {
	items := s.Schedules(ctx)
	items = append(items, def)
	if err := s.repo.SaveSchedules(ctx, items); err != nil {
		s.log.Error("save schedules failed", map[string]any{"err": err})
	}
}

// loadReminders degrada a colección vacía si la lectura falla.
func (s *Service) loadReminders(ctx context.Context) []MedicationReminder {
	items, err := s.repo.LoadReminders(ctx)
	if err != nil {
		s.log.Error("load reminders failed", map[string]any{"err": err})
		return []MedicationReminder{}
	}
	return items
}

// saveReminders loguea y descarta el error: no hay reintento.
func (s *Service) saveReminders(ctx context.Context, items []MedicationReminder) {
	if err := s.repo.SaveReminders(ctx, items); err != nil {
		s.log.Error("save reminders failed", map[string]any{"err": err, "count": len(items)})
	}
}

func (s *Service) notify(ctx context.Context, msg string, level notifications.Level, data map[string]any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, msg, level, data)
}
