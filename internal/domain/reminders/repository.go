package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"care-reminders/internal/ports/storage"
)

// Claves lógicas del almacenamiento local.
const (
	RemindersKey = "@medication_reminders"
	TakenLogKey  = "@medication_taken"
	SchedulesKey = "@medication_schedule"
)

type Repository interface {
	LoadReminders(ctx context.Context) ([]MedicationReminder, error)
	SaveReminders(ctx context.Context, items []MedicationReminder) error

	LoadTakenLog(ctx context.Context) (TakenLog, error)
	SaveTakenLog(ctx context.Context, log TakenLog) error
	ClearTakenLog(ctx context.Context) error

	LoadSchedules(ctx context.Context) ([]ScheduleDefinition, error)
	SaveSchedules(ctx context.Context, items []ScheduleDefinition) error
}

type kvRepository struct {
	kv storage.KeyValueStore
}

// NewKVRepository serializa cada colección completa como JSON bajo su clave.
// Una clave inexistente equivale a colección vacía.
func NewKVRepository(kv storage.KeyValueStore) Repository {
	return &kvRepository{kv: kv}
}

func (r *kvRepository) LoadReminders(ctx context.Context) ([]MedicationReminder, error) {
	out := []MedicationReminder{}
	if err := r.load(ctx, RemindersKey, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []MedicationReminder{}
	}
	return out, nil
}

func (r *kvRepository) SaveReminders(ctx context.Context, items []MedicationReminder) error {
	if items == nil {
		items = []MedicationReminder{}
	}
	return r.save(ctx, RemindersKey, items)
}

func (r *kvRepository) LoadTakenLog(ctx context.Context) (TakenLog, error) {
	out := TakenLog{}
	if err := r.load(ctx, TakenLogKey, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = TakenLog{}
	}
	return out, nil
}

func (r *kvRepository) SaveTakenLog(ctx context.Context, log TakenLog) error {
	if log == nil {
		log = TakenLog{}
	}
	return r.save(ctx, TakenLogKey, log)
}

func (r *kvRepository) ClearTakenLog(ctx context.Context) error {
	return r.kv.Delete(ctx, TakenLogKey)
}

func (r *kvRepository) LoadSchedules(ctx context.Context) ([]ScheduleDefinition, error) {
	out := []ScheduleDefinition{}
	if err := r.load(ctx, SchedulesKey, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []ScheduleDefinition{}
	}
	return out, nil
}

func (r *kvRepository) SaveSchedules(ctx context.Context, items []ScheduleDefinition) error {
	if items == nil {
		items = []ScheduleDefinition{}
	}
	return r.save(ctx, SchedulesKey, items)
}

func (r *kvRepository) load(ctx context.Context, key string, dst any) error {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *kvRepository) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
