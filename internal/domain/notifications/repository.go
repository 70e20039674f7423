package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"care-reminders/internal/ports/storage"
)

const StorageKey = "@notifications"

type Repository interface {
	Load(ctx context.Context) ([]Notification, error)
	Save(ctx context.Context, items []Notification) error
	Clear(ctx context.Context) error
}

type kvRepository struct {
	kv storage.KeyValueStore
}

// NewKVRepository guarda el inbox completo como un array JSON bajo StorageKey.
func NewKVRepository(kv storage.KeyValueStore) Repository {
	return &kvRepository{kv: kv}
}

func (r *kvRepository) Load(ctx context.Context) ([]Notification, error) {
	raw, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Notification{}, nil
		}
		return nil, err
	}

	var out []Notification
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	if out == nil {
		out = []Notification{}
	}
	return out, nil
}

func (r *kvRepository) Save(ctx context.Context, items []Notification) error {
	if items == nil {
		items = []Notification{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	return r.kv.Set(ctx, StorageKey, b)
}

func (r *kvRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, StorageKey)
}
