package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KeyValueStore es el almacenamiento local clave/valor del dispositivo.
// Los valores son JSON opacos; no hay versionado de schema.
type KeyValueStore interface {
	// Get devuelve ErrNotFound si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
