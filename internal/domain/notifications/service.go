package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"care-reminders/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
)

const DefaultInboxLimit = 200

// Service es el sink de notificaciones: guarda un inbox persistente y
// reparte cada notificación a todos los suscriptores registrados.
type Service struct {
	repo  Repository
	log   logger.Logger
	limit int
	now   func() time.Time

	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
}

func NewService(repo Repository, log logger.Logger, inboxLimit int) *Service {
	if inboxLimit <= 0 {
		inboxLimit = DefaultInboxLimit
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		log:   log.With(map[string]any{"component": "notifications"}),
		limit: inboxLimit,
		now:   time.Now,
		subs:  make(map[int]Handler),
	}
}

// Subscribe registra un handler y devuelve la función para darlo de baja.
func (s *Service) Subscribe(h Handler) func() {
	if h == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = h
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Notify persiste la notificación (best effort) y la entrega a los suscriptores.
// Nunca falla hacia el caller.
func (s *Service) Notify(ctx context.Context, message string, level Level, data map[string]any) Notification {
	if !level.Valid() {
		level = LevelInfo
	}
	if data == nil {
		data = map[string]any{}
	}

	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Level:     level,
		Timestamp: s.now(),
		Data:      data,
	}

	items, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Error("load notifications failed", map[string]any{"err": err})
		items = []Notification{}
	}

	// más reciente primero
	items = append([]Notification{n}, items...)
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	if err := s.repo.Save(ctx, items); err != nil {
		s.log.Error("save notifications failed", map[string]any{"err": err})
	}

	s.dispatch(n)
	return n
}

func (s *Service) dispatch(n Notification) {
	s.mu.RLock()
	handlers := make([]Handler, 0, len(s.subs))
	for id := 0; id < s.nextID; id++ {
		if h, ok := s.subs[id]; ok {
			handlers = append(handlers, h)
		}
	}
	s.mu.RUnlock()

	for _, h := range handlers {
		h(n)
	}
}

func (s *Service) List(ctx context.Context) ([]Notification, error) {
	return s.repo.Load(ctx)
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) (Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Notification{}, ErrInvalidInput
	}

	items, err := s.repo.Load(ctx)
	if err != nil {
		return Notification{}, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Read = true
		if err := s.repo.Save(ctx, items); err != nil {
			return Notification{}, err
		}
		return items[i], nil
	}
	return Notification{}, ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	out := make([]Notification, 0, len(items))
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	if !found {
		return ErrNotFound
	}
	return s.repo.Save(ctx, out)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
