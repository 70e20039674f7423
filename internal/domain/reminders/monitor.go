package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"care-reminders/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

const (
	DefaultDueCheckInterval    = 60 * time.Second
	DefaultRefillCheckInterval = time.Hour
)

// Checker son los dos evaluadores que dispara el loop.
type Checker interface {
	CheckMedicationReminders(ctx context.Context) []MedicationReminder
	CheckRefillReminders(ctx context.Context) []RefillStatus
}

// Monitor corre los evaluadores por polling con dos timers independientes.
// No persiste estado: tras reiniciar el proceso hay que volver a llamar Start.
type Monitor struct {
	checker     Checker
	log         logger.Logger
	dueEvery    time.Duration
	refillEvery time.Duration
}

func NewMonitor(checker Checker, log logger.Logger, dueEvery, refillEvery time.Duration) *Monitor {
	if log == nil {
		log = logger.Nop()
	}
	if dueEvery <= 0 {
		dueEvery = DefaultDueCheckInterval
	}
	if refillEvery <= 0 {
		refillEvery = DefaultRefillCheckInterval
	}
	return &Monitor{
		checker:     checker,
		log:         log.With(map[string]any{"component": "monitor"}),
		dueEvery:    dueEvery,
		refillEvery: refillEvery,
	}
}

// Start arranca los timers y devuelve la función de limpieza. La limpieza
// cancela ambos timers y espera a que terminen los checks en curso (un check
// iniciado nunca se cancela). Es segura de llamar más de una vez.
func (m *Monitor) Start(ctx context.Context) (stop func()) {
	cl := cronLogger{log: m.log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)

	c.Schedule(cron.Every(m.dueEvery), cron.FuncJob(func() {
		due := m.checker.CheckMedicationReminders(ctx)
		m.log.Debug("due check finished", map[string]any{"due": len(due)})
	}))
	c.Schedule(cron.Every(m.refillEvery), cron.FuncJob(func() {
		refills := m.checker.CheckRefillReminders(ctx)
		m.log.Debug("refill check finished", map[string]any{"refills": len(refills)})
	}))

	c.Start()
	m.log.Info("medication monitoring started", map[string]any{
		"due_every":    m.dueEvery.String(),
		"refill_every": m.refillEvery.String(),
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			<-c.Stop().Done()
			m.log.Info("medication monitoring stopped", nil)
		})
	}
}

// cronLogger adapta logger.Logger a cron.Logger. Los Info de cron son ruido: van a debug.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kvFields(keysAndValues)
	fields["err"] = err
	l.log.Error("cron: "+msg, fields)
}

func kvFields(kv []interface{}) map[string]any {
	out := make(map[string]any, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		out[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return out
}
