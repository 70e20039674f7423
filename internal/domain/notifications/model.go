package notifications

import "time"

// Level clasifica la notificación para la UI.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

func (l Level) Valid() bool {
	switch l {
	case LevelSuccess, LevelWarning, LevelError, LevelInfo:
		return true
	}
	return false
}

// Notification es un mensaje legible más un payload estructurado
// (type, identificadores del medicamento, timestamps, conteos).
type Notification struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Level     Level          `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
	Data      map[string]any `json:"data"`
}

// Handler recibe cada notificación emitida. Fire-and-forget.
type Handler func(n Notification)
