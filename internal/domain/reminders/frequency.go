package reminders

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60

	// DefaultFallbackMinutes se usa cuando el texto no se reconoce (modo lenient).
	DefaultFallbackMinutes = 8 * 60

	MinIntervalMinutes = 15
	MaxIntervalMinutes = minutesPerDay
)

var (
	everyPattern  = regexp.MustCompile(`every\s+(\d+)\s*(hours?|hrs?|minutes?|mins?)`)
	perDayPattern = regexp.MustCompile(`(\d+)\s*times?\s*a?\s*day|twice\s*a?\s*day|three\s*times?\s*a?\s*day`)
)

// FrequencyPolicy decide qué hacer con texto no reconocido.
// Lenient (Strict=false) cae en FallbackMinutes; Strict lo reporta como no parseado.
type FrequencyPolicy struct {
	Strict          bool
	FallbackMinutes int
}

// DefaultFrequencyPolicy es lenient con fallback de 8 horas.
var DefaultFrequencyPolicy = FrequencyPolicy{FallbackMinutes: DefaultFallbackMinutes}

// ParseFrequency aplica DefaultFrequencyPolicy.
func ParseFrequency(text string) (int, bool) {
	return DefaultFrequencyPolicy.Parse(text)
}

// ValidateFrequency aplica DefaultFrequencyPolicy.
func ValidateFrequency(text string) FrequencyValidation {
	return DefaultFrequencyPolicy.Validate(text)
}

// Parse convierte una frecuencia en texto libre a minutos.
// Orden: "every N hours", "every N minutes", "N veces por día", "daily/once", fallback.
// Texto vacío o un intervalo de 0 nunca se consideran parseados.
func (p FrequencyPolicy) Parse(text string) (int, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, false
	}

	if m := everyPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return 0, false
		}
		if strings.HasPrefix(m[2], "h") {
			return n * 60, true
		}
		return n, true
	}

	if strings.Contains(text, "day") {
		if m := perDayPattern.FindStringSubmatch(text); m != nil {
			times := 1
			switch {
			case strings.Contains(text, "twice"):
				times = 2
			case strings.Contains(text, "three"):
				times = 3
			default:
				if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
					times = n
				}
			}
			return minutesPerDay / times, true
		}
	}

	if strings.Contains(text, "daily") || strings.Contains(text, "once") {
		return minutesPerDay, true
	}

	if p.Strict {
		return 0, false
	}
	fallback := p.FallbackMinutes
	if fallback <= 0 {
		fallback = DefaultFallbackMinutes
	}
	return fallback, true
}

// Validate acepta intervalos en [15, 1440] minutos, ambos inclusive.
func (p FrequencyPolicy) Validate(text string) FrequencyValidation {
	if strings.TrimSpace(text) == "" {
		return FrequencyValidation{Error: "Frequency is required"}
	}

	minutes, ok := p.Parse(text)
	if !ok {
		return FrequencyValidation{Error: "Please use format like 'Every 4 hours' or 'Twice a day'"}
	}
	if minutes < MinIntervalMinutes {
		return FrequencyValidation{Error: "Minimum interval is 15 minutes"}
	}
	if minutes > MaxIntervalMinutes {
		return FrequencyValidation{Error: "Maximum interval is 24 hours"}
	}

	return FrequencyValidation{
		IsValid:         true,
		IntervalMinutes: minutes,
		Description: fmt.Sprintf("This will create reminders every %d hours and %d minutes",
			minutes/60, minutes%60),
	}
}

// FrequencyExamples son ejemplos para guiar al cuidador.
func FrequencyExamples() []string {
	return []string{
		"Every 4 hours",
		"Every 6 hours",
		"Every 8 hours",
		"Every 30 minutes",
		"Twice a day",
		"3 times a day",
		"Once daily",
		"Every 12 hours",
	}
}
