package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Vacío = store en memoria.
	DBDSN string `mapstructure:"DB_DSN"`

	Timezone string `mapstructure:"TIMEZONE"`

	DueCheckInterval    time.Duration `mapstructure:"DUE_CHECK_INTERVAL"`
	RefillCheckInterval time.Duration `mapstructure:"REFILL_CHECK_INTERVAL"`
	DueWindow           time.Duration `mapstructure:"DUE_WINDOW"`
	RefillLeadDays      int           `mapstructure:"REFILL_LEAD_DAYS"`
	TakenRetentionDays  int           `mapstructure:"TAKEN_RETENTION_DAYS"`
	StrictFrequency     bool          `mapstructure:"STRICT_FREQUENCY"`

	NotificationInboxLimit int `mapstructure:"NOTIFICATION_INBOX_LIMIT"`
}

var defaults = map[string]any{
	"PORT":                     "8080",
	"ENV":                      "development",
	"APP_NAME":                 "care-reminders",
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "text",
	"DB_DSN":                   "",
	"TIMEZONE":                 "Local",
	"DUE_CHECK_INTERVAL":       "60s",
	"REFILL_CHECK_INTERVAL":    "1h",
	"DUE_WINDOW":               "5m",
	"REFILL_LEAD_DAYS":         3,
	"TAKEN_RETENTION_DAYS":     7,
	"STRICT_FREQUENCY":         false,
	"NOTIFICATION_INBOX_LIMIT": 200,
}

// Load lee un .env opcional y luego el entorno. Las variables ya definidas
// en el entorno ganan sobre el .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	for key, val := range defaults {
		v.SetDefault(key, val)
		// BindEnv explícito para que Unmarshal vea las variables
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) UsePostgres() bool {
	return c.DBDSN != ""
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// Location resuelve TIMEZONE; "Local" o vacío es la zona del proceso.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.DueCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("DUE_CHECK_INTERVAL must be positive, got %s", c.DueCheckInterval))
	}
	if c.RefillCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("REFILL_CHECK_INTERVAL must be positive, got %s", c.RefillCheckInterval))
	}
	if c.DueWindow <= 0 {
		errs = append(errs, fmt.Errorf("DUE_WINDOW must be positive, got %s", c.DueWindow))
	}
	if c.RefillLeadDays < 0 {
		errs = append(errs, fmt.Errorf("REFILL_LEAD_DAYS must not be negative, got %d", c.RefillLeadDays))
	}
	if c.TakenRetentionDays < 0 {
		errs = append(errs, fmt.Errorf("TAKEN_RETENTION_DAYS must not be negative, got %d", c.TakenRetentionDays))
	}
	if c.NotificationInboxLimit < 0 {
		errs = append(errs, fmt.Errorf("NOTIFICATION_INBOX_LIMIT must not be negative, got %d", c.NotificationInboxLimit))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
