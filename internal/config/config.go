// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/codr1/bookingcard/internal/booking"
	"github.com/codr1/bookingcard/internal/deeplink"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

type BookingConfig struct {
	QuantityFormat  string                `yaml:"quantity_format"`
	DateSource      string                `yaml:"date_source"`
	IncludeServices bool                  `yaml:"include_services"`
	NoticeTimeout   time.Duration         `yaml:"notice_timeout"`
	Services        []booking.ServiceItem `yaml:"services"`
}

type WhatsAppConfig struct {
	BaseURL       string `yaml:"base_url"`
	Recipient     string `yaml:"recipient"` // Overridden by BOOKING_WHATSAPP_RECIPIENT
	DefaultRegion string `yaml:"default_region"`
	Notice        string `yaml:"notice"`
}

type MailConfig struct {
	To     []string `yaml:"to"`
	Cc     []string `yaml:"cc"`
	Notice string   `yaml:"notice"`
}

type RateLimitConfig struct {
	Enabled        bool          `yaml:"enabled"`
	SubmitCooldown time.Duration `yaml:"submit_cooldown"`
	MaxPerHour     int           `yaml:"max_per_hour"`
	TrustProxy     bool          `yaml:"trust_proxy"`
	CleanupCron    string        `yaml:"cleanup_cron"`
}

type ThemeConfig struct {
	PrimaryColor   string `yaml:"primary_color"`
	SecondaryColor string `yaml:"secondary_color"`
	AccentColor    string `yaml:"accent_color"`
	ErrorColor     string `yaml:"error_color"`
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		BaseURL         string        `yaml:"base_url"`
		StaticDir       string        `yaml:"static_dir"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Booking   BookingConfig   `yaml:"booking"`
	WhatsApp  WhatsAppConfig  `yaml:"whatsapp"`
	Mail      MailConfig      `yaml:"mail"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Theme     ThemeConfig     `yaml:"theme"`
}

// Default returns a configuration that runs the stock booking card on :8080.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "Booking Card"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.StaticDir = "build/bin/static"
	cfg.App.ShutdownTimeout = 30 * time.Second

	cfg.Booking = BookingConfig{
		QuantityFormat: string(booking.QuantitySuffix),
		DateSource:     string(booking.DateSourceNow),
		NoticeTimeout:  3 * time.Second,
		Services:       booking.DefaultServices(),
	}
	cfg.WhatsApp = WhatsAppConfig{
		BaseURL:       deeplink.DefaultWhatsAppBaseURL,
		DefaultRegion: "MX",
		Notice:        "Enviando mensaje de WhatsApp...",
	}
	cfg.Mail = MailConfig{
		Notice: "Abriendo email...",
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled:        true,
		SubmitCooldown: 10 * time.Second,
		MaxPerHour:     20,
		CleanupCron:    "*/5 * * * *",
	}
	cfg.Theme = ThemeConfig{
		PrimaryColor:   "#1f2937",
		SecondaryColor: "#e5e7eb",
		AccentColor:    "#16a34a",
		ErrorColor:     "#d32f2f",
	}
	return cfg
}

// Load loads both .env and yaml configuration. Keys missing from the file
// keep their Default values.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// A services list in the file replaces the stock list wholesale.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("BOOKING_WHATSAPP_RECIPIENT"); ok {
		c.WhatsApp.Recipient = v
	}
	if v, ok := os.LookupEnv("ENVIRONMENT"); ok && v != "" {
		c.App.Environment = v
	}
	if v, ok := os.LookupEnv("STATIC_DIR"); ok && v != "" {
		c.App.StaticDir = v
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if c.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("app shutdown_timeout must be positive")
	}

	switch booking.QuantityFormat(c.Booking.QuantityFormat) {
	case booking.QuantitySuffix, booking.QuantityPrefix:
	default:
		return fmt.Errorf("unsupported booking quantity_format: %s", c.Booking.QuantityFormat)
	}
	switch booking.DateSource(c.Booking.DateSource) {
	case booking.DateSourceNow, booking.DateSourceForm:
	default:
		return fmt.Errorf("unsupported booking date_source: %s", c.Booking.DateSource)
	}
	if c.Booking.NoticeTimeout < 0 {
		return fmt.Errorf("booking notice_timeout must not be negative")
	}
	if _, err := booking.NewCatalog(c.Booking.Services); err != nil {
		return fmt.Errorf("booking services: %w", err)
	}

	if _, err := deeplink.NormalizeRecipient(c.WhatsApp.Recipient, c.WhatsApp.DefaultRegion); err != nil {
		return fmt.Errorf("whatsapp recipient: %w", err)
	}
	if len(c.Mail.To) == 0 {
		return fmt.Errorf("mail to is required")
	}
	if _, err := deeplink.NewMailto(c.Mail.To, c.Mail.Cc); err != nil {
		return fmt.Errorf("mail recipients: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.MaxPerHour <= 0 {
			return fmt.Errorf("ratelimit max_per_hour must be positive")
		}
		if c.RateLimit.SubmitCooldown < 0 {
			return fmt.Errorf("ratelimit submit_cooldown must not be negative")
		}
		if _, err := cron.ParseStandard(c.RateLimit.CleanupCron); err != nil {
			return fmt.Errorf("ratelimit cleanup_cron: %w", err)
		}
	}

	colors := []struct{ name, value string }{
		{"primary_color", c.Theme.PrimaryColor},
		{"secondary_color", c.Theme.SecondaryColor},
		{"accent_color", c.Theme.AccentColor},
		{"error_color", c.Theme.ErrorColor},
	}
	for _, color := range colors {
		if !IsHexColor(color.value) {
			return fmt.Errorf("theme %s must be a #RRGGBB color, got %q", color.name, color.value)
		}
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
