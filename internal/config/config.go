package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración del proceso.
type Config struct {
	App    AppConfig
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
}

type AppConfig struct {
	Name string
	// Zona del operador: se usa para "hoy" y el mes por defecto de los costos.
	Timezone string
	// Nodo del generador de ids (0..1023).
	IDNode int64
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DBConfig: DSN vacío => store en memoria.
type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load lee variables de entorno (opcionalmente desde envFile) y valida.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// Sin .env no pasa nada: la config puede venir del entorno.
		_ = godotenv.Load()
	}

	var p parser
	cfg := &Config{
		App: AppConfig{
			Name:     getenvWithDefault("APP_NAME", "pet-boarding"),
			Timezone: getenvWithDefault("APP_TIMEZONE", "Local"),
			IDNode:   int64(p.int("ID_NODE", 1)),
		},
		Server: ServerConfig{
			Port:         getenvWithDefault("APP_PORT", "8080"),
			ReadTimeout:  p.duration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: p.duration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		},
		DB: DBConfig{
			DSN:          strings.TrimSpace(os.Getenv("DB_DSN")),
			MaxOpenConns: p.int("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: p.int("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  p.bool("DB_AUTO_MIGRATE", true),
		},
		Log: LogConfig{
			Level:  getenvWithDefault("LOG_LEVEL", "info"),
			Format: getenvWithDefault("LOG_FORMAT", "text"),
		},
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate junta todos los problemas en un solo error.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("APP_PORT must be provided"))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_READ_TIMEOUT must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_WRITE_TIMEOUT must be positive"))
	}
	if c.App.IDNode < 0 || c.App.IDNode > 1023 {
		errs = append(errs, fmt.Errorf("ID_NODE must be between 0 and 1023, got %d", c.App.IDNode))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE %q: %w", c.App.Timezone, err))
	}
	if c.DB.MaxOpenConns < 1 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be at least 1"))
	}
	if c.DB.MaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS must not be negative"))
	}
	return errors.Join(errs...)
}

// Location resuelve APP_TIMEZONE (ya validada en Load).
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) Addr() string { return ":" + c.Server.Port }

func (c *Config) UsesDatabase() bool { return c.DB.DSN != "" }

func getenvWithDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// parser acumula errores de conversión para reportarlos juntos.
type parser struct {
	errs []error
}

func (p *parser) int(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be an integer: %q", key, raw))
		return fallback
	}
	return n
}

func (p *parser) bool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be a boolean: %q", key, raw))
		return fallback
	}
	return b
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be a duration: %q", key, raw))
		return fallback
	}
	return d
}
