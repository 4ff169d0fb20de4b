package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds the process-wide settings built once at startup.
type Config struct {
	Port        string
	DatabaseURI string
	JWTSecret   string
	Store       string
	SharedTasks bool
	BcryptCost  int
	MQTTURL     string
	CORSOrigins string
}

// LoadENV reads variables from .env files into the environment without
// overriding values that are already set. Missing files are ignored.
func LoadENV(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		err := godotenv.Load(name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// FromEnv builds a Config from the environment. PORT, JWT_SECRET and, for
// the postgres store, POSTGRESQL_URI are required.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURI: os.Getenv("POSTGRESQL_URI"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Store:       strings.ToLower(os.Getenv("STORE")),
		MQTTURL:     os.Getenv("MQTT_URL"),
		CORSOrigins: os.Getenv("CORS_ORIGINS"),
	}
	if cfg.Store == "" {
		cfg.Store = StorePostgres
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}

	var missing []string
	if cfg.Port == "" {
		missing = append(missing, "PORT")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.Store == StorePostgres && cfg.DatabaseURI == "" {
		missing = append(missing, "POSTGRESQL_URI")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("you must set your %s environmental variable(s)", strings.Join(missing, ", "))
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.Store)
	}

	if v := os.Getenv("TASKS_SHARED"); v != "" {
		shared, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TASKS_SHARED: %w", err)
		}
		cfg.SharedTasks = shared
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("BCRYPT_COST: %w", err)
		}
		if cost < 4 || cost > 31 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
