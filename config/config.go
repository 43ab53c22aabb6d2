package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	StorageType string
}

type HTTPConfig struct {
	Port string
}

type PostgresConfig struct {
	User     string
	Password string
	DB       string
	Host     string
	Port     int
	SSLMode  string
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

// LoadConfig reads the environment; every key has a default so the server
// runs out of the box against the in-memory store.
func LoadConfig() Config {
	cfg := Config{
		StorageType: getenv("STORAGE_TYPE", "memory"),
		HTTP: HTTPConfig{
			Port: getenv("HTTP_PORT", "3001"),
		},
	}

	if cfg.StorageType == "postgres" {
		cfg.Postgres = PostgresConfig{
			User:     getenv("POSTGRES_USER", "postgres"),
			Password: getenv("POSTGRES_PASSWORD", "postgres"),
			DB:       getenv("POSTGRES_DB", "miniblog"),
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenvInt("POSTGRES_PORT", 5432),
			SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic("invalid int for env var " + key + ": " + v)
	}
	return i
}
