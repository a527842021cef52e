package config

import (
	"log"
	"os"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	HTTPPort    string
	CORSOrigin  string
}

// Load reads configuration from the environment. main loads .env first via
// godotenv, so local development works without exported variables.
func Load() *Config {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("SUPABASE_JWT_SECRET"),
		HTTPPort:    os.Getenv("PORT"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "host=localhost user=postgres password=password dbname=jobtracker port=5432 sslmode=disable"
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if cfg.JWTSecret == "" {
		log.Fatal("SUPABASE_JWT_SECRET must be set")
	}
	return cfg
}
