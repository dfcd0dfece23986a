// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	HTTPAddr          string
	DSN               string
	JWTSecret         string
	JWTTTL            time.Duration
	Env               string
	LogLevel          string
	CORSOrigin        string
	Location          *time.Location
	SyntheticFallback bool
	DispatchCron      string
	RunMigrations     bool

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

// Load reads .env when present and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	loaded := godotenv.Load() == nil
	cfg, err := FromEnv(os.LookupEnv)
	cfg.EnvFileLoaded = loaded
	return cfg, err
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPAddr:     get("HTTP_ADDR", ":8080"),
		Env:          get("APP_ENV", EnvProduction),
		LogLevel:     get("LOG_LEVEL", "info"),
		CORSOrigin:   get("CORS_ORIGIN", "http://localhost:5173"),
		JWTSecret:    get("JWT_SECRET", ""),
		DispatchCron: "0 5 * * *",
	}
	// An explicitly empty DISPATCH_CRON disables the dispatcher.
	if v, ok := lookup("DISPATCH_CRON"); ok {
		cfg.DispatchCron = v
	}

	dsn := get("DB_DSN_PRIMARY", "")
	if dsn == "" {
		return cfg, errors.New("config: DB_DSN_PRIMARY is not set")
	}
	dsn, err := normalizeDSN(dsn)
	if err != nil {
		return cfg, fmt.Errorf("config: DB_DSN_PRIMARY: %w", err)
	}
	cfg.DSN = dsn

	if cfg.JWTSecret == "" {
		if cfg.Env == EnvProduction {
			return cfg, errors.New("config: JWT_SECRET has to be set in production")
		}
		cfg.JWTSecret = "development-secret"
	}

	if cfg.JWTTTL, err = time.ParseDuration(get("JWT_TTL", "72h")); err != nil {
		return cfg, fmt.Errorf("config: JWT_TTL: %w", err)
	}
	if cfg.Location, err = time.LoadLocation(get("SCHEDULE_TIMEZONE", "UTC")); err != nil {
		return cfg, fmt.Errorf("config: SCHEDULE_TIMEZONE: %w", err)
	}
	if cfg.SyntheticFallback, err = strconv.ParseBool(get("SYNTHETIC_SCHEDULE_FALLBACK", "false")); err != nil {
		return cfg, fmt.Errorf("config: SYNTHETIC_SCHEDULE_FALLBACK: %w", err)
	}
	if cfg.RunMigrations, err = strconv.ParseBool(get("RUN_MIGRATIONS", "true")); err != nil {
		return cfg, fmt.Errorf("config: RUN_MIGRATIONS: %w", err)
	}

	return cfg, nil
}

// normalizeDSN forces parseTime so DATE and DATETIME columns scan into
// time.Time, and clientFoundRows so a guarded update reports matched rows.
func normalizeDSN(dsn string) (string, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	c.ParseTime = true
	c.Loc = time.UTC
	c.ClientFoundRows = true
	return c.FormatDSN(), nil
}
