package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gradefetch-backend/internal/portal"
	"gradefetch-backend/lib/configutil"
)

const defaultPort = 5000

type Config struct {
	Port           int      `json:"port"`
	AllowedOrigins []string `json:"allowed_origins"`
	// Environment "development" lifts the CORS origin list.
	Environment string `json:"environment"`
	// RequestTimeout is a duration string ("90s"), empty means no timeout.
	RequestTimeout string        `json:"request_timeout"`
	Portal         portal.Config `json:"portal"`
}

func (c Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("request_timeout: %w", err)
	}
	return timeout, nil
}

// LoadConfig reads the config file (if any) and applies environment
// overrides on top of it.
func LoadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", path)
	} else if err != nil {
		return Config{}, err
	}

	configutil.EnvInt(&cfg.Port, "PORT")
	configutil.EnvList(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")
	configutil.EnvString(&cfg.Environment, "ENVIRONMENT")
	configutil.EnvString(&cfg.Portal.Bin, "BROWSER_BIN")
	configutil.EnvString(&cfg.Portal.LoginURL, "PORTAL_LOGIN_URL")

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}
	_, err = cfg.Timeout()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
