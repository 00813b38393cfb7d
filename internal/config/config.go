package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Centavo"`
	}

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	}

	Notifications struct {
		PollInterval time.Duration `envconfig:"NOTIFY_POLL_INTERVAL" default:"20s"`
		DismissAfter time.Duration `envconfig:"NOTIFY_DISMISS_AFTER" default:"5s"`
	}

	Session struct {
		// Path overrides the default session file location
		// (<user config dir>/centavo/session.json).
		Path string `envconfig:"SESSION_PATH"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return &cfg, nil
}
