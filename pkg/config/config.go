package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/util"
)

// Config collects everything the pipeline needs to talk to the outside
// world. Values come from an optional YAML file overridden by
// TRANSITIE_* environment variables.
type Config struct {
	Listen string `yaml:"listen"`

	Static struct {
		BundleURL string `yaml:"bundleURL" validate:"omitempty,url"`
		DataDir   string `yaml:"dataDir"`
	} `yaml:"static"`

	Realtime struct {
		FeedURL        string `yaml:"feedURL" validate:"omitempty,url"`
		APIKey         string `yaml:"apiKey"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" validate:"gte=0"`
	} `yaml:"realtime"`

	RefreshIntervalSeconds int `yaml:"refreshIntervalSeconds" validate:"gte=0"`
}

const (
	defaultListen                 = ":8080"
	defaultDataDir                = "gtfs-static"
	defaultFeedTimeoutSeconds     = 30
	defaultRefreshIntervalSeconds = 60
)

// RealtimeTimeout is the bound on one realtime feed fetch.
func (c *Config) RealtimeTimeout() time.Duration {
	return time.Duration(c.Realtime.TimeoutSeconds) * time.Second
}

// RefreshInterval is the cadence of the periodic tracker loop.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// Load reads the optional config file then applies environment overrides
// and defaults.
func Load() (*Config, error) {
	var cfg Config

	env := util.GetEnvironmentVariables()

	path := env["TRANSITIE_CONFIG"]
	if path == "" {
		path = "config.yml"
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if env["TRANSITIE_CONFIG"] != "" {
		// An explicitly requested file must exist
		return nil, err
	}

	if env["TRANSITIE_LISTEN"] != "" {
		cfg.Listen = env["TRANSITIE_LISTEN"]
	}
	if env["TRANSITIE_GTFS_STATIC_URL"] != "" {
		cfg.Static.BundleURL = env["TRANSITIE_GTFS_STATIC_URL"]
	}
	if env["TRANSITIE_GTFS_DATA_DIR"] != "" {
		cfg.Static.DataDir = env["TRANSITIE_GTFS_DATA_DIR"]
	}
	if env["TRANSITIE_REALTIME_URL"] != "" {
		cfg.Realtime.FeedURL = env["TRANSITIE_REALTIME_URL"]
	}
	if env["TRANSITIE_REALTIME_API_KEY"] != "" {
		cfg.Realtime.APIKey = env["TRANSITIE_REALTIME_API_KEY"]
	}
	if env["TRANSITIE_REFRESH_INTERVAL"] != "" {
		interval, err := time.ParseDuration(env["TRANSITIE_REFRESH_INTERVAL"])
		if err != nil {
			return nil, err
		}
		cfg.RefreshIntervalSeconds = int(interval / time.Second)
	}

	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.Static.DataDir == "" {
		cfg.Static.DataDir = defaultDataDir
	}
	if cfg.Realtime.TimeoutSeconds == 0 {
		cfg.Realtime.TimeoutSeconds = defaultFeedTimeoutSeconds
	}
	if cfg.RefreshIntervalSeconds == 0 {
		cfg.RefreshIntervalSeconds = defaultRefreshIntervalSeconds
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
