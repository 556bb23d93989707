package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Theme             string        `toml:"theme"`
	ServerURL         string        `toml:"server_url"`
	PollInterval      time.Duration `toml:"-"`
	PollIntervalStr   string        `toml:"poll_interval"`
	HealthInterval    time.Duration `toml:"-"`
	HealthIntervalStr string        `toml:"health_interval"`
	MaxHistory        int           `toml:"max_history"`
	Serve             ServeConfig   `toml:"serve"`
}

// ServeConfig holds the detection backend settings used by `vigia serve`.
type ServeConfig struct {
	ListenAddr       string        `toml:"listen_addr"`
	FrameInterval    time.Duration `toml:"-"`
	FrameIntervalStr string        `toml:"frame_interval"`
	ExpireAfter      time.Duration `toml:"-"`
	ExpireAfterStr   string        `toml:"expire_after"`
	MaxDisappeared   int           `toml:"max_disappeared"`
	MaxDistance      float64       `toml:"max_distance"`
	MinConfidence    float64       `toml:"min_confidence"`
	MinOverlap       float64       `toml:"min_overlap"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:             "solarized-dark",
		ServerURL:         "http://localhost:5000",
		PollInterval:      3 * time.Second,
		PollIntervalStr:   "3s",
		HealthInterval:    15 * time.Second,
		HealthIntervalStr: "15s",
		MaxHistory:        120,
		Serve: ServeConfig{
			ListenAddr:       ":5000",
			FrameInterval:    2 * time.Second,
			FrameIntervalStr: "2s",
			ExpireAfter:      10 * time.Second,
			ExpireAfterStr:   "10s",
			MaxDisappeared:   20,
			MaxDistance:      120.0,
			MinConfidence:    0.5,
			MinOverlap:       0.05,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.PollInterval = parseDuration(cfg.PollIntervalStr, cfg.PollInterval)
	cfg.HealthInterval = parseDuration(cfg.HealthIntervalStr, cfg.HealthInterval)
	cfg.Serve.FrameInterval = parseDuration(cfg.Serve.FrameIntervalStr, cfg.Serve.FrameInterval)
	cfg.Serve.ExpireAfter = parseDuration(cfg.Serve.ExpireAfterStr, cfg.Serve.ExpireAfter)
	return cfg, nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func SaveConfig(cfg *Config, path string) error {
	cfg.PollIntervalStr = cfg.PollInterval.String()
	cfg.HealthIntervalStr = cfg.HealthInterval.String()
	cfg.Serve.FrameIntervalStr = cfg.Serve.FrameInterval.String()
	cfg.Serve.ExpireAfterStr = cfg.Serve.ExpireAfter.String()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
