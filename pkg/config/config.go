// Package config loads cinetime settings from .cinetime.yaml, CINETIME_*
// environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/cinetime/pkg/clock"
	"tableflip.dev/cinetime/pkg/query"
	"tableflip.dev/cinetime/pkg/store"
)

// Keys understood in the config file. Environment variables use the
// CINETIME_ prefix and upper case, e.g. CINETIME_API_URL.
const (
	KeyPath         = "path"
	KeyStorage      = "storage"
	KeyRedisAddr    = "redis_addr"
	KeyAPIURL       = "api_url"
	KeyTickInterval = "tick_interval"
	KeyDebounce     = "debounce"
	KeyLogLevel     = "log_level"
)

// Settings is the resolved configuration. It satisfies store.Config.
type Settings struct {
	Path         string        `json:"path"`
	Storage      string        `json:"storage"`
	Redis        string        `json:"redis_addr"`
	APIURL       string        `json:"api_url"`
	TickInterval time.Duration `json:"tick_interval"`
	Debounce     time.Duration `json:"debounce"`
	LogLevel     string        `json:"log_level"`
}

var _ store.Config = (*Settings)(nil)

func (s *Settings) Driver() string    { return s.Storage }
func (s *Settings) BasePath() string  { return s.Path }
func (s *Settings) RedisAddr() string { return s.Redis }

// Load reads the configuration. The search path is $CINETIME_CONFIG_PATH
// when set, then the working directory, then the home directory.
func Load() (*Settings, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Settings, error) {
	v.SetDefault(KeyPath, "~/.cinetime")
	v.SetDefault(KeyStorage, store.DriverDiskv)
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyAPIURL, "http://localhost:8080")
	v.SetDefault(KeyTickInterval, clock.DefaultInterval)
	v.SetDefault(KeyDebounce, query.DefaultDelay)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetConfigName(".cinetime") // .yaml is implicit
	v.SetEnvPrefix("CINETIME")
	v.AutomaticEnv()

	if override := os.Getenv("CINETIME_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return nil, fmt.Errorf("config: expanding %s: %w", KeyPath, err)
	}

	s := &Settings{
		Path:         path,
		Storage:      v.GetString(KeyStorage),
		Redis:        v.GetString(KeyRedisAddr),
		APIURL:       v.GetString(KeyAPIURL),
		TickInterval: v.GetDuration(KeyTickInterval),
		Debounce:     v.GetDuration(KeyDebounce),
		LogLevel:     v.GetString(KeyLogLevel),
	}
	if s.TickInterval <= 0 {
		return nil, fmt.Errorf("config: %s must be positive, got %s", KeyTickInterval, s.TickInterval)
	}
	if s.Debounce < 0 {
		return nil, fmt.Errorf("config: %s must not be negative, got %s", KeyDebounce, s.Debounce)
	}
	return s, nil
}
