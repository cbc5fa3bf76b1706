// Package config assembles runtime settings from defaults, an optional config file,
// CHATSIM_* environment variables, and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chatsim/src/models"
	"chatsim/src/services/responder"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CHATSIM_MIN_DELAY.
const EnvPrefix = "chatsim"

// Keys shared by flags, env, and config files.
const (
	KeyConfigFile  = "config"
	KeyMinDelay    = "min-delay"
	KeyMaxDelay    = "max-delay"
	KeyResponses   = "responses"
	KeyLogFile     = "log-file"
	KeyLogLevel    = "log-level"
	KeyMetricsAddr = "metrics-addr"
	KeyNoAltScreen = "no-alt-screen"
)

// Config holds everything main needs to build the application.
type Config struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	ResponsesFile string
	LogFile       string
	LogLevel      string
	MetricsAddr   string
	AltScreen     bool
}

// DefaultLogFile is where logs go unless overridden. The terminal belongs to the UI.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "chatsim.log")
}

// SetDefaults registers default values and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMinDelay, responder.DefaultMinDelay)
	v.SetDefault(KeyMaxDelay, responder.DefaultMaxDelay)
	v.SetDefault(KeyResponses, "")
	v.SetDefault(KeyLogFile, DefaultLogFile())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeyNoAltScreen, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the optional config file named by the "config" key and returns the
// validated configuration.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &models.StorageError{Message: fmt.Sprintf("failed to read config file %s", path), Err: err}
		}
	}

	cfg := Config{
		MinDelay:      v.GetDuration(KeyMinDelay),
		MaxDelay:      v.GetDuration(KeyMaxDelay),
		ResponsesFile: v.GetString(KeyResponses),
		LogFile:       v.GetString(KeyLogFile),
		LogLevel:      strings.ToLower(v.GetString(KeyLogLevel)),
		MetricsAddr:   v.GetString(KeyMetricsAddr),
		AltScreen:     !v.GetBool(KeyNoAltScreen),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks delays and the log level.
func (c Config) Validate() error {
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return &models.ValidationError{Message: "delays must not be negative"}
	}
	if c.MaxDelay < c.MinDelay {
		return &models.ValidationError{Message: fmt.Sprintf("max delay %s is shorter than min delay %s", c.MaxDelay, c.MinDelay)}
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, &models.ValidationError{Message: fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	return level, nil
}
