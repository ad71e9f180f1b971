// Package config loads ophelia's settings from an optional YAML file,
// OPHELIA_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/JackWReid/ophelia/internal/terminal"
)

// Terminal backends.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Config keys.
const (
	KeyBackend        = "backend"
	KeyLogFile        = "log.file"
	KeyLogLevel       = "log.level"
	KeyFallbackWidth  = "fallback.width"
	KeyFallbackHeight = "fallback.height"
)

// Config is the resolved editor configuration.
type Config struct {
	Backend  string
	LogFile  string
	LogLevel string
	// Fallback is the terminal size assumed when the real one cannot be
	// queried.
	Fallback terminal.Size
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, BackendANSI)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyFallbackWidth, terminal.DefaultSize().Width)
	v.SetDefault(KeyFallbackHeight, terminal.DefaultSize().Height)
}

// Load reads the configuration into v and resolves it. When file is empty
// config.yml is looked up in the user config directory, and a missing file
// is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("OPHELIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "ophelia"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{
		Backend:  strings.ToLower(v.GetString(KeyBackend)),
		LogFile:  v.GetString(KeyLogFile),
		LogLevel: v.GetString(KeyLogLevel),
		Fallback: terminal.Size{
			Width:  v.GetInt(KeyFallbackWidth),
			Height: v.GetInt(KeyFallbackHeight),
		},
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendANSI, BackendTcell)
	}
	if c.Fallback.Width <= 0 || c.Fallback.Height <= 0 {
		return fmt.Errorf("fallback size must be positive, got %dx%d", c.Fallback.Width, c.Fallback.Height)
	}
	return nil
}
