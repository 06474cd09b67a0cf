// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing driver configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Driver() DriverConfig
	Chrome() ChromeConfig

	// Driver setters
	SetDriverDefaultActionTimeout(d time.Duration)
	SetDriverEventRate(eventsPerSecond float64)

	// Chrome setters
	SetChromeHeadless(bool)
	SetChromeNavigationTimeout(d time.Duration)
}

// Config holds the entire driver configuration. Private fields enforce
// access through the Interface accessors.
type Config struct {
	logger LoggerConfig
	driver DriverConfig
	chrome ChromeConfig
}

var _ Interface = (*Config)(nil)

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// DriverConfig holds platform-independent driver behavior.
type DriverConfig struct {
	// DefaultActionTimeout bounds scheduled action waits when the caller
	// does not pick a timeout explicitly.
	DefaultActionTimeout time.Duration `mapstructure:"default_action_timeout" yaml:"default_action_timeout"`
	// EventRate paces synthesized input injection, events per second.
	EventRate float64 `mapstructure:"event_rate" yaml:"event_rate"`
}

// ChromeConfig configures the chromedp-backed adapter.
type ChromeConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath          string        `mapstructure:"exec_path" yaml:"exec_path"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// --- Interface accessors ---

func (c *Config) Logger() LoggerConfig { return c.logger }
func (c *Config) Driver() DriverConfig { return c.driver }
func (c *Config) Chrome() ChromeConfig { return c.chrome }

func (c *Config) SetDriverDefaultActionTimeout(d time.Duration) { c.driver.DefaultActionTimeout = d }
func (c *Config) SetDriverEventRate(r float64)                  { c.driver.EventRate = r }
func (c *Config) SetChromeHeadless(h bool)                      { c.chrome.Headless = h }
func (c *Config) SetChromeNavigationTimeout(d time.Duration)    { c.chrome.NavigationTimeout = d }

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.driver.EventRate <= 0 {
		return fmt.Errorf("driver.event_rate must be positive, got %f", c.driver.EventRate)
	}
	if c.driver.DefaultActionTimeout < 0 {
		return errors.New("driver.default_action_timeout must not be negative")
	}
	return nil
}

// NewDefaultConfig creates a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := fromViper(v)
	if err != nil {
		// Cannot happen with pure defaults.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// SetDefaults initializes default values for all configuration sections.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "droiddriver")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Driver --
	v.SetDefault("driver.default_action_timeout", "10s")
	v.SetDefault("driver.event_rate", 50.0)

	// -- Chrome adapter --
	v.SetDefault("chrome.headless", true)
	v.SetDefault("chrome.exec_path", "")
	v.SetDefault("chrome.navigation_timeout", "90s")
	v.SetDefault("chrome.user_agent", "")
}

// Load reads configuration from the given file, or from
// ~/.droiddriver/config.yaml when path is empty, layered over defaults
// and DROIDDRIVER_* environment variables. A missing default config file
// is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("DROIDDRIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".droiddriver"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading default config: %w", err)
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var raw struct {
		Logger LoggerConfig `mapstructure:"logger"`
		Driver DriverConfig `mapstructure:"driver"`
		Chrome ChromeConfig `mapstructure:"chrome"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg := &Config{logger: raw.Logger, driver: raw.Driver, chrome: raw.Chrome}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
