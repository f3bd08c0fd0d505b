package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	AppName    string           `yaml:"app_name" envconfig:"APP_NAME"`
	AppVersion string           `yaml:"app_version" envconfig:"APP_VERSION"`
	AppEnv     string           `yaml:"app_env" envconfig:"APP_ENV"`
	Port       string           `yaml:"port" envconfig:"PORT"`
	SentryDSN  string           `yaml:"sentry_dsn,omitempty" envconfig:"SENTRY_DSN"`
	WeatherAPI WeatherAPIConfig `yaml:"weather_api"`
	Log        LogConfig        `yaml:"log"`
}

type WeatherAPIConfig struct {
	BaseURL string        `yaml:"base_url" envconfig:"WEATHER_BASE_URL"`
	APIKey  string        `yaml:"api_key,omitempty" envconfig:"WEATHER_API_KEY"`
	Units   string        `yaml:"units,omitempty" envconfig:"WEATHER_UNITS"`
	Lang    string        `yaml:"lang,omitempty" envconfig:"WEATHER_LANG"`
	Timeout time.Duration `yaml:"timeout" envconfig:"WEATHER_TIMEOUT"`
}

type LogConfig struct {
	// File enables a rotated log file next to stdout when set.
	File       string `yaml:"file,omitempty" envconfig:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" envconfig:"LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" envconfig:"LOG_MAX_BACKUPS"`
}

func defaults() Config {
	return Config{
		AppName:    "current-weather",
		AppVersion: "1.0.0",
		AppEnv:     "development",
		Port:       "8080",
		WeatherAPI: WeatherAPIConfig{
			BaseURL: "http://api.openweathermap.org/data/2.5/weather",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// NewConfig loads DefaultPath and the environment, panicking on failure.
func NewConfig() *Config {
	cnf, err := Load(DefaultPath)
	if err != nil {
		panic(fmt.Errorf("error loading config: %w", err))
	}

	return cnf
}

// Load builds the config from defaults, then the YAML file at path (if it
// exists), then environment variables. Later sources win.
func Load(path string) (*Config, error) {
	cnf := defaults()

	// Read from YAML file first
	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read YAML config %s: %w", path, err)
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return &cnf, nil
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.AppName) == "" {
		errs = append(errs, errors.New("app_name is required"))
	}
	if strings.TrimSpace(c.WeatherAPI.APIKey) == "" {
		errs = append(errs, errors.New("weather_api.api_key is required (WEATHER_API_KEY)"))
	}
	if strings.TrimSpace(c.WeatherAPI.BaseURL) == "" {
		errs = append(errs, errors.New("weather_api.base_url is required"))
	}
	if c.WeatherAPI.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("weather_api.timeout must be positive, got %s", c.WeatherAPI.Timeout))
	}
	switch c.WeatherAPI.Units {
	case "", "standard", "metric", "imperial":
	default:
		errs = append(errs, fmt.Errorf("weather_api.units %q is not one of standard, metric, imperial", c.WeatherAPI.Units))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod"
}
