// Package config loads DiveBot settings from a YAML file and DIVEBOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ngmaloney/divebot/internal/database"
	"github.com/ngmaloney/divebot/internal/geocoding"
	"github.com/ngmaloney/divebot/internal/noaa"
	"github.com/ngmaloney/divebot/internal/stations"
)

// EnvPrefix is prepended to every environment override, e.g. DIVEBOT_LOG_LEVEL
const EnvPrefix = "DIVEBOT"

// Config holds all bot settings.
type Config struct {
	StationsDir     string
	ThresholdKm     float64
	RefreshInterval time.Duration // 0 disables periodic catalog reloads

	Timezone string
	Location *time.Location

	GeocoderURL       string
	GeocoderUserAgent string

	DataGetterURL string
	MDAPIURL      string
	WeatherURL    string

	DatabasePath string
	WebhookURL   string
	HTTPAddr     string

	LogLevel  string
	LogFormat string
}

// New returns a viper instance with defaults and env bindings applied, reading
// cfgFile if given or $HOME/.divebot.yaml if present.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return v, nil
	}
	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".divebot")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// SetDefaults registers the default for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("stations.dir", filepath.Join("data", "stations"))
	v.SetDefault("stations.threshold_km", stations.DefaultThresholdKm)
	v.SetDefault("stations.refresh_interval", "0s")
	v.SetDefault("report.timezone", "America/New_York")
	v.SetDefault("geocoder.url", geocoding.DefaultNominatimURL)
	v.SetDefault("geocoder.user_agent", geocoding.DefaultUserAgent)
	v.SetDefault("noaa.datagetter_url", noaa.DefaultDataGetterURL)
	v.SetDefault("noaa.mdapi_url", stations.DefaultMDAPIBaseURL)
	v.SetDefault("noaa.weather_url", noaa.DefaultWeatherURL)
	v.SetDefault("database.path", database.DBPath())
	v.SetDefault("relay.webhook_url", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads settings from v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		StationsDir:       v.GetString("stations.dir"),
		ThresholdKm:       v.GetFloat64("stations.threshold_km"),
		RefreshInterval:   v.GetDuration("stations.refresh_interval"),
		Timezone:          v.GetString("report.timezone"),
		GeocoderURL:       v.GetString("geocoder.url"),
		GeocoderUserAgent: v.GetString("geocoder.user_agent"),
		DataGetterURL:     v.GetString("noaa.datagetter_url"),
		MDAPIURL:          v.GetString("noaa.mdapi_url"),
		WeatherURL:        v.GetString("noaa.weather_url"),
		DatabasePath:      v.GetString("database.path"),
		WebhookURL:        v.GetString("relay.webhook_url"),
		HTTPAddr:          v.GetString("http.addr"),
		LogLevel:          strings.ToLower(v.GetString("log.level")),
		LogFormat:         strings.ToLower(v.GetString("log.format")),
	}

	if cfg.StationsDir == "" {
		return nil, errors.New("stations.dir is required")
	}
	if cfg.ThresholdKm <= 0 {
		return nil, fmt.Errorf("stations.threshold_km must be positive, got %v", cfg.ThresholdKm)
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("stations.refresh_interval must not be negative, got %v", cfg.RefreshInterval)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report.timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("log.format must be json or text, got %q", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return nil, fmt.Errorf("invalid log.level %q", cfg.LogLevel)
	}

	if cfg.DatabasePath == "" {
		return nil, errors.New("database.path is required")
	}

	return cfg, nil
}
