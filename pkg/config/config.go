// Package config loads the process configuration from the environment.
//
// An optional .env file in the working directory is read first; variables
// already set in the environment take precedence over it. The populated
// Config is then validated.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/tidepool/pkg/lowtide"
	"github.com/spencer-p/tidepool/pkg/noaa"
	"github.com/spencer-p/tidepool/pkg/sunset"
)

// Config is read once at startup and never modified afterwards.
type Config struct {
	Port   string `default:"8080" validate:"numeric"`
	Prefix string `default:"/" validate:"startswith=/"`

	// The tide station and how to ask NOAA about it.
	Station      int           `default:"9413745" validate:"gt=0"`
	Application  string        `default:"tidepool_app" validate:"required"`
	Datum        string        `default:"MLLW" validate:"required"`
	BaseURL      string        `envconfig:"NOAA_URL" default:"https://api.tidesandcurrents.noaa.gov/api/prod/datagetter" validate:"url"`
	FetchTimeout time.Duration `split_words:"true" default:"10s" validate:"gt=0"`

	// TimeZone is where the station keeps its local standard/daylight time.
	TimeZone  string  `split_words:"true" default:"America/Los_Angeles" validate:"required"`
	Latitude  float64 `default:"36.9583" validate:"latitude"`
	Longitude float64 `default:"-122.0173" validate:"longitude"`

	// Threshold is the highest low tide, in feet, that still counts as good
	// for tidepooling.
	Threshold      float64 `default:"1.5"`
	LookAheadHours float64 `split_words:"true" default:"12" validate:"gt=0"`

	location *time.Location
}

// Load reads .env, then the environment, and validates the result.
func Load() (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv populates a Config from environment variables only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default is the configuration with every default applied, as if the
// environment were empty.
func Default() *Config {
	cfg := &Config{
		Port:           "8080",
		Prefix:         "/",
		Station:        int(noaa.SantaCruz),
		Application:    noaa.DefaultApplication,
		Datum:          noaa.DefaultDatum,
		BaseURL:        noaa.NOAA_URL,
		FetchTimeout:   noaa.DefaultTimeout,
		TimeZone:       "America/Los_Angeles",
		Latitude:       sunset.SantaCruz.Lat,
		Longitude:      sunset.SantaCruz.Long,
		Threshold:      lowtide.DefaultThreshold,
		LookAheadHours: lowtide.DefaultLookAheadHours,
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks field constraints and resolves the time zone.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid configuration: time zone %q: %w", c.TimeZone, err)
	}
	c.location = loc
	return nil
}

// Location is the station's time zone. Only valid after Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// NOAA returns the options for a prediction client of the configured station.
func (c *Config) NOAA() noaa.Options {
	return noaa.Options{
		BaseURL:     c.BaseURL,
		Station:     noaa.Station(c.Station),
		Application: c.Application,
		Datum:       c.Datum,
		Location:    c.Location(),
		Timeout:     c.FetchTimeout,
	}
}

// Place is where the station is, for sun events.
func (c *Config) Place() sunset.Place {
	return sunset.Place{
		Lat:      c.Latitude,
		Long:     c.Longitude,
		Location: c.Location(),
	}
}
