// SPDX-License-Identifier: MIT

// Package config loads the skydata command configuration.
//
// Sources, lowest precedence first: `default` struct tags, an optional
// skydata.yaml in the config directory, and SKYDATA_-prefixed environment
// variables (SKYDATA_EXPORT_DATA_TYPE -> export.data_type). A .env file in
// the directory is loaded into the environment first and overrides it.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/katalvlaran/skydata/fits"
	"github.com/katalvlaran/skydata/internal/logger"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKYDATA"

// Config holds all configuration for the command.
type Config struct {
	// Log configures the logger.
	Log logger.Config `mapstructure:"log"`
	// Export configures FITS output.
	Export ExportConfig `mapstructure:"export"`
	// Interp configures table reading.
	Interp InterpConfig `mapstructure:"interp"`
	// Match configures catalog matching.
	Match MatchConfig `mapstructure:"match"`
}

// ExportConfig holds FITS export settings.
type ExportConfig struct {
	// DataType is the storage class name or BITPIX ("float32", "-64", "int16").
	DataType string `mapstructure:"data_type" default:"float32"`
	// Precision is the export quantum; 0 keeps full precision.
	Precision float64 `mapstructure:"precision" default:"0"`
}

// InterpConfig holds table reading settings.
type InterpConfig struct {
	// Strict aborts on the first malformed line.
	Strict bool `mapstructure:"strict" default:"false"`
}

// MatchConfig holds catalog matching settings.
type MatchConfig struct {
	// RadiusArcsec is the match radius in arc seconds.
	RadiusArcsec float64 `mapstructure:"radius_arcsec" default:"1"`
}

// LoadConfig loads configuration from the directory path.
func LoadConfig(path string) (*Config, error) {
	// Missing .env is fine (e.g. production).
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	v.SetConfigName("skydata")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if _, err := c.DataType(); err != nil {
		return fmt.Errorf("config: export.data_type: %w", err)
	}
	if c.Export.Precision < 0 {
		return fmt.Errorf("config: export.precision %g is negative", c.Export.Precision)
	}
	if c.Match.RadiusArcsec < 0 {
		return fmt.Errorf("config: match.radius_arcsec %g is negative", c.Match.RadiusArcsec)
	}

	return nil
}

// DataType parses Export.DataType.
func (c *Config) DataType() (fits.DataType, error) {
	return fits.ParseDataType(c.Export.DataType)
}

// bindValues walks the struct and registers every `mapstructure` key with
// its `default` tag, so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set, even if empty, to register the key for AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
