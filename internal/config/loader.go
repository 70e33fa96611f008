// Package config resolves CLI settings from defaults, environment variables,
// and command-line flags using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
	"github.com/namelens/gh-whenreset/internal/output"
	"github.com/namelens/gh-whenreset/internal/source"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "GH_WHENRESET"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"all":           "all",
	"tz":            "tz",
	"source":        "source",
	"output-format": "output_format",
	"verbose":       "verbose",
	"gh":            "gh.path",
	"api-url":       "api.url",
}

// New returns a viper instance with defaults and environment lookup wired.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The token follows the gh CLI's own lookup order after our prefixed name.
	_ = v.BindEnv("api.token", EnvPrefix+"_TOKEN", "GH_TOKEN", "GITHUB_TOKEN")

	return v
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("all", false)
	v.SetDefault("tz", "")
	v.SetDefault("source", string(source.KindAuto))
	v.SetDefault("output_format", string(output.FormatTSV))
	v.SetDefault("verbose", false)

	v.SetDefault("gh.path", source.DefaultGHBinary)
	v.SetDefault("api.url", "")
}

// BindFlags binds every known flag present in flags to its config key. A
// flag only overrides the environment when it was set explicitly.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load decodes the layered settings held by v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, apperrors.WrapConfigInvalid(err, fmt.Sprintf("failed to decode settings: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes enumerated settings, rejecting unknown values.
func (c *Config) Validate() error {
	kind, err := source.ParseKind(string(c.Source))
	if err != nil {
		return err
	}
	c.Source = kind

	format, err := output.ParseFormat(string(c.OutputFormat))
	if err != nil {
		return apperrors.WrapConfigInvalid(err, err.Error())
	}
	c.OutputFormat = format

	c.GH.Path = strings.TrimSpace(c.GH.Path)
	if c.GH.Path == "" {
		c.GH.Path = source.DefaultGHBinary
	}
	c.API.URL = strings.TrimSpace(c.API.URL)
	c.API.Token = strings.TrimSpace(c.API.Token)
	return nil
}
