package config

import (
	"github.com/namelens/gh-whenreset/internal/output"
	"github.com/namelens/gh-whenreset/internal/source"
)

// Config represents the settings of a single invocation. Values are layered:
// built-in defaults, then GH_WHENRESET_* environment variables, then flags.
type Config struct {
	// All broadens selection to every valid bucket, not only exhausted ones.
	All bool `mapstructure:"all"`

	// Timezone is an IANA zone name; empty means the local zone.
	Timezone string `mapstructure:"tz"`

	// Source selects where the payload comes from.
	// Valid values: auto, stdin, gh, api
	Source source.Kind `mapstructure:"source"`

	// OutputFormat selects the rendering.
	// Valid values: tsv, json, yaml, table
	OutputFormat output.Format `mapstructure:"output_format"`

	Verbose bool `mapstructure:"verbose"`

	GH  GHConfig  `mapstructure:"gh"`
	API APIConfig `mapstructure:"api"`
}

// GHConfig configures the gh CLI source.
type GHConfig struct {
	Path string `mapstructure:"path"`
}

// APIConfig configures the direct GitHub API source.
type APIConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}
