package app

import (
	"errors"
	"fmt"

	"github.com/vk/mentionrank/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // hcl file or directory, optional

	// Overrides are values set explicitly on the command line. They win
	// over anything the config file says.
	Overrides Overrides

	LogFormat string
	LogLevel  string
	HTTPPort  int
	Serve     bool // keep serving HTTP after ranking until the context ends
}

// Overrides carries optional per-run values. A nil field leaves the loaded
// configuration untouched.
type Overrides struct {
	InputPath     *string
	Precision     *float64
	Damping       *float64
	MaxIterations *int
	Top           *int
	Format        *string
	PublishURL    *string
}

// Apply writes every set override onto m.
func (o Overrides) Apply(m *config.Model) {
	if o.InputPath != nil {
		m.Input.Path = *o.InputPath
	}
	if o.Precision != nil {
		m.Ranking.Precision = *o.Precision
	}
	if o.Damping != nil {
		m.Ranking.Damping = *o.Damping
	}
	if o.MaxIterations != nil {
		m.Ranking.MaxIterations = *o.MaxIterations
	}
	if o.Top != nil {
		m.Output.Top = *o.Top
	}
	if o.Format != nil {
		m.Output.Format = *o.Format
	}
	if o.PublishURL != nil {
		if m.Publish == nil {
			m.Publish = &config.Publish{}
		}
		m.Publish.URL = *o.PublishURL
	}
}

// Supported log formats.
const (
	LogFormatJSON   = "json"
	LogFormatText   = "text"
	LogFormatPretty = "pretty"
)

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && (cfg.Overrides.InputPath == nil || *cfg.Overrides.InputPath == "") {
		return nil, errors.New("an input path or a config file is required")
	}

	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatText, LogFormatPretty:
	case "":
		cfg.LogFormat = LogFormatText
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'json', 'text' or 'pretty'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	case "":
		cfg.LogLevel = "info"
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn' or 'error'", cfg.LogLevel)
	}

	if cfg.HTTPPort < 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http port %d", cfg.HTTPPort)
	}
	if cfg.Serve && cfg.HTTPPort == 0 {
		return nil, errors.New("serve mode requires an http port")
	}

	return &cfg, nil
}
