package config

import (
	"fmt"
	"time"

	"github.com/vk/mentionrank/internal/publish"
	"github.com/vk/mentionrank/internal/rank"
	"github.com/vk/mentionrank/internal/report"
)

// Model is the unified representation of a run's configuration.
type Model struct {
	Ranking Ranking
	Input   Input
	Output  Output
	Publish *Publish // nil when publishing is not configured
}

// Ranking holds the rank engine parameters.
type Ranking struct {
	Precision     float64
	Damping       float64
	MaxIterations int
}

// Input locates the posts to rank.
type Input struct {
	Path string
}

// Output controls the report.
type Output struct {
	Format string
	Top    int
}

// Publish configures the optional Socket.IO publisher.
type Publish struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Default returns a model populated with the default values.
func Default() *Model {
	opts := rank.DefaultOptions()
	return &Model{
		Ranking: Ranking{
			Precision:     opts.Precision,
			Damping:       opts.Damping,
			MaxIterations: opts.MaxIterations,
		},
		Output: Output{
			Format: report.FormatText,
			Top:    report.DefaultTop,
		},
	}
}

// RankOptions converts the ranking section into engine options.
func (m *Model) RankOptions() rank.Options {
	return rank.Options{
		Precision:     m.Ranking.Precision,
		Damping:       m.Ranking.Damping,
		MaxIterations: m.Ranking.MaxIterations,
	}
}

// PublishConfig converts the publish section into publisher configuration.
// It returns nil when publishing is not configured.
func (m *Model) PublishConfig() *publish.Config {
	if m.Publish == nil || m.Publish.URL == "" {
		return nil
	}
	return &publish.Config{
		URL:                m.Publish.URL,
		Namespace:          m.Publish.Namespace,
		Event:              m.Publish.Event,
		AckEvent:           m.Publish.AckEvent,
		Timeout:            m.Publish.Timeout,
		InsecureSkipVerify: m.Publish.InsecureSkipVerify,
	}
}

// Validate checks every section of the model.
func (m *Model) Validate() error {
	if err := m.RankOptions().Validate(); err != nil {
		return err
	}
	switch m.Output.Format {
	case report.FormatText, report.FormatJSON:
	default:
		return fmt.Errorf("invalid output format %q: must be '%s' or '%s'", m.Output.Format, report.FormatText, report.FormatJSON)
	}
	if m.Output.Top < 0 {
		return fmt.Errorf("invalid output top %d: must not be negative", m.Output.Top)
	}
	if m.Publish != nil && m.Publish.Timeout < 0 {
		return fmt.Errorf("invalid publish timeout %v: must not be negative", m.Publish.Timeout)
	}
	return nil
}
