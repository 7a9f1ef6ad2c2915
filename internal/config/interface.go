package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, later files overriding
	// earlier ones, and returns the format-agnostic model with defaults
	// applied.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
