package driving

import "github.com/custodia-labs/paperless-cli/internal/core/domain"

// ConfigOverrides are per-invocation values that replace loaded ones.
// Nil fields leave the loaded value unchanged.
type ConfigOverrides struct {
	URL  *string
	Auth *string
}

// ConfigService loads, overrides, validates and persists the configuration.
type ConfigService interface {
	// Load reads the stored configuration. Missing values are empty.
	Load() (domain.Config, error)

	// Apply returns cfg with the overrides applied.
	Apply(cfg domain.Config, overrides ConfigOverrides) domain.Config

	// Validate checks that cfg is usable for talking to the server.
	Validate(cfg domain.Config) error

	// Store persists cfg.
	Store(cfg domain.Config) error

	// Path returns where the configuration is stored.
	Path() string
}
