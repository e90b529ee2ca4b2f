package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// configFieldNames maps struct fields to the names users see on the CLI.
var configFieldNames = map[string]string{
	"URL":       "url",
	"AuthToken": "auth",
}

// ConfigService loads and persists connection settings.
type ConfigService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewConfigService creates a new config service.
func NewConfigService(configStore driven.ConfigStore) *ConfigService {
	return &ConfigService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Load reads the stored configuration. Absent keys yield empty values.
func (s *ConfigService) Load() (domain.Config, error) {
	if err := s.configStore.Load(); err != nil {
		return domain.Config{}, fmt.Errorf("%w: read %s: %w", domain.ErrConfig, s.configStore.Path(), err)
	}

	return domain.Config{
		URL:       s.configStore.GetString(domain.ConfigKeyURL),
		AuthToken: s.configStore.GetString(domain.ConfigKeyAuth),
	}, nil
}

// Apply returns cfg with any non-nil overrides applied.
func (s *ConfigService) Apply(cfg domain.Config, overrides driving.ConfigOverrides) domain.Config {
	if overrides.URL != nil {
		cfg.URL = *overrides.URL
	}
	if overrides.Auth != nil {
		cfg.AuthToken = *overrides.Auth
	}
	return cfg
}

// Validate checks that cfg has a usable URL and token.
func (s *ConfigService) Validate(cfg domain.Config) error {
	err := s.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrConfig, strings.Join(msgs, "; "))
}

// Store persists cfg.
func (s *ConfigService) Store(cfg domain.Config) error {
	if err := s.configStore.Set(domain.ConfigKeyURL, cfg.URL); err != nil {
		return fmt.Errorf("%w: save url: %w", domain.ErrConfig, err)
	}
	if err := s.configStore.Set(domain.ConfigKeyAuth, cfg.AuthToken); err != nil {
		return fmt.Errorf("%w: save auth: %w", domain.ErrConfig, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *ConfigService) Path() string {
	return s.configStore.Path()
}

func formatFieldError(fe validator.FieldError) string {
	field, ok := configFieldNames[fe.Field()]
	if !ok {
		field = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required (set it with --%s or run 'paperless store')", field, field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
