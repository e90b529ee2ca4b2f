// Package cli implements the paperless command-line interface with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Services are the core services a command works with, built for one
// effective configuration.
type Services struct {
	Correspondents driving.CorrespondentService
	Documents      driving.DocumentService
	Migration      driving.MigrationService
	Upload         driving.UploadService
}

// ServiceFactory builds the services for a validated configuration.
// When noop is set, mutating operations must be suppressed.
type ServiceFactory func(cfg domain.Config, noop bool) (*Services, error)

var (
	configService  driving.ConfigService
	serviceFactory ServiceFactory
)

// Global flags.
var (
	flagURL     string
	flagAuth    string
	flagNoop    bool
	flagVerbose bool
	flagOutput  string
)

var rootCmd = &cobra.Command{
	Use:   "paperless",
	Short: "Interact with a Paperless-ngx server",
	Long: `Command-line tools for a Paperless-ngx document server.

List correspondents and documents, move documents between correspondents,
delete correspondents, and upload files while following their ingestion.

The server URL and API token are read from the configuration file and can be
overridden with --url and --auth. Use 'paperless store' to save them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagURL, "url", "", "Paperless server URL")
	flags.StringVar(&flagAuth, "auth", "", "API token")
	flags.BoolVar(&flagNoop, "noop", false, "Do not make changes, only report what would happen")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug output to stderr")
	flags.StringVarP(&flagOutput, "output", "o", formatText, "Output format: text, json or yaml")
}

// SetConfigService sets the service used to load and store configuration.
func SetConfigService(svc driving.ConfigService) {
	configService = svc
}

// SetServiceFactory sets how services are built for a configuration.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func preRun(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if !validFormat(flagOutput) {
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidInput, flagOutput)
	}
	return nil
}

// effectiveConfig loads the stored configuration and applies flag overrides.
func effectiveConfig(cmd *cobra.Command) (domain.Config, error) {
	if configService == nil {
		return domain.Config{}, errors.New("config service not configured")
	}

	logger.Info("Loading configuration from %s", configService.Path())
	cfg, err := configService.Load()
	if err != nil {
		return domain.Config{}, err
	}

	var overrides driving.ConfigOverrides
	if cmd.Flags().Changed("url") {
		overrides.URL = &flagURL
	}
	if cmd.Flags().Changed("auth") {
		overrides.Auth = &flagAuth
	}
	return configService.Apply(cfg, overrides), nil
}

// buildServices builds the core services for the effective configuration.
func buildServices(cmd *cobra.Command) (*Services, error) {
	if serviceFactory == nil {
		return nil, errors.New("service factory not configured")
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := configService.Validate(cfg); err != nil {
		return nil, err
	}

	return serviceFactory(cfg, flagNoop)
}
