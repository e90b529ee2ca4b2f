// Command paperless interacts with a Paperless-ngx document server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/paperless"
	"github.com/custodia-labs/paperless-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if paperless.IsUnauthorized(err) || paperless.IsForbidden(err) {
			fmt.Fprintln(os.Stderr, "Check the API token given with --auth or saved with 'paperless store'.")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}

	cli.SetConfigService(services.NewConfigService(store))
	cli.SetServiceFactory(newServices)

	return cli.Execute(ctx)
}

// newServices wires the core services to a REST client for cfg.
func newServices(cfg domain.Config, noop bool) (*cli.Services, error) {
	client, err := paperless.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	mutator := services.NewMutator(client, noop)
	correspondents := services.NewCorrespondentService(client)
	documents := services.NewDocumentService(client)

	return &cli.Services{
		Correspondents: correspondents,
		Documents:      documents,
		Migration:      services.NewMigrationService(correspondents, documents, mutator),
		Upload:         services.NewUploadService(mutator, services.NewTaskPoller(client, services.SystemClock())),
	}, nil
}
