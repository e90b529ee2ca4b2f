package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/services"
)

// testEnv runs commands against an in-memory server.
type testEnv struct {
	api   *memory.Paperless
	store *memory.ConfigStore
	out   *bytes.Buffer
	err   *bytes.Buffer

	// Set by the service factory on each run.
	cfg  domain.Config
	noop bool
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		api:   memory.NewPaperless(),
		store: memory.NewConfigStore(),
		out:   new(bytes.Buffer),
		err:   new(bytes.Buffer),
	}
	_ = env.store.Set(domain.ConfigKeyURL, "http://paperless.test")
	_ = env.store.Set(domain.ConfigKeyAuth, "token")

	SetConfigService(services.NewConfigService(env.store))
	SetServiceFactory(func(cfg domain.Config, noop bool) (*Services, error) {
		env.cfg, env.noop = cfg, noop

		mutator := services.NewMutator(env.api, noop)
		correspondents := services.NewCorrespondentService(env.api)
		documents := services.NewDocumentService(env.api)
		return &Services{
			Correspondents: correspondents,
			Documents:      documents,
			Migration:      services.NewMigrationService(correspondents, documents, mutator),
			Upload:         services.NewUploadService(mutator, services.NewTaskPoller(env.api, nil)),
		}, nil
	})

	t.Cleanup(func() {
		SetConfigService(nil)
		SetServiceFactory(nil)
		resetFlags()
		rootCmd.SetArgs(nil)
	})
	return env
}

// run executes the root command with args from a clean flag state.
func (e *testEnv) run(args ...string) error {
	resetFlags()
	e.out.Reset()
	e.err.Reset()

	rootCmd.SetOut(e.out)
	rootCmd.SetErr(e.err)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// resetFlags restores every flag to its default between runs.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}

	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
}
