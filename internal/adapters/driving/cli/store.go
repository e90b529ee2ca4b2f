package cli

import (
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Save --url and --auth to the configuration file",
	Long: `Persist the effective server URL and API token.

Values given with --url and --auth replace the stored ones; values not given
are kept as they are. The file is written even with --noop, which only
suppresses changes on the server.`,
	Args: cobra.NoArgs,
	RunE: runStore,
}

func init() {
	rootCmd.AddCommand(storeCmd)
}

func runStore(cmd *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	if err := configService.Store(cfg); err != nil {
		return err
	}

	cmd.Printf("Stored configuration to %s\n", configService.Path())
	return nil
}
