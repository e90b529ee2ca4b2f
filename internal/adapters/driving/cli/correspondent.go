package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

var listCorrespondentsCmd = &cobra.Command{
	Use:   "list-correspondents",
	Short: "List correspondents",
	Long:  `List correspondents with the number of documents attributed to each.`,
	Args:  cobra.NoArgs,
	RunE:  runListCorrespondents,
}

var migrateCorrespondentsCmd = &cobra.Command{
	Use:   "migrate-correspondents",
	Short: "Move documents from one correspondent to another",
	Long: `Move every document of each --from correspondent to the --to correspondent.

Sources are processed one at a time. A failing source is reported and the
remaining sources are still migrated; the command then exits non-zero.`,
	Example: `  paperless migrate-correspondents --from 12 --from 15 --to 3`,
	Args:    cobra.NoArgs,
	RunE:    runMigrateCorrespondents,
}

var deleteCorrespondentCmd = &cobra.Command{
	Use:   "delete-correspondent [id]",
	Short: "Delete a correspondent",
	Long: `Delete a correspondent by ID.

The deletion is refused while documents still refer to the correspondent,
unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteCorrespondent,
}

// Command flags.
var (
	correspondentName string
	migrateFrom       []int
	migrateTo         int
	deleteForce       bool
)

func init() {
	listCorrespondentsCmd.Flags().StringVarP(&correspondentName, "name", "n", "", "Filter by correspondent name")

	migrateCorrespondentsCmd.Flags().IntSliceVarP(&migrateFrom, "from", "f", nil, "Correspondent ID to move documents from (repeatable)")
	migrateCorrespondentsCmd.Flags().IntVarP(&migrateTo, "to", "t", 0, "Correspondent ID to move documents to")
	_ = migrateCorrespondentsCmd.MarkFlagRequired("from")
	_ = migrateCorrespondentsCmd.MarkFlagRequired("to")

	deleteCorrespondentCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete even if documents refer to it")

	rootCmd.AddCommand(listCorrespondentsCmd)
	rootCmd.AddCommand(migrateCorrespondentsCmd)
	rootCmd.AddCommand(deleteCorrespondentCmd)
}

func runListCorrespondents(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}

	corrs, err := svc.Correspondents.List(cmd.Context(), correspondentName)
	if err != nil {
		return fmt.Errorf("list correspondents: %w", err)
	}

	if structured() {
		views := make([]correspondentView, 0, len(corrs))
		for _, c := range corrs {
			views = append(views, newCorrespondentView(c))
		}
		return encode(cmd.OutOrStdout(), views)
	}

	for _, c := range corrs {
		cmd.Printf("%d: %s [%d]\n", c.ID, c.Name, c.DocumentCount)
	}
	return nil
}

func runMigrateCorrespondents(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}

	report, err := svc.Migration.Migrate(cmd.Context(), migrateFrom, migrateTo)
	if report == nil {
		return err
	}

	if structured() {
		if encErr := encode(cmd.OutOrStdout(), newMigrationView(report)); encErr != nil {
			return encErr
		}
	} else {
		printMigrationReport(cmd, report)
	}

	if err != nil {
		return err
	}
	if failed := report.Failed(); len(failed) > 0 {
		return &batchError{what: "sources", failed: len(failed), total: len(report.Outcomes), err: report.Err()}
	}
	return nil
}

func printMigrationReport(cmd *cobra.Command, report *domain.MigrationReport) {
	dest := report.Destination
	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			cmd.PrintErrf("Failed to migrate %d: %v\n", o.SourceID, o.Err)
		case o.SourceID == dest.ID:
			cmd.Printf("Skipping %s: it is the destination\n", dest)
		case o.Skipped:
			cmd.Printf("Would move %d documents from %s to %s\n", len(o.DocumentIDs), o.Source, dest)
		default:
			cmd.Printf("Moved %d documents from %s to %s\n", len(o.DocumentIDs), o.Source, dest)
		}
	}
}

func runDeleteCorrespondent(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: correspondent ID %q is not a number", domain.ErrInvalidInput, args[0])
	}

	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}

	c, skipped, err := svc.Migration.DeleteCorrespondent(cmd.Context(), id, deleteForce)
	if err != nil {
		return err
	}

	if structured() {
		return encode(cmd.OutOrStdout(), struct {
			Deleted correspondentView `json:"deleted" yaml:"deleted"`
			DryRun  bool              `json:"dry_run" yaml:"dry_run"`
		}{newCorrespondentView(*c), skipped})
	}

	if skipped {
		cmd.Printf("Would delete %s\n", c)
		return nil
	}
	cmd.Printf("Deleted %s\n", c)
	return nil
}
