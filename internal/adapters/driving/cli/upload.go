package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload documents and follow their ingestion",
	Long: `Upload files one after another. Each file's ingestion task is polled
until the server reports success or failure before the next file is sent.

With --watch, new files appearing in the directory are uploaded the same way
until the command is interrupted.`,
	Example: `  paperless upload receipt.pdf invoice.pdf
  paperless upload --watch ~/Scans`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && uploadWatch == "" {
			return errors.New("requires at least 1 file or --watch")
		}
		return nil
	},
	RunE: runUpload,
}

// Upload flags.
var (
	uploadInterval time.Duration
	uploadTimeout  time.Duration
	uploadWatch    string
)

func init() {
	uploadCmd.Flags().DurationVar(&uploadInterval, "interval", driving.DefaultPollInterval, "Delay between task status polls")
	uploadCmd.Flags().DurationVar(&uploadTimeout, "timeout", 0, "Give up waiting on a task after this long (0 waits forever)")
	uploadCmd.Flags().StringVar(&uploadWatch, "watch", "", "Upload new files appearing in this directory")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadInterval <= 0 {
		return fmt.Errorf("%w: --interval must be positive", domain.ErrInvalidInput)
	}
	if uploadTimeout < 0 {
		return fmt.Errorf("%w: --timeout must not be negative", domain.ErrInvalidInput)
	}

	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opts := driving.AwaitOptions{Interval: uploadInterval, Timeout: uploadTimeout}

	var report *domain.UploadReport
	if len(args) > 0 {
		progress := newProgressReporter(cmd.ErrOrStderr())
		report = svc.Upload.UploadBatch(ctx, args, opts, progress.Update)
		progress.Finish()

		if err := printUploads(cmd, report.Outcomes); err != nil {
			return err
		}
	}

	if uploadWatch != "" {
		if err := watchUploads(ctx, cmd, svc.Upload, opts); err != nil {
			return err
		}
	}

	if report == nil {
		return nil
	}
	if err := report.Err(); err != nil {
		failed := 0
		for _, o := range report.Outcomes {
			if o.Err != nil {
				failed++
			}
		}
		return &batchError{what: "uploads", failed: failed, total: len(report.Outcomes), err: err}
	}
	return nil
}

// watchUploads uploads settled files from --watch until ctx is cancelled.
// A failed file is reported and watching continues.
func watchUploads(ctx context.Context, cmd *cobra.Command, svc driving.UploadService, opts driving.AwaitOptions) error {
	cmd.PrintErrf("Watching %s for new files, interrupt to stop\n", uploadWatch)

	w := watch.New(uploadWatch, func(ctx context.Context, path string) {
		progress := newProgressReporter(cmd.ErrOrStderr())
		outcome := svc.UploadAndWait(ctx, path, opts, progress.Update)
		progress.Finish()

		if err := printUploads(cmd, []domain.UploadOutcome{outcome}); err != nil {
			cmd.PrintErrf("Failed to print result for %s: %v\n", path, err)
		}
	})
	return w.Run(ctx)
}

func printUploads(cmd *cobra.Command, outcomes []domain.UploadOutcome) error {
	if structured() {
		views := make([]uploadView, 0, len(outcomes))
		for _, o := range outcomes {
			views = append(views, newUploadView(o))
		}
		return encode(cmd.OutOrStdout(), views)
	}

	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			cmd.PrintErrf("Failed to upload %s: %v\n", o.Path, o.Err)
		case o.Skipped:
			cmd.Printf("Would upload %s\n", o.Path)
		case o.Result != nil:
			cmd.Printf("Result: %s\n", o.Result.Result)
			if o.Result.RelatedDocument != nil {
				cmd.Printf("Related DocID: %d\n", *o.Result.RelatedDocument)
			}
		}
	}
	return nil
}
