package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devbush/photoccrop/internal/adapters/cli/tui"
	"github.com/devbush/photoccrop/internal/domain"
)

var (
	batchInputFlag   string
	batchOutputFlag  string
	batchSizeFlag    int
	batchWorkersFlag int
)

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Crop every photo in a folder",
		Long: `Crop every supported photo directly inside a folder.

Each photo is saved to the output folder as <name>_c.png. Subfolders and
files with unsupported extensions are skipped. A photo that cannot be
cropped is reported and the batch continues. Press Ctrl+C to stop after
the files already in progress.

Example:
  photoccrop batch -i ./photos -o ./circles
  photoccrop batch -i ./photos -o ./circles -s 400 -w 4`,
		Args: cobra.NoArgs,
		RunE: runBatchCmd,
	}

	cmd.Flags().StringVarP(&batchInputFlag, "input", "i", "", "Folder with photos")
	cmd.Flags().StringVarP(&batchOutputFlag, "output", "o", "", "Output folder (created if missing)")
	cmd.Flags().IntVarP(&batchSizeFlag, "size", "s", 0, "Circle diameter in pixels (default from config, 300)")
	cmd.Flags().IntVarP(&batchWorkersFlag, "workers", "w", 0, "Photos cropped in parallel (default from config, 1)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	workers := batchWorkersFlag
	if workers == 0 {
		workers = app.Config.Defaults.Workers
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	size := resolveSize(batchSizeFlag, app.Config)
	return runBatch(ctx, app, cmd.OutOrStdout(), batchInputFlag, batchOutputFlag, size, workers)
}

// interruptContext is cancelled on Ctrl+C or SIGTERM
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// runBatch crops a folder and prints the summary. Item failures are
// reported but do not fail the command; pipeline failures and
// cancellation do.
func runBatch(ctx context.Context, app *App, out io.Writer, input, output string, size, workers int) error {
	svc := app.CropSvc.WithWorkers(workers)

	var outcome domain.BatchOutcome
	if !quietFlag && isTerminal(out) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var err error
		outcome, err = tui.RunBatchTUI(cancel, func(observe domain.ProgressObserver) domain.BatchOutcome {
			return svc.ProcessBatch(ctx, input, output, size, observe)
		})
		if err != nil {
			app.Log.WithError(err).Warn("progress display stopped")
		}
		if outcome.Success || outcome.Cancelled {
			tui.WriteBatchSummary(out, outcome)
		}
	} else {
		progress := tui.NewBatchProgress(out, quietFlag)
		outcome = svc.ProcessBatch(ctx, input, output, size, progress.Observe)
		if outcome.Success || outcome.Cancelled {
			progress.Complete(outcome)
		}
	}

	if !outcome.Success {
		return outcome.Err
	}
	return nil
}
