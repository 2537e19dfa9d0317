package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/devbush/photoccrop/internal/adapters/cli/tui"
	"github.com/devbush/photoccrop/internal/domain"
)

var (
	processInputFlag  string
	processOutputFlag string
	processSizeFlag   int
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Crop a single photo into a circle",
		Long: `Crop a single photo into a circle and save it as PNG.

The photo is scaled to cover the circle, centered, and everything
outside the circle is made transparent.

Example:
  photoccrop process -i portrait.jpg -o badge.png
  photoccrop process -i portrait.jpg -o badge.png -s 512`,
		Args: cobra.NoArgs,
		RunE: runProcessCmd,
	}

	cmd.Flags().StringVarP(&processInputFlag, "input", "i", "", "Photo to crop")
	cmd.Flags().StringVarP(&processOutputFlag, "output", "o", "", "Output PNG path")
	cmd.Flags().IntVarP(&processSizeFlag, "size", "s", 0, "Circle diameter in pixels (default from config, 300)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runProcessCmd(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	size := resolveSize(processSizeFlag, app.Config)
	return runProcess(cmd.Context(), app, cmd.OutOrStdout(), processInputFlag, processOutputFlag, size)
}

func runProcess(ctx context.Context, app *App, out io.Writer, input, output string, size int) error {
	steps := []string{"Reading photo", fmt.Sprintf("Cropping to a %dpx circle", size)}
	progress := tui.NewProgressDisplay(out, steps, quietFlag, isTerminal(out))

	// Step 1: read the header so bad input fails before any work
	progress.StartStep(0)
	info, err := app.CropSvc.Inspect(ctx, input)
	if err != nil {
		progress.FailStep(0, err.Error())
		return err
	}
	progress.CompleteStep(0, fmt.Sprintf("%dx%d %s", info.Width, info.Height, info.Format))

	// Step 2: crop
	progress.StartStep(1)
	spinnerDone := progress.StartSpinner()
	outcome := app.CropSvc.TransformOne(ctx, domain.ProcessingRequest{
		InputPath:  input,
		OutputPath: output,
		Diameter:   size,
	})
	close(spinnerDone)

	if !outcome.Success {
		progress.FailStep(1, outcome.ErrorMessage)
		return outcome.Err
	}
	progress.CompleteStep(1, tui.FormatDuration(outcome.Duration))

	progress.Complete([][2]string{
		{"Output", outcome.OutputPath},
		{"Size", fmt.Sprintf("%dx%d", size, size)},
	})
	return nil
}
