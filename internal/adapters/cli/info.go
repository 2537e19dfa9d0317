package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/devbush/photoccrop/internal/adapters/cli/tui"
)

var (
	infoInputFlag string
	infoJSONFlag  bool
)

// NewInfoCmd creates the info command
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show dimensions, format and size of a photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd.OutOrStdout(), infoInputFlag, infoJSONFlag)
		},
	}

	cmd.Flags().StringVarP(&infoInputFlag, "input", "i", "", "Photo to inspect")
	cmd.Flags().BoolVar(&infoJSONFlag, "json", false, "Print as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runInfo(ctx context.Context, out io.Writer, path string, asJSON bool) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	info, err := app.CropSvc.Inspect(ctx, path)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "  %-12s %s\n", "File", info.Path)
	fmt.Fprintf(out, "  %-12s %dx%d\n", "Dimensions", info.Width, info.Height)
	fmt.Fprintf(out, "  %-12s %s\n", "Format", info.Format)
	fmt.Fprintf(out, "  %-12s %s\n", "Size", tui.FormatBytes(info.SizeBytes))
	if !app.CropSvc.Formats().IsSupported(info.Path) {
		fmt.Fprintf(out, "\n  Note: the extension is not one photoccrop crops (%v)\n", app.CropSvc.Formats().Extensions())
	}
	return nil
}
