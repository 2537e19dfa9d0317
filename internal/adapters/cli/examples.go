package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewExamplesCmd creates the examples command
func NewExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show usage examples",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printExamples(cmd.OutOrStdout())
		},
	}
}

func printExamples(out io.Writer) {
	fmt.Fprint(out, `Examples:

  Crop one photo at the default 300px:
    photoccrop process -i portrait.jpg -o portrait_circle.png

  Crop one photo at 512px:
    photoccrop process -i portrait.jpg -o badge.png -s 512

  Crop every photo in a folder into ./circles (saved as <name>_c.png):
    photoccrop batch -i ./photos -o ./circles

  Same, four photos at a time:
    photoccrop batch -i ./photos -o ./circles -w 4

  Check a photo before cropping:
    photoccrop info -i portrait.jpg

  Write a config file with the defaults:
    photoccrop config init

Supported inputs: .jpg .jpeg .png .bmp .tiff .webp. Output is always PNG.
`)
}
