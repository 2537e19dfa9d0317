package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/photoccrop/internal/adapters/cli/tui"
	"github.com/devbush/photoccrop/internal/domain"
)

var (
	// Global flags
	configFlag  string
	quietFlag   bool
	verboseFlag bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photoccrop",
		Short: "Crop photos into circles",
		Long: `photoccrop crops photos into circular PNG portraits, for ID badges
and credential photos.

Crop one photo with "process", a whole folder with "batch", or run
without arguments for an interactive menu.`,
		Args:          cobra.NoArgs,
		RunE:          runRoot,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.photoccrop/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewProcessCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewExamplesCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	// No arguments - show interactive menu
	return runInteractiveMenu(cmd)
}

func runInteractiveMenu(cmd *cobra.Command) error {
	options := []tui.MenuOption{
		{Label: "Crop a photo", Value: "photo", Hint: "one image to one PNG"},
		{Label: "Crop a folder", Value: "folder", Hint: "every supported image inside"},
		{Label: "Inspect a photo", Value: "inspect", Hint: "dimensions, format, size"},
		{Label: "Show examples", Value: "examples"},
	}

	selected, err := tui.RunMenu("What would you like to do?", options)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	switch selected {
	case "photo":
		return runPhotoInteractive(cmd, in, out)
	case "folder":
		return runFolderInteractive(cmd, in, out)
	case "inspect":
		path, err := prompt(in, out, "Photo to inspect", "")
		if err != nil {
			return err
		}
		return runInfo(cmd.Context(), out, path, false)
	case "examples":
		printExamples(out)
	case "":
		fmt.Fprintln(out, "Cancelled")
	}

	return nil
}

func runPhotoInteractive(cmd *cobra.Command, in *bufio.Reader, out io.Writer) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	input, err := prompt(in, out, "Photo to crop", "")
	if err != nil {
		return err
	}
	output, err := prompt(in, out, "Save as", filepath.Join(filepath.Dir(input), domain.BatchOutputName(input)))
	if err != nil {
		return err
	}
	size, err := promptInt(in, out, "Circle diameter in pixels", app.Config.Defaults.Size)
	if err != nil {
		return err
	}

	return runProcess(cmd.Context(), app, out, input, output, size)
}

func runFolderInteractive(cmd *cobra.Command, in *bufio.Reader, out io.Writer) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	input, err := prompt(in, out, "Folder with photos", ".")
	if err != nil {
		return err
	}
	output, err := prompt(in, out, "Output folder", filepath.Join(input, "circles"))
	if err != nil {
		return err
	}
	size, err := promptInt(in, out, "Circle diameter in pixels", app.Config.Defaults.Size)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()
	return runBatch(ctx, app, out, input, output, size, app.Config.Defaults.Workers)
}

// prompt reads one line, returning def when the answer is blank
func prompt(in *bufio.Reader, out io.Writer, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		if def == "" {
			return "", fmt.Errorf("%s is required", strings.ToLower(label))
		}
		return def, nil
	}
	return answer, nil
}

func promptInt(in *bufio.Reader, out io.Writer, label string, def int) (int, error) {
	answer, err := prompt(in, out, label, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", strings.ToLower(label), answer)
	}
	return n, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
