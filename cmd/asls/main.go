package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"asls/internal/version"
)

func newRootCmd() *cobra.Command {
	var cleanup func()
	root := &cobra.Command{
		Use:           "asls",
		Short:         "Code intelligence for engine scripts",
		Long:          `asls indexes script modules and answers completion, signature, hover, definition, reference and rename queries`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupColor(cmd); err != nil {
				return err
			}
			var err error
			cleanup, err = setupTracing(cmd)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to asls.toml (default: search upward from the target)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("ui", "auto", "progress UI for long operations (auto|on|off)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	flags.Duration("trace-heartbeat", 0, "report open spans at this interval (0 disables)")

	root.AddCommand(
		newIndexCmd(),
		newCompleteCmd(),
		newSignatureCmd(),
		newHoverCmd(),
		newDefinitionCmd(),
		newReferencesCmd(),
		newRenameCmd(),
		newInspectCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
