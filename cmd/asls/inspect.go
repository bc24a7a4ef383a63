package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"asls/internal/diag"
	"asls/internal/ui"
	"asls/internal/workspace"
)

func newInspectCmd() *cobra.Command {
	var (
		snapshot bool
		width    int
	)
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the scope tree, notes and registered types of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, err := openSession(cmd, args[0])
			if err != nil {
				return err
			}
			mod := s.ws.Module(f.ID)
			if mod == nil {
				return fmt.Errorf("inspect %s: %w", args[0], workspace.ErrUnknownModule)
			}
			out := cmd.OutOrStdout()
			if width == 0 && isTerminal(os.Stdout) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			fmt.Fprintf(out, "%s %s (%s)\n\n", labelColor.Sprint("module"), mod.Name, s.relPath(mod.Path))
			fmt.Fprint(out, ui.RenderTree(mod.Tree, width))

			items, err := s.ws.Diagnostics(f.ID)
			if err != nil {
				return err
			}
			if len(items) > 0 {
				fmt.Fprintln(out)
				for _, d := range items {
					fmt.Fprintf(out, "%s %s %s: %s\n",
						pathColor.Sprint(s.formatSpan(d.Primary)),
						severityColor(d.Severity).Sprint(d.Severity),
						d.Code.ID(), d.Message)
				}
			}

			if !snapshot {
				return nil
			}
			var (
				names  []string
				digest [32]byte
			)
			s.ws.Read(func(v workspace.View) {
				snap := v.DB().Snapshot(f.ID)
				for _, t := range snap.Types {
					names = append(names, fmt.Sprintf("%s [%s] methods=%d properties=%d",
						t.Name, strings.Join(t.Flags, ","), len(t.Methods), len(t.Properties)))
				}
				digest, err = snap.Digest()
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s %x\n", labelColor.Sprint("snapshot"), digest[:6])
			for _, n := range names {
				fmt.Fprintf(out, "  %s\n", n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "print the module's registered types and their msgpack digest")
	cmd.Flags().IntVar(&width, "width", 0, "truncate tree lines to this width (default: terminal width)")
	return cmd
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgBlue)
}
