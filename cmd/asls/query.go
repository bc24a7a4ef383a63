package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"asls/internal/lspconv"
	"asls/internal/source"
)

var (
	labelColor  = color.New(color.Bold)
	kindColor   = color.New(color.FgCyan)
	detailColor = color.New(color.Faint)
	activeColor = color.New(color.FgYellow, color.Bold)
	pathColor   = color.New(color.FgGreen)
)

type queryFunc func(cmd *cobra.Command, s *session, f *source.File, off uint32, args []string, asJSON bool) error

// newQueryCmd builds a command taking FILE POS plus extra positional
// arguments named in use.
func newQueryCmd(use, short string, extra int, run queryFunc) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2 + extra),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, f, err := openSession(cmd, args[0])
			if err != nil {
				return err
			}
			off, err := parsePos(f, args[1])
			if err != nil {
				return err
			}
			return run(cmd, s, f, off, args[2:], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print LSP-shaped JSON")
	return cmd
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCompleteCmd() *cobra.Command {
	return newQueryCmd("complete FILE POS", "List completions at a position", 0,
		func(cmd *cobra.Command, s *session, f *source.File, off uint32, _ []string, asJSON bool) error {
			items := s.resolver.Complete(f.ID, off)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, lspconv.CompletionList(items))
			}
			for _, it := range items {
				mark := " "
				if it.Preselect {
					mark = activeColor.Sprint("*")
				}
				fmt.Fprintf(out, "%s %s  %s", mark, labelColor.Sprint(it.Label), kindColor.Sprint(it.Kind))
				if it.Detail != "" {
					fmt.Fprintf(out, "  %s", detailColor.Sprint(it.Detail))
				}
				fmt.Fprintln(out)
			}
			return nil
		})
}

func newSignatureCmd() *cobra.Command {
	return newQueryCmd("signature FILE POS", "Show signature help inside a call", 0,
		func(cmd *cobra.Command, s *session, f *source.File, off uint32, _ []string, asJSON bool) error {
			help := s.resolver.Signature(f.ID, off)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, lspconv.SignatureHelp(help))
			}
			if help == nil {
				fmt.Fprintln(out, "no call at position")
				return nil
			}
			for i, sig := range help.Signatures {
				label := sig.Label
				if i == help.Active && help.ActiveParam < len(sig.Params) {
					p := sig.Params[help.ActiveParam]
					label = strings.Replace(label, p, activeColor.Sprint(p), 1)
				}
				mark := " "
				if i == help.Active {
					mark = activeColor.Sprint(">")
				}
				fmt.Fprintf(out, "%s %s\n", mark, label)
				if sig.Doc != "" && i == help.Active {
					fmt.Fprintf(out, "    %s\n", detailColor.Sprint(sig.Doc))
				}
			}
			return nil
		})
}

func newHoverCmd() *cobra.Command {
	return newQueryCmd("hover FILE POS", "Describe the symbol at a position", 0,
		func(cmd *cobra.Command, s *session, f *source.File, off uint32, _ []string, asJSON bool) error {
			h := s.resolver.Hover(f.ID, off)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s.conv.Hover(h))
			}
			if h == nil {
				fmt.Fprintln(out, "no symbol at position")
				return nil
			}
			head, doc, _ := strings.Cut(h.Text, "\n\n")
			fmt.Fprintln(out, labelColor.Sprint(head))
			if doc != "" {
				fmt.Fprintf(out, "\n%s\n", doc)
			}
			return nil
		})
}

func newDefinitionCmd() *cobra.Command {
	return newQueryCmd("definition FILE POS", "Find the declarations of the symbol at a position", 0,
		func(cmd *cobra.Command, s *session, f *source.File, off uint32, _ []string, asJSON bool) error {
			spans := s.resolver.Definition(f.ID, off)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s.conv.Locations(spans))
			}
			if len(spans) == 0 {
				fmt.Fprintln(out, "no declaration found")
			}
			for _, sp := range spans {
				fmt.Fprintln(out, pathColor.Sprint(s.formatSpan(sp)))
			}
			return nil
		})
}

func newReferencesCmd() *cobra.Command {
	var includeDecl bool
	cmd := newQueryCmd("references FILE POS", "Find every reference to the symbol at a position", 0,
		func(cmd *cobra.Command, s *session, f *source.File, off uint32, _ []string, asJSON bool) error {
			task, err := s.resolver.References(f.ID, off)
			if err != nil {
				return err
			}
			occ, err := task.Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s.conv.References(occ, includeDecl))
			}
			for _, o := range occ {
				if o.Declaration && !includeDecl {
					continue
				}
				line := pathColor.Sprint(s.formatSpan(o.Span))
				if o.Declaration {
					line += " " + kindColor.Sprint("(declaration)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		})
	cmd.Flags().BoolVar(&includeDecl, "include-declaration", true, "list the declaring occurrence too")
	return cmd
}
