package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"asls/internal/project"
	"asls/internal/trace"
	"asls/internal/workspace"
)

type indexSummary struct {
	Root       string   `json:"root"`
	Modules    int      `json:"modules"`
	Types      int      `json:"types"`
	Notes      int      `json:"notes"`
	LoadErrors []string `json:"load_errors,omitempty"`
	Cycles     []string `json:"import_cycles,omitempty"`
	Digest     string   `json:"digest"`
}

func newIndexCmd() *cobra.Command {
	var (
		timings   bool
		showDiags bool
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "index [dir]",
		Short: "Load a workspace and summarize what it declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			useTUI, err := shouldUseTUI(cmd)
			if err != nil {
				return err
			}
			useTUI = useTUI && !asJSON

			var events chan workspace.Progress
			var opts []workspace.Option
			if useTUI {
				events = make(chan workspace.Progress, 256)
				opts = append(opts, workspace.WithProgress(func(p workspace.Progress) { events <- p }))
			}
			s, err := newSession(cmd, dir, nil, opts...)
			if err != nil {
				return err
			}

			span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeWorkspace, "index", 0).
				Attr("root", s.proj.Root)
			ctx := trace.WithParent(cmd.Context(), span)
			var res *workspace.LoadResult
			if useTUI {
				res, err = loadWithUI(ctx, "indexing "+s.relPath(s.proj.Root), s.ws, s.files, events)
			} else {
				res, err = s.ws.LoadFiles(ctx, s.files)
			}
			if err != nil {
				span.End("failed")
				return err
			}
			span.Count("modules", len(res.Modules)).End("")

			summary, err := summarize(s, res)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, summary)
			}
			printSummary(out, summary)
			if showDiags {
				if err := printDiagnostics(out, s); err != nil {
					return err
				}
			}
			if timings {
				fmt.Fprint(out, s.timer.Summary())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&timings, "timings", false, "show phase timings")
	cmd.Flags().BoolVar(&showDiags, "diagnostics", false, "print the notes of every module")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// summarize counts what the workspace holds and fingerprints it by
// combining module snapshot digests in import order.
func summarize(s *session, res *workspace.LoadResult) (*indexSummary, error) {
	summary := &indexSummary{
		Root:    s.proj.Root,
		Modules: len(res.Modules),
		Notes:   res.Notes,
	}
	for _, e := range res.Errors {
		summary.LoadErrors = append(summary.LoadErrors, e.Error())
	}
	var err error
	s.ws.Read(func(v workspace.View) {
		idx, topo := v.ImportOrder()
		if topo.Cyclic {
			summary.Cycles = idx.Names(topo.Cycles)
		}
		order := append(idx.Names(topo.Order), summary.Cycles...)
		var deps []project.Digest
		for _, name := range order {
			mod := v.ModuleByName(name)
			if mod == nil {
				continue
			}
			snap := v.DB().Snapshot(mod.ID)
			summary.Types += len(snap.Types)
			var d [32]byte
			if d, err = snap.Digest(); err != nil {
				return
			}
			deps = append(deps, project.Digest(d))
		}
		summary.Digest = project.Combine(project.Digest{}, deps...).Short()
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func printSummary(out io.Writer, s *indexSummary) {
	fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("workspace"), s.Root)
	fmt.Fprintf(out, "  modules  %d\n", s.Modules)
	fmt.Fprintf(out, "  types    %d\n", s.Types)
	fmt.Fprintf(out, "  notes    %d\n", s.Notes)
	fmt.Fprintf(out, "  digest   %s\n", s.Digest)
	for _, e := range s.LoadErrors {
		fmt.Fprintf(out, "  %s %s\n", activeColor.Sprint("unreadable"), e)
	}
	if len(s.Cycles) > 0 {
		fmt.Fprintf(out, "  %s %v\n", activeColor.Sprint("import cycle"), s.Cycles)
	}
}

func printDiagnostics(out io.Writer, s *session) error {
	var mods []*workspace.Module
	s.ws.Read(func(v workspace.View) { mods = v.Modules() })
	slices.SortFunc(mods, func(a, b *workspace.Module) int { return strings.Compare(a.Path, b.Path) })
	for _, mod := range mods {
		items, err := s.ws.Diagnostics(mod.ID)
		if err != nil {
			return err
		}
		for _, d := range items {
			fmt.Fprintf(out, "%s %s %s: %s\n",
				pathColor.Sprint(s.formatSpan(d.Primary)),
				severityColor(d.Severity).Sprint(d.Severity),
				d.Code.ID(), d.Message)
		}
	}
	return nil
}
