package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"asls/internal/source"
	"asls/internal/workspace"
)

func newRenameCmd() *cobra.Command {
	var write bool
	cmd := newQueryCmd("rename FILE POS NEWNAME", "Rename the symbol at a position across the workspace", 1,
		func(cmd *cobra.Command, s *session, f *source.File, off uint32, args []string, asJSON bool) error {
			task, err := s.resolver.Rename(f.ID, off, args[0])
			if err != nil {
				return err
			}
			if _, err := task.Run(cmd.Context()); err != nil {
				return err
			}
			edits, err := task.Edits()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s.conv.WorkspaceEdit(edits))
			}
			for _, e := range edits {
				old := string(s.ws.Files().Get(e.Span.Module).Content[e.Span.Start:e.Span.End])
				fmt.Fprintf(out, "%s  %s -> %s\n", pathColor.Sprint(s.formatSpan(e.Span)), old, labelColor.Sprint(e.NewText))
			}
			if !write {
				return nil
			}
			n, err := applyEdits(s.ws.Files(), edits)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d edits written to %d files\n", len(edits), n)
			return nil
		})
	cmd.Flags().BoolVar(&write, "write", false, "apply the edits to the files on disk")
	return cmd
}

// applyEdits rewrites every touched module on disk and returns the number
// of files written. Edits of one module must not overlap.
func applyEdits(files *source.FileSet, edits []workspace.Edit) (int, error) {
	byModule := make(map[source.ModuleID][]workspace.Edit)
	for _, e := range edits {
		byModule[e.Span.Module] = append(byModule[e.Span.Module], e)
	}
	ids := make([]source.ModuleID, 0, len(byModule))
	for id := range byModule {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		f := files.Get(id)
		if f == nil {
			return 0, fmt.Errorf("apply edits: module %d: %w", id, workspace.ErrUnknownModule)
		}
		list := byModule[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Span.Start > list[j].Span.Start })
		content := append([]byte(nil), f.Content...)
		for _, e := range list {
			tail := append([]byte(e.NewText), content[e.Span.End:]...)
			content = append(content[:e.Span.Start], tail...)
		}
		path := filepath.FromSlash(f.Path)
		mode := os.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(path, content, mode); err != nil {
			return 0, fmt.Errorf("apply edits: %w", err)
		}
	}
	return len(ids), nil
}
