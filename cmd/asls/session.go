package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"asls/internal/complete"
	"asls/internal/lspconv"
	"asls/internal/observ"
	"asls/internal/project"
	"asls/internal/source"
	"asls/internal/trace"
	"asls/internal/workspace"
)

// session is a loaded workspace with its resolver.
type session struct {
	proj     *project.Project
	ws       *workspace.Workspace
	resolver *complete.Resolver
	conv     *lspconv.Converter
	timer    *observ.Timer
	files    []string
}

// loadProject uses --config when given and otherwise searches upward from
// target. Without asls.toml the target directory becomes the only root.
func loadProject(cmd *cobra.Command, target string) (*project.Project, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		return project.LoadFile(configPath)
	}
	start := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		start = filepath.Dir(target)
	}
	proj, err := project.Load(start)
	if errors.Is(err, project.ErrNoConfig) {
		return project.Default(start)
	}
	return proj, err
}

// newSession prepares an empty workspace for target; extra files are
// loaded along with the workspace roots.
func newSession(cmd *cobra.Command, target string, extra []string, opts ...workspace.Option) (*session, error) {
	proj, err := loadProject(cmd, target)
	if err != nil {
		return nil, err
	}
	tracer := trace.FromContext(cmd.Context())
	timer := observ.NewTimer()

	scan := timer.Begin("scan")
	files, err := proj.Files()
	if err != nil {
		return nil, err
	}
	for _, f := range extra {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", f, err)
		}
		if !slices.Contains(files, abs) {
			files = append(files, abs)
		}
	}
	timer.End(scan, fmt.Sprintf("%d files", len(files)))

	opts = append([]workspace.Option{workspace.WithTracer(tracer), workspace.WithTimer(timer)}, opts...)
	ws, err := proj.NewWorkspace(opts...)
	if err != nil {
		return nil, err
	}
	copts := proj.CompleteOptions()
	copts.Tracer = tracer
	return &session{
		proj:     proj,
		ws:       ws,
		resolver: complete.New(ws, copts),
		conv:     lspconv.New(ws.Files()),
		timer:    timer,
		files:    files,
	}, nil
}

// openSession loads the workspace around file and returns it with file's
// module.
func openSession(cmd *cobra.Command, file string) (*session, *source.File, error) {
	s, err := newSession(cmd, file, []string{file})
	if err != nil {
		return nil, nil, err
	}
	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeWorkspace, cmd.Name(), 0)
	res, err := s.ws.LoadFiles(trace.WithParent(cmd.Context(), span), s.files)
	span.End("")
	if err != nil {
		return nil, nil, err
	}
	for _, e := range res.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
	}
	f, err := s.file(file)
	if err != nil {
		return nil, nil, err
	}
	return s, f, nil
}

func (s *session) file(path string) (*source.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	f, ok := s.ws.Files().GetByPath(abs)
	if !ok {
		return nil, fmt.Errorf("%s: module not loaded", path)
	}
	return f, nil
}

// parsePos reads a byte offset or a 1-based "line:col" position.
func parsePos(f *source.File, value string) (uint32, error) {
	if line, col, ok := strings.Cut(value, ":"); ok {
		l, err := strconv.ParseUint(line, 10, 32)
		if err != nil || l == 0 {
			return 0, fmt.Errorf("invalid line in position %q", value)
		}
		c, err := strconv.ParseUint(col, 10, 32)
		if err != nil || c == 0 {
			return 0, fmt.Errorf("invalid column in position %q", value)
		}
		return f.Offset(source.LineCol{Line: uint32(l), Col: uint32(c)}), nil
	}
	off, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q (expected OFFSET or LINE:COL)", value)
	}
	if uint32(off) > f.Len() {
		return 0, fmt.Errorf("offset %d past end of %s (%d bytes)", off, f.Path, f.Len())
	}
	return uint32(off), nil
}

// formatSpan renders a span as path:line:col.
func (s *session) formatSpan(sp source.Span) string {
	f := s.ws.Files().Get(sp.Module)
	if f == nil {
		return "<engine>"
	}
	pos := f.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", s.relPath(f.Path), pos.Line, pos.Col)
}

func (s *session) relPath(path string) string {
	if rel, err := filepath.Rel(s.proj.Root, filepath.FromSlash(path)); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
