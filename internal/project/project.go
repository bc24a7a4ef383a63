package project

import (
	"fmt"
	"path/filepath"

	"asls/internal/complete"
	"asls/internal/source"
	"asls/internal/typedb"
	"asls/internal/workspace"
)

// Project is a loaded asls.toml with its paths resolved.
type Project struct {
	// Path is the absolute path of asls.toml.
	Path string
	// Root is the directory holding asls.toml.
	Root   string
	Config Config
	// Roots are the absolute workspace roots.
	Roots []string
	// HostTypes are the absolute host type files.
	HostTypes []string
}

// Load finds asls.toml from startDir upward and loads it. It returns
// ErrNoConfig when there is none.
func Load(startDir string) (*Project, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", startDir, ErrNoConfig)
	}
	return LoadFile(path)
}

// LoadFile loads the given config file.
func LoadFile(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg, err := LoadConfig(abs)
	if err != nil {
		return nil, err
	}
	return fromConfig(abs, filepath.Dir(abs), cfg)
}

// Default is the project used without asls.toml: dir is the only root.
func Default(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	return fromConfig("", abs, DefaultConfig())
}

func fromConfig(path, root string, cfg Config) (*Project, error) {
	p := &Project{Path: path, Root: root, Config: cfg}
	for _, r := range cfg.Workspace.Roots {
		abs, err := resolveRoot(root, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		p.Roots = append(p.Roots, abs)
	}
	for _, h := range cfg.Engine.HostTypes {
		if !filepath.IsAbs(h) {
			h = filepath.Join(root, filepath.FromSlash(h))
		}
		p.HostTypes = append(p.HostTypes, h)
	}
	return p, nil
}

// CompleteOptions maps [completion] onto resolver options.
func (p *Project) CompleteOptions() complete.Options {
	opts := complete.DefaultOptions()
	c := p.Config.Completion
	opts.MaxItems = c.MaxItems
	opts.Preselect = c.Preselect
	opts.UnifiedCallSyntax = c.UnifiedCallSyntax
	opts.Keywords = c.Keywords
	return opts
}

// NewDB creates a type database with the builtins and every host type
// file registered.
func (p *Project) NewDB() (*typedb.DB, error) {
	db := typedb.New()
	if err := db.AddBuiltins(); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	for _, path := range p.HostTypes {
		decls, err := LoadHostTypes(path)
		if err != nil {
			return nil, err
		}
		if err := db.AddHostTypes(decls); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return db, nil
}

// Files lists the module files under the workspace roots.
func (p *Project) Files() ([]string, error) {
	w := p.Config.Workspace
	return workspace.ListModules(p.Roots, w.Extensions, w.Exclude)
}

// NewWorkspace creates an empty workspace whose module names are relative
// to the first root.
func (p *Project) NewWorkspace(opts ...workspace.Option) (*workspace.Workspace, error) {
	db, err := p.NewDB()
	if err != nil {
		return nil, err
	}
	base := p.Root
	if len(p.Roots) > 0 {
		base = p.Roots[0]
	}
	opts = append([]workspace.Option{workspace.WithJobs(p.Config.Workspace.Jobs)}, opts...)
	return workspace.New(source.NewFileSetWithBase(base), db, opts...), nil
}
