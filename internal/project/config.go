package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config mirrors asls.toml.
type Config struct {
	Workspace  WorkspaceConfig  `toml:"workspace"`
	Engine     EngineConfig     `toml:"engine"`
	Completion CompletionConfig `toml:"completion"`
}

type WorkspaceConfig struct {
	// Roots are directories relative to the project root; module names
	// are derived relative to the first one.
	Roots      []string `toml:"roots"`
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	// Jobs bounds parallel parsing; 0 uses GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

type EngineConfig struct {
	// HostTypes lists YAML files with engine type declarations.
	HostTypes []string `toml:"host_types"`
}

type CompletionConfig struct {
	MaxItems          int  `toml:"max_items"`
	Preselect         bool `toml:"preselect"`
	UnifiedCallSyntax bool `toml:"unified_call_syntax"`
	Keywords          bool `toml:"keywords"`
}

var (
	// ErrNoConfig indicates that no asls.toml was found.
	ErrNoConfig = errors.New("no " + ConfigName + " found")
	// ErrWorkspaceMissing indicates that [workspace] is missing.
	ErrWorkspaceMissing = errors.New("missing [workspace]")
	// ErrInvalidRoot indicates a workspace root outside the project.
	ErrInvalidRoot = errors.New("invalid workspace root")
	// ErrUnknownKey indicates a key asls.toml does not define.
	ErrUnknownKey = errors.New("unknown key")
)

// DefaultConfig is used for keys asls.toml leaves out.
func DefaultConfig() Config {
	return Config{
		Workspace: WorkspaceConfig{
			Roots:      []string{"."},
			Extensions: []string{".as"},
		},
		Completion: CompletionConfig{
			Preselect:         true,
			UnifiedCallSyntax: true,
			Keywords:          true,
		},
	}
}

// LoadConfig parses asls.toml over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnknownKey, undecoded[0].String())
	}
	if !meta.IsDefined("workspace") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrWorkspaceMissing)
	}
	if meta.IsDefined("workspace", "roots") && len(cfg.Workspace.Roots) == 0 {
		return Config{}, fmt.Errorf("%s: [workspace].roots is empty", path)
	}
	if cfg.Workspace.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [workspace].jobs must not be negative", path)
	}
	if cfg.Completion.MaxItems < 0 {
		return Config{}, fmt.Errorf("%s: [completion].max_items must not be negative", path)
	}
	cfg.Workspace.Extensions = normalizeExtensions(cfg.Workspace.Extensions)
	if len(cfg.Workspace.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [workspace].extensions is empty", path)
	}
	return cfg, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// resolveRoot resolves a workspace root relative to the project root.
func resolveRoot(projectRoot, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("%w %q: must be relative", ErrInvalidRoot, root)
	}
	rootPath := filepath.Join(projectRoot, filepath.Clean(filepath.FromSlash(root)))
	if !pathWithin(projectRoot, rootPath) {
		return "", fmt.Errorf("%w %q: escapes project root", ErrInvalidRoot, root)
	}
	return rootPath, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..") && rel != ".."
}
