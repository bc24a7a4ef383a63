package trace

import (
	"fmt"
	"strings"
)

// Level selects how fine-grained the recorded spans are.
type Level uint8

const (
	LevelOff Level = iota
	// LevelPhase records workspace operations and their phases.
	LevelPhase
	// LevelDetail adds module updates and reference scan steps.
	LevelDetail
	// LevelDebug adds editor requests.
	LevelDebug
)

var levelNames = [...]string{"off", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Scope is what a span covers. Each level admits the scopes up to its own.
type Scope uint8

const (
	ScopeWorkspace Scope = iota + 1
	ScopePhase
	ScopeModule
	ScopeRequest
)

func (s Scope) String() string {
	switch s {
	case ScopeWorkspace:
		return "workspace"
	case ScopePhase:
		return "phase"
	case ScopeModule:
		return "module"
	case ScopeRequest:
		return "request"
	}
	return "unknown"
}

// Admits reports whether spans of scope are recorded at level l.
func (l Level) Admits(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePhase
	case LevelDetail:
		return scope <= ScopeModule
	case LevelDebug:
		return scope <= ScopeRequest
	}
	return false
}
