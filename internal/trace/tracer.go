package trace

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

// Tracer receives events. Implementations are safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop records nothing.
var Nop Tracer = nopTracer{}

// Config describes the tracer built by New.
type Config struct {
	Level  Level
	Format Format
	// Output wins over Path; Path "-" or "" means stderr.
	Output io.Writer
	Path   string
}

// New returns Nop for LevelOff and a Writer otherwise. A Path ending in
// .ndjson or .json selects NDJSON when Format is FormatAuto.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.Path, ".ndjson") || strings.HasSuffix(cfg.Path, ".json") {
			format = FormatNDJSON
		}
	}
	w := cfg.Output
	if w == nil {
		if cfg.Path == "" || cfg.Path == "-" {
			w = os.Stderr
		} else {
			f, err := os.Create(cfg.Path)
			if err != nil {
				return nil, fmt.Errorf("open trace output: %w", err)
			}
			w = f
		}
	}
	return NewWriter(w, cfg.Level, format), nil
}

// Writer encodes events to an io.Writer as they arrive and keeps the set
// of spans that have begun but not ended.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	open   map[uint64]Event
}

func NewWriter(w io.Writer, level Level, format Format) *Writer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Writer{w: w, level: level, format: format, open: make(map[uint64]Event)}
}

// Emit writes ev. Write errors are dropped.
func (t *Writer) Emit(ev *Event) {
	if ev.Kind != KindPulse && !t.level.Admits(ev.Scope) {
		return
	}
	data := encode(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	switch ev.Kind {
	case KindBegin:
		t.open[ev.Span] = *ev
	case KindEnd:
		delete(t.open, ev.Span)
	}
	_, _ = t.w.Write(data) //nolint:errcheck
}

func (t *Writer) Level() Level { return t.level }

// OpenSpans describes the unfinished spans, oldest first, as "name" or
// "name module".
func (t *Writer) OpenSpans() []string {
	t.mu.Lock()
	ids := make([]uint64, 0, len(t.open))
	for id := range t.open {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		ev := t.open[id]
		if ev.Module != "" {
			out = append(out, ev.Name+" "+ev.Module)
			continue
		}
		out = append(out, ev.Name)
	}
	t.mu.Unlock()
	return out
}

// Close closes the underlying writer unless it is stderr or stdout.
func (t *Writer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
