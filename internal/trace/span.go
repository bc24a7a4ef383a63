package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open unit of work. The zero-cost disabled span returned for
// filtered scopes accepts every call and records nothing.
type Span struct {
	t     Tracer
	ev    Event
	begun time.Time
}

// Begin opens a span under parent (0 for a root) and records its start.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().Admits(scope) {
		return &Span{}
	}
	now := time.Now()
	s := &Span{
		t: t,
		ev: Event{
			Scope:  scope,
			Span:   spanIDs.Add(1),
			Parent: parent,
			Name:   name,
			Offset: NoOffset,
		},
		begun: now,
	}
	begin := s.ev
	begin.Time = now
	begin.Kind = KindBegin
	t.Emit(&begin)
	return s
}

func (s *Span) live() bool { return s != nil && s.t != nil }

// Module names the module the span works on and its generation.
func (s *Span) Module(name string, generation uint64) *Span {
	if s.live() {
		s.ev.Module = name
		s.ev.Generation = generation
	}
	return s
}

// At records the cursor offset of a request.
func (s *Span) At(offset uint32) *Span {
	if s.live() {
		s.ev.Offset = int64(offset)
	}
	return s
}

// Attr adds a key/value pair reported with the end event.
func (s *Span) Attr(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.ev.Attrs == nil {
		s.ev.Attrs = make(map[string]string, 2)
	}
	s.ev.Attrs[key] = value
	return s
}

// Count is Attr for integer values.
func (s *Span) Count(key string, n int) *Span {
	if !s.live() {
		return s
	}
	return s.Attr(key, strconv.Itoa(n))
}

// ID is the span id to pass as parent, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if !s.live() {
		return 0
	}
	return s.ev.Span
}

// End records the end of the span with a short outcome and returns its
// duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	end := s.ev
	end.Time = time.Now()
	end.Kind = KindEnd
	end.Detail = detail
	end.Elapsed = end.Time.Sub(s.begun)
	s.t.Emit(&end)
	return end.Elapsed
}

// Mark records an instant event inside parent.
func Mark(t Tracer, scope Scope, name, module string, parent uint64) {
	if t == nil || !t.Level().Admits(scope) {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindMark,
		Scope:  scope,
		Parent: parent,
		Name:   name,
		Module: module,
		Offset: NoOffset,
	})
}
