package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps events in memory.
type recorder struct {
	mu     sync.Mutex
	level  Level
	events []Event
}

func (r *recorder) Emit(ev *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
}

func (r *recorder) Level() Level { return r.level }
func (r *recorder) Close() error { return nil }

func TestLevels(t *testing.T) {
	assert.True(t, LevelPhase.Admits(ScopeWorkspace))
	assert.True(t, LevelPhase.Admits(ScopePhase))
	assert.False(t, LevelPhase.Admits(ScopeModule))
	assert.True(t, LevelDetail.Admits(ScopeModule))
	assert.False(t, LevelDetail.Admits(ScopeRequest))
	assert.True(t, LevelDebug.Admits(ScopeRequest))
	assert.False(t, LevelOff.Admits(ScopeWorkspace))

	lvl, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, LevelDetail, lvl)
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestSpanCarriesModuleVersionAndOffset(t *testing.T) {
	rec := &recorder{level: LevelDebug}
	load := Begin(rec, ScopeWorkspace, "load", 0)
	req := Begin(rec, ScopeRequest, "complete", load.ID()).Module("Game.Player", 4).At(120)
	req.Count("items", 7).End("member")
	load.End("")

	require.Len(t, rec.events, 4)
	end := rec.events[2]
	assert.Equal(t, KindEnd, end.Kind)
	assert.Equal(t, load.ID(), end.Parent)
	assert.Equal(t, "Game.Player", end.Module)
	assert.Equal(t, uint64(4), end.Generation)
	assert.Equal(t, int64(120), end.Offset)
	assert.Equal(t, "member", end.Detail)
	assert.Equal(t, map[string]string{"items": "7"}, end.Attrs)
	assert.Equal(t, int64(NoOffset), rec.events[0].Offset)
}

func TestDisabledSpans(t *testing.T) {
	rec := &recorder{level: LevelPhase}
	s := Begin(rec, ScopeModule, "update", 0).Module("M", 1).At(3).Attr("k", "v")
	assert.Zero(t, s.ID())
	assert.Zero(t, s.End(""))
	Mark(rec, ScopeModule, "parsed", "M", 0)
	assert.Empty(t, rec.events)

	assert.Zero(t, Begin(Nop, ScopePhase, "x", 0).End(""))
	var nilSpan *Span
	assert.Zero(t, nilSpan.Module("M", 1).ID())
}

func TestWriterText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, LevelDetail, FormatText)
	parse := Begin(w, ScopePhase, "parse", 0)
	Begin(w, ScopeRequest, "hover", parse.ID()).End("")
	Mark(w, ScopeModule, "parsed", "Game.Player", parse.ID())
	parse.Count("modules", 3).Attr("jobs", "2").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "requests are filtered at detail level")
	assert.Contains(t, lines[0], "→ parse")
	assert.Contains(t, lines[1], "• parsed Game.Player")
	assert.Contains(t, lines[2], "← parse (ok)")
	assert.Contains(t, lines[2], "{jobs=2, modules=3}")
}

func TestWriterNDJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, LevelDebug, FormatNDJSON)
	Begin(w, ScopeRequest, "complete", 9).Module("Game.Player", 2).At(0).End("scope")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var begin, end map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &begin))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &end))
	assert.Equal(t, "begin", begin["kind"])
	assert.NotContains(t, begin, "module", "module is set after the span began")
	assert.Equal(t, "end", end["kind"])
	assert.Equal(t, "request", end["scope"])
	assert.Equal(t, "Game.Player", end["module"])
	assert.Equal(t, float64(2), end["generation"])
	assert.Equal(t, float64(0), end["offset"])
	assert.Equal(t, float64(9), end["parent"])
}

func TestWriterOpenSpans(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, LevelDetail, FormatText)
	load := Begin(w, ScopeWorkspace, "load", 0)
	parse := Begin(w, ScopePhase, "parse", load.ID())
	assert.Equal(t, []string{"load", "parse"}, w.OpenSpans())
	parse.End("")
	assert.Equal(t, []string{"load"}, w.OpenSpans())
	load.End("")
	assert.Empty(t, w.OpenSpans())
}

func TestPulseReportsOpenSpans(t *testing.T) {
	var buf safeBuffer
	w := NewWriter(&buf, LevelPhase, FormatText)
	Begin(w, ScopeWorkspace, "load", 0)

	p := StartPulse(w, time.Millisecond)
	require.NotNil(t, p)
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "(in load)")
	}, time.Second, time.Millisecond)
	p.Stop()
	p.Stop()

	assert.Nil(t, StartPulse(Nop, time.Millisecond))
	assert.Nil(t, StartPulse(w, 0))
	var none *Pulse
	none.Stop()
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestContext(t *testing.T) {
	rec := &recorder{level: LevelPhase}
	ctx := WithTracer(context.Background(), rec)
	assert.Same(t, rec, FromContext(ctx))
	assert.Equal(t, Nop, FromContext(context.Background()))

	load := Begin(rec, ScopeWorkspace, "load", 0)
	ctx = WithParent(ctx, load)
	assert.Equal(t, load.ID(), ParentFrom(ctx))
	assert.Zero(t, ParentFrom(context.Background()))
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.Equal(t, Nop, tr)

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf})
	require.NoError(t, err)
	require.IsType(t, &Writer{}, tr)
	assert.Equal(t, FormatText, tr.(*Writer).format)

	tr, err = New(Config{Level: LevelPhase, Output: &buf, Path: "trace.ndjson"})
	require.NoError(t, err)
	assert.Equal(t, FormatNDJSON, tr.(*Writer).format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
