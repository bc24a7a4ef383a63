package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration of one workspace phase (scan, parse, register).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phase durations. It is safe for concurrent use so parallel
// loaders can close their own phases.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase at idx.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
