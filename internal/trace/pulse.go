package trace

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Pulse periodically reports the spans that are still open, so a load or
// scan that stopped making progress shows up as repeated pulses naming the
// same span.
type Pulse struct {
	t    Tracer
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

type openSpans interface {
	OpenSpans() []string
}

// StartPulse emits a pulse every interval until Stop. It returns nil when
// t is disabled or interval is not positive.
func StartPulse(t Tracer, interval time.Duration) *Pulse {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return nil
	}
	p := &Pulse{t: t, stop: make(chan struct{})}
	p.wg.Add(1)
	go p.run(interval)
	return p
}

func (p *Pulse) run(interval time.Duration) {
	defer p.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	n := 0
	for {
		select {
		case <-ticker.C:
			n++
			p.t.Emit(&Event{
				Time:   time.Now(),
				Kind:   KindPulse,
				Scope:  ScopeWorkspace,
				Name:   "pulse #" + strconv.Itoa(n),
				Detail: p.status(),
				Offset: NoOffset,
			})
		case <-p.stop:
			return
		}
	}
}

func (p *Pulse) status() string {
	o, ok := p.t.(openSpans)
	if !ok {
		return ""
	}
	spans := o.OpenSpans()
	if len(spans) == 0 {
		return "idle"
	}
	return "in " + strings.Join(spans, " > ")
}

// Stop ends the pulse and waits for its goroutine. It is safe on nil and
// more than once.
func (p *Pulse) Stop() {
	if p == nil {
		return
	}
	p.once.Do(func() { close(p.stop) })
	p.wg.Wait()
}
