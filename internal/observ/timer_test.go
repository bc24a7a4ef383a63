package observ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	parse := tm.Begin("parse")
	reg := tm.Begin("register")
	tm.End(reg, "12 modules")
	tm.End(parse, "")
	tm.End(99, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "register", r.Phases[1].Name)
	assert.Equal(t, "12 modules", r.Phases[1].Note)
	assert.GreaterOrEqual(t, r.TotalMS, r.Phases[0].DurationMS)

	sum := tm.Summary()
	assert.True(t, strings.HasPrefix(sum, "timings:\n"))
	assert.Contains(t, sum, "// 12 modules")
	assert.Contains(t, sum, "total")
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	assert.Equal(t, -1, tm.Begin("x"))
	tm.End(0, "")
	assert.Empty(t, tm.Report().Phases)
}
