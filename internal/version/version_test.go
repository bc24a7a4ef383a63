package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	origNoColor := color.NoColor
	Version, GitCommit, BuildDate = v, commit, date
	color.NoColor = true
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
		color.NoColor = origNoColor
	})
}

func TestColoredKeepsText(t *testing.T) {
	withVersion(t, "1.2.3-rc.1", "", "")
	assert.Equal(t, "1.2.3-rc.1", Colored())

	withVersion(t, "dev", "", "")
	assert.Equal(t, "dev", Colored())
}

func TestInfo(t *testing.T) {
	withVersion(t, "0.1.0", "", "")
	assert.Equal(t, "asls 0.1.0", Info())

	withVersion(t, "0.1.0", "1234567890abcdef", "2026-01-15")
	assert.Equal(t, "asls 0.1.0 (1234567890ab) built 2026-01-15", Info())
}
