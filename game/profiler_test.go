package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiler_Disabled(t *testing.T) {
	p := NewProfiler("", zerolog.Nop())

	assert.False(t, p.Enabled())
	assert.ErrorIs(t, p.CaptureProfile("test"), ErrProfilerDisabled)
}

func TestProfiler_CaptureAndCooldown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	p := NewProfiler(dir, zerolog.Nop())
	p.captureDuration = 10 * time.Millisecond

	require.NoError(t, p.CaptureProfile("test"))
	assert.ErrorIs(t, p.CaptureProfile("again"), ErrProfilerBusy)
	p.Wait()

	assert.False(t, p.IsProfiling())
	assert.ErrorIs(t, p.CaptureProfile("cooling"), ErrProfilerBusy)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Name(), "fps-drop-")
}
