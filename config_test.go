package vpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(strings.NewReader("accuracy = 1e-8\nend_nudge = 0.01\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{Accuracy: 1e-8, NewtonMaxIter: 100, EndNudge: 0.01}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, doc := range []string{
		"tolerance = 1",
		// Epsilon is a constant, not a setting.
		"epsilon = 1e-12",
		"accuracy = 'high'",
		"accuracy = 0",
		"newton_max_iter = 0",
		"end_nudge = 0.5",
		"end_nudge = -1",
		"accuracy = ",
	} {
		_, err := LoadConfig(strings.NewReader(doc))
		assert.Error(t, err, "%q", doc)
	}
}

func TestConfigFallsBackToBracketing(t *testing.T) {
	// With a single Newton step, roots are found by bracketing instead.
	cfg, err := LoadConfig(strings.NewReader("newton_max_iter = 1"))
	require.NoError(t, err)

	src := NewVertexBuffer(mv(0, 0), cv(10, 0), cv(0, 10), cv(10, 10))
	res, ok, err := HitTest(Pt(2.0220689655172412, 6.4448275862068956), src, HitOptions{OutlineWidth: 1, Config: &cfg})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.3, res.Slope, 1e-5)
}
