package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/stepviz/internal/playback"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Addr = ":9090"
	c.Playback.Controls.Speed = false
	c.Params = map[string]map[string]string{"binary-search": {"target": "42"}}
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\nplayback:\n  speed: 2\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Addr)
	assert.Equal(t, 2.0, c.Playback.Speed)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 600, c.Playback.IntervalMs)
	assert.Equal(t, playback.DefaultControls(), c.Playback.Controls)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestPlaybackOptions(t *testing.T) {
	c := Default()
	c.Playback.IntervalMs = 250
	c.Playback.Speed = 0
	opts := c.PlaybackOptions()
	assert.Equal(t, 250*time.Millisecond, opts.Interval)
	assert.Equal(t, 1.0, opts.Speed)
	assert.NotNil(t, opts.Clock)

	c.Resize.DebounceMs = 0
	assert.Equal(t, 150*time.Millisecond, c.DebounceQuiet())
}

func TestParamFlag(t *testing.T) {
	p := ParamFlag{}
	require.NoError(t, p.Set("values=1,2,3"))
	require.NoError(t, p.Set(" target =5"))
	require.NoError(t, p.Set("empty="))
	assert.Error(t, p.Set("novalue"))
	assert.Error(t, p.Set("=x"))
	assert.Equal(t, "empty=,target=5,values=1,2,3", p.String())
}
