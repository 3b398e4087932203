package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/render/fake"
	_ "github.com/coreman2200/stepviz/internal/viz/all"
	"github.com/coreman2200/stepviz/internal/viz/linsearch"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

func quickOptions() Options {
	opts := playback.DefaultOptions()
	opts.Interval = time.Millisecond
	return Options{Playback: opts}
}

func TestUnknownVisualizer(t *testing.T) {
	_, err := NewSession("no-such-thing", &fake.Driver{Quiet: true}, quickOptions())
	assert.Error(t, err)
}

func TestResetPaintsFirstStep(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	opts := quickOptions()
	opts.Params = map[string]string{"values": "3,7,2,9", "target": "7"}
	s, err := NewSession("linear-search", drv, opts)
	require.NoError(t, err)

	s.Engine.Reset()
	f, ok := drv.Last()
	require.True(t, ok)
	assert.Equal(t, "linear-search", f.Visualizer)
	assert.Equal(t, 0, f.Index)
	assert.Equal(t, playback.Ready, f.State)

	s.Engine.StepOnce()
	s.Engine.StepOnce()
	f, _ = drv.Last()
	step := f.Step.(linsearch.Step)
	assert.Equal(t, "Checking index 1: 7", step.Message)
}

func TestRunPlaysToCompletion(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	s, err := NewSession("binary-addition", drv, quickOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx))

	assert.Equal(t, playback.Finished, s.Engine.State())
	assert.Equal(t, s.Engine.Len(), drv.Count())

	// a second run gets a fresh done channel
	require.NoError(t, s.Run(ctx))
	assert.Equal(t, 2*s.Engine.Len(), drv.Count())
}

func TestRunHonoursCancel(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	opts := quickOptions()
	opts.Playback.Interval = time.Hour
	s, err := NewSession("bubble-sort", drv, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Equal(t, playback.Paused, s.Engine.State())
}

func TestSetParamsRegenerates(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	s, err := NewSession("run-length", drv, quickOptions())
	require.NoError(t, err)
	s.Engine.Reset()
	before := s.Engine.Len()

	s.SetParams(map[string]string{"text": "ab"})
	assert.Equal(t, "ab", s.Params().String("text", ""))
	assert.NotEqual(t, before, s.Engine.Len())
	assert.Equal(t, 0, s.Engine.Position())
}

func TestThemeAndSizeFlowIntoFrames(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	theme := vizutil.NewAmbientTheme(vizutil.Dark)
	opts := quickOptions()
	opts.Theme = theme
	s, err := NewSession("linear-search", drv, opts)
	require.NoError(t, err)

	s.Engine.Reset()
	s.SetSize(vizutil.Size{W: 800, H: 450})
	theme.Toggle()
	s.Engine.Redraw()

	frames := drv.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, vizutil.Dark, frames[0].Theme.Mode)
	assert.Equal(t, vizutil.Light, frames[1].Theme.Mode)
	assert.Equal(t, vizutil.Size{W: 800, H: 450}, frames[1].Surface)
	assert.Equal(t, frames[0].Index, frames[1].Index)
}

func TestControlsIntersect(t *testing.T) {
	opts := quickOptions()
	opts.Playback.Controls.Speed = false
	s, err := NewSession("binary-search", &fake.Driver{Quiet: true}, opts)
	require.NoError(t, err)
	assert.Equal(t, playback.Controls{Play: true, Speed: false, Step: true}, s.Controls)
	assert.Equal(t, s.Controls, s.Engine.Controls())
}

func TestCloseFinishesAndClosesDriver(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	s, err := NewSession("packet-routing", drv, quickOptions())
	require.NoError(t, err)
	s.Engine.Reset()
	require.NoError(t, s.Close())
	assert.Equal(t, playback.Finished, s.Engine.State())
	assert.True(t, drv.Closed())
}

func TestRunReturnsOnExternalFinish(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	opts := quickOptions()
	opts.Playback.Interval = time.Hour
	s, err := NewSession("linear-search", drv, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() {
		time.Sleep(50 * time.Millisecond)
		s.Engine.Finish()
	}()

	start := time.Now()
	require.NoError(t, s.Run(ctx))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, playback.Finished, s.Engine.State())
}

func TestCloseWakesRun(t *testing.T) {
	opts := quickOptions()
	opts.Playback.Interval = time.Hour
	s, err := NewSession("bubble-sort", &fake.Driver{Quiet: true}, opts)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Engine.State() == playback.Running }, time.Second, 5*time.Millisecond)
	require.NoError(t, s.Close())
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestSnapshotByIndex(t *testing.T) {
	drv := &fake.Driver{Quiet: true}
	opts := quickOptions()
	opts.Params = map[string]string{"values": "3,7,2,9", "target": "9"}
	s, err := NewSession("linear-search", drv, opts)
	require.NoError(t, err)
	s.Engine.Reset()

	f, ok := s.Snapshot(2)
	require.True(t, ok)
	assert.Equal(t, 2, f.Index)
	assert.Equal(t, s.Engine.Len(), f.Total)
	assert.Equal(t, "Checking index 1: 7", f.Step.(linsearch.Step).Message)
	assert.Equal(t, 0, s.Engine.Position(), "cursor stays put")
	assert.Equal(t, 1, drv.Count(), "driver is not written")

	_, ok = s.Snapshot(s.Engine.Len())
	assert.False(t, ok)
}
