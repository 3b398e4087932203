package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

type Playback struct {
	IntervalMs int               `yaml:"interval_ms"`
	Speed      float64           `yaml:"speed"`
	Controls   playback.Controls `yaml:"controls"`
}

type Resize struct {
	DebounceMs int     `yaml:"debounce_ms"`
	BaseWidth  int     `yaml:"base_width"`
	Aspect     float64 `yaml:"aspect"`
}

type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"` // zerolog level name
	Theme    string `yaml:"theme"`     // "light" | "dark"

	Playback Playback `yaml:"playback"`
	Resize   Resize   `yaml:"resize"`

	// Params overrides visualizer defaults, keyed by visualizer name.
	Params map[string]map[string]string `yaml:"params,omitempty"`
}

func Default() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
		Theme:    string(vizutil.Light),
		Playback: Playback{
			IntervalMs: int(playback.DefaultInterval / time.Millisecond),
			Speed:      1,
			Controls:   playback.DefaultControls(),
		},
		Resize: Resize{
			DebounceMs: int(vizutil.DefaultQuiet / time.Millisecond),
			BaseWidth:  640,
			Aspect:     16.0 / 9.0,
		},
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// PlaybackOptions converts the playback section into engine options on the
// wall clock.
func (c *Config) PlaybackOptions() playback.Options {
	opts := playback.DefaultOptions()
	opts.Controls = c.Playback.Controls
	if c.Playback.IntervalMs > 0 {
		opts.Interval = time.Duration(c.Playback.IntervalMs) * time.Millisecond
	}
	if c.Playback.Speed > 0 {
		opts.Speed = c.Playback.Speed
	}
	return opts
}

func (c *Config) DebounceQuiet() time.Duration {
	if c.Resize.DebounceMs <= 0 {
		return vizutil.DefaultQuiet
	}
	return time.Duration(c.Resize.DebounceMs) * time.Millisecond
}

// ParamsFor returns the configured overrides for a visualizer, possibly nil.
func (c *Config) ParamsFor(name string) map[string]string {
	return c.Params[name]
}

// ParamFlag collects repeated -p key=value flags.
type ParamFlag map[string]string

func (p ParamFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (p ParamFlag) Set(kv string) error {
	k, v, ok := strings.Cut(kv, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("want key=value, got %q", kv)
	}
	p[strings.TrimSpace(k)] = v
	return nil
}
