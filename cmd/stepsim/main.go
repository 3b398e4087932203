// Command stepsim plays one visualizer to completion without a UI and logs
// every frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/app"
	"github.com/coreman2200/stepviz/internal/config"
	"github.com/coreman2200/stepviz/internal/logging"
	"github.com/coreman2200/stepviz/internal/render/fake"
	"github.com/coreman2200/stepviz/internal/viz"
	_ "github.com/coreman2200/stepviz/internal/viz/all"
)

func main() {
	params := config.ParamFlag{}
	var (
		name       = flag.String("viz", "binary-search", "visualizer name")
		list       = flag.Bool("list", false, "list visualizers and exit")
		configPath = flag.String("config", "", "optional config.yaml")
		interval   = flag.Duration("interval", 100*time.Millisecond, "tick interval at speed 1")
		speed      = flag.Float64("speed", 1, "speed multiplier")
		logLevel   = flag.String("log-level", "info", "zerolog level")
	)
	flag.Var(params, "p", "visualizer param key=value (repeatable)")
	flag.Parse()

	_ = logging.Setup(os.Stdout, *logLevel)

	if *list {
		for _, v := range viz.List() {
			fmt.Printf("%-18s %-18s %s\n", v.Name, v.Topic, v.Summary)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		} else {
			cfg = c
		}
	}

	opts := cfg.PlaybackOptions()
	opts.Interval = *interval
	opts.Speed = *speed
	sess, err := app.NewSession(*name, &fake.Driver{}, app.Options{
		Playback: opts,
		Params:   viz.Params(cfg.ParamsFor(*name)).With(params),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session")
	}
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := sess.Run(ctx); err != nil {
		log.Error().Err(err).Msg("run stopped")
		return
	}
	st := sess.Engine.Status()
	log.Info().
		Int("steps", st.Length).
		Dur("elapsed", time.Since(start)).
		Msg("done")
}
