// Command stepviz-term plays a visualizer in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/app"
	"github.com/coreman2200/stepviz/internal/config"
	"github.com/coreman2200/stepviz/internal/logging"
	"github.com/coreman2200/stepviz/internal/term"
	"github.com/coreman2200/stepviz/internal/viz"
	_ "github.com/coreman2200/stepviz/internal/viz/all"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

func main() {
	params := config.ParamFlag{}
	var (
		name       = flag.String("viz", "bubble-sort", "visualizer name")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		logPath    = flag.String("log", "", "write logs to this file (the screen is busy)")
		theme      = flag.String("theme", "dark", "initial theme: light | dark")
	)
	flag.Var(params, "p", "visualizer param key=value (repeatable)")
	flag.Parse()

	if *logPath == "" {
		logging.Discard()
	} else {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log:", err)
			os.Exit(1)
		}
		defer f.Close()
		_ = logging.Setup(f, "debug")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = config.Default()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "terminal:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "terminal:", err)
		os.Exit(1)
	}

	view := term.New(screen, vizutil.NewAmbientTheme(vizutil.ParseMode(*theme)))
	sess, err := app.NewSession(*name, view, app.Options{
		Playback: cfg.PlaybackOptions(),
		Params:   viz.Params(cfg.ParamsFor(*name)).With(params),
		Theme:    view.Theme(),
		Surface:  view,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	view.Bind(sess, cfg.DebounceQuiet())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = view.Run(ctx)
	stop()
	_ = sess.Close()
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
