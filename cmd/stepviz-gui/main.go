//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/app"
	"github.com/coreman2200/stepviz/internal/config"
	"github.com/coreman2200/stepviz/internal/gui"
	"github.com/coreman2200/stepviz/internal/logging"
	"github.com/coreman2200/stepviz/internal/viz"
	_ "github.com/coreman2200/stepviz/internal/viz/all"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

func main() {
	params := config.ParamFlag{}
	var (
		name       = flag.String("viz", "packet-routing", "visualizer name")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		theme      = flag.String("theme", "dark", "initial theme: light | dark")
	)
	flag.Var(params, "p", "visualizer param key=value (repeatable)")
	flag.Parse()

	_ = logging.Setup(os.Stdout, "info")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = config.Default()
	}

	game := gui.New(vizutil.NewAmbientTheme(vizutil.ParseMode(*theme)), cfg.Resize.BaseWidth, cfg.Resize.Aspect)
	sess, err := app.NewSession(*name, game, app.Options{
		Playback: cfg.PlaybackOptions(),
		Params:   viz.Params(cfg.ParamsFor(*name)).With(params),
		Theme:    game.Theme(),
		Surface:  game,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session")
	}
	defer sess.Close()
	game.Bind(sess, cfg.DebounceQuiet())

	ebiten.SetWindowTitle("stepviz: " + sess.Viz.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Resize.BaseWidth, int(float64(cfg.Resize.BaseWidth)/cfg.Resize.Aspect))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("gui")
	}
}
