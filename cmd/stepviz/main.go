package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/config"
	"github.com/coreman2200/stepviz/internal/logging"
	_ "github.com/coreman2200/stepviz/internal/viz/all"
	"github.com/coreman2200/stepviz/internal/ws"
)

func main() {
	// ---- Flags (explicitly set flags override config.yaml) ----
	var (
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		logLevel   = flag.String("log-level", "info", "zerolog level")
		theme      = flag.String("theme", "light", "initial theme: light | dark")
		intervalMs = flag.Int("interval-ms", 600, "tick interval at speed 1")
		speed      = flag.Float64("speed", 1, "initial speed multiplier")
	)
	flag.Parse()

	// ---- Logging ----
	_ = logging.Setup(os.Stdout, *logLevel)

	// ---- Load config.yaml (optional) ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
		cfg = config.Default()
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "log-level":
			cfg.LogLevel = *logLevel
		case "theme":
			cfg.Theme = *theme
		case "interval-ms":
			cfg.Playback.IntervalMs = *intervalMs
		case "speed":
			cfg.Playback.Speed = *speed
		}
	})
	if err := logging.Setup(os.Stdout, cfg.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("bad log level; using info")
	}

	hub := ws.NewHub(cfg)
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      hub.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("theme", cfg.Theme).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Int("sessions", hub.Sessions()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
}
