package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/app"
	diag "github.com/coreman2200/stepviz/internal/diagnostics"
	"github.com/coreman2200/stepviz/internal/playback"
	"github.com/coreman2200/stepviz/internal/render"
	"github.com/coreman2200/stepviz/internal/viz"
	"github.com/coreman2200/stepviz/internal/vizutil"
)

const writeWait = 2 * time.Second

// Message is every server to client payload. Type selects which fields are
// set.
type Message struct {
	Type       string             `json:"type"`
	Visualizer *viz.Visualizer    `json:"visualizer,omitempty"`
	Controls   *playback.Controls `json:"controls,omitempty"`
	Status     *playback.Status   `json:"status,omitempty"`
	Params     viz.Params         `json:"params,omitempty"`
	Frame      *render.Frame      `json:"frame,omitempty"`
	Diag       *diag.Diagnostic   `json:"diag,omitempty"`
}

// Command is a client request.
type Command struct {
	Cmd    string            `json:"cmd"`
	Index  int               `json:"index,omitempty"`
	Speed  float64           `json:"speed,omitempty"`
	Theme  string            `json:"theme,omitempty"`
	Width  int               `json:"width,omitempty"`
	DPR    float64           `json:"dpr,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// client is one websocket connection. It is both the session's render
// driver and its control surface.
type client struct {
	hub  *Hub
	conn *websocket.Conn

	writeMu sync.Mutex

	ctrl     playback.Controller
	controls playback.Controls

	sess    *app.Session
	theme   *vizutil.AmbientTheme
	surface vizutil.StaticSurface

	redraw       func()
	cancelRedraw func()

	logger zerolog.Logger
}

func (c *client) Attach(ctrl playback.Controller, controls playback.Controls) {
	c.ctrl = ctrl
	c.controls = controls
}

// Write sends a frame. Called on the engine's ticking goroutine.
func (c *client) Write(f render.Frame) error {
	return c.send(Message{Type: "frame", Frame: &f})
}

func (c *client) Close() error {
	c.cancelRedraw()
	return c.conn.Close()
}

func (c *client) send(m Message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *client) sendStatus() {
	st := c.ctrl.Status()
	if err := c.send(Message{Type: "status", Status: &st}); err != nil {
		c.logger.Debug().Err(err).Msg("write status")
	}
}

func (c *client) pushDiag(d diag.Diagnostic) {
	c.logger.Warn().Str("code", d.Code).Msg(d.Summary)
	if err := c.send(Message{Type: "diag", Diag: &d}); err != nil {
		c.logger.Debug().Err(err).Msg("write diag")
	}
}

// HandleSessionWS upgrades and runs one session until the client goes away.
func (h *Hub) HandleSessionWS(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := viz.Lookup(name); !ok {
		writeJSON(w, http.StatusNotFound, unknownVisualizer(name))
		return
	}
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		hub:     h,
		conn:    conn,
		theme:   vizutil.NewAmbientTheme(vizutil.ParseMode(h.cfg.Theme)),
		surface: vizutil.StaticSurface{Width: h.cfg.Resize.BaseWidth, Ratio: 1},
		logger:  log.With().Str("component", "ws").Str("viz", name).Logger(),
	}
	size := vizutil.Resize(&c.surface, h.cfg.Resize.BaseWidth, h.cfg.Resize.Aspect)

	params := viz.Params(h.cfg.ParamsFor(name)).With(queryParams(r))
	sess, err := app.NewSession(name, c, app.Options{
		Playback: h.cfg.PlaybackOptions(),
		Params:   params,
		Theme:    c.theme,
		Surface:  c,
		Size:     size,
	})
	if err != nil {
		conn.Close()
		return
	}
	c.sess = sess
	c.redraw, c.cancelRedraw = vizutil.Debounce(sess.Engine.Redraw, h.cfg.DebounceQuiet())

	h.add(c)
	defer func() {
		h.remove(c)
		if err := sess.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("close")
		}
	}()

	st := c.ctrl.Status()
	hello := Message{
		Type:       "hello",
		Visualizer: &sess.Viz,
		Controls:   &c.controls,
		Status:     &st,
		Params:     sess.Params(),
	}
	if err := c.send(hello); err != nil {
		return
	}
	c.logger.Info().Msg("session started")
	c.reset()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.logger.Info().Msg("session ended")
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.pushDiag(diag.Diagnostic{
				Severity: diag.Warn,
				Code:     diag.BadMessage,
				Summary:  "Malformed command",
				Detail:   err.Error(),
			})
			continue
		}
		c.apply(cmd)
	}
}

func (c *client) reset() {
	c.ctrl.Reset()
	if c.ctrl.Status().State == playback.Idle {
		c.pushDiag(diag.Note(diag.EmptySequence, "Visualizer produced no steps"))
	}
}

// apply runs one command and reports the resulting status.
func (c *client) apply(cmd Command) {
	switch cmd.Cmd {
	case "reset":
		if cmd.Params != nil {
			c.sess.SetParams(cmd.Params)
			if c.ctrl.Status().State == playback.Idle {
				c.pushDiag(diag.Note(diag.EmptySequence, "Visualizer produced no steps"))
			}
		} else {
			c.reset()
		}
	case "play":
		if !c.allowed(cmd.Cmd, c.controls.Play) {
			return
		}
		c.ctrl.Play()
	case "pause":
		if !c.allowed(cmd.Cmd, c.controls.Play) {
			return
		}
		c.ctrl.Pause()
	case "step":
		if !c.allowed(cmd.Cmd, c.controls.Step) {
			return
		}
		c.ctrl.StepOnce()
	case "finish":
		c.ctrl.Finish()
	case "speed":
		if !c.allowed(cmd.Cmd, c.controls.Speed) {
			return
		}
		c.ctrl.SetSpeed(cmd.Speed)
	case "theme":
		if cmd.Theme == "" {
			c.theme.Toggle()
		} else {
			c.theme.Set(vizutil.ParseMode(cmd.Theme))
		}
		c.ctrl.Redraw()
	case "resize":
		c.surface.Width = cmd.Width
		c.surface.Ratio = cmd.DPR
		c.sess.SetSize(vizutil.Resize(&c.surface, c.hub.cfg.Resize.BaseWidth, c.hub.cfg.Resize.Aspect))
		c.redraw()
	case "redraw":
		c.ctrl.Redraw()
	case "peek":
		f, ok := c.sess.Snapshot(cmd.Index)
		if !ok {
			c.pushDiag(diag.Warning(diag.StepOutOfRange, "No step at that index", map[string]any{
				"index": cmd.Index,
				"total": c.ctrl.Status().Length,
			}))
			return
		}
		if err := c.send(Message{Type: "peek", Frame: &f}); err != nil {
			c.logger.Debug().Err(err).Msg("write peek")
		}
	default:
		c.pushDiag(diag.Warning(diag.UnknownCommand, "Unknown command", map[string]any{"cmd": cmd.Cmd}))
		return
	}
	c.sendStatus()
}

func (c *client) allowed(cmd string, enabled bool) bool {
	if !enabled {
		c.pushDiag(diag.Diagnostic{
			Severity:       diag.Warn,
			Code:           diag.ControlDisabled,
			Summary:        "Control disabled for this visualizer",
			Evidence:       map[string]any{"cmd": cmd},
			SuggestedFixes: []string{"check the controls in the hello message"},
		})
	}
	return enabled
}

func unknownVisualizer(name string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity:       diag.Err,
		Code:           diag.UnknownVisualizer,
		Summary:        "Unknown visualizer",
		Evidence:       map[string]any{"name": name},
		SuggestedFixes: []string{"GET /api/visualizers lists the available names"},
	}
}
