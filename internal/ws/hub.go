package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/stepviz/internal/config"
	"github.com/coreman2200/stepviz/internal/viz"
)

// Hub serves the visualizer catalogue and one playback session per websocket
// connection. Sessions never share an engine.
type Hub struct {
	cfg *config.Config

	mu        sync.RWMutex
	startTime time.Time
	clients   map[*client]bool
}

func NewHub(cfg *config.Config) *Hub {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Hub{
		cfg:       cfg,
		startTime: time.Now(),
		clients:   map[*client]bool{},
	}
}

// Router wires every endpoint onto a chi mux.
func (h *Hub) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(withCORS)

	r.Get("/health", h.HandleHealth)
	r.Get("/api/visualizers", h.HandleList)
	r.Get("/api/visualizers/{name}/steps", h.HandleSteps)
	r.Get("/ws/{name}", h.HandleSessionWS)
	return r
}

// Sessions is the number of live websocket sessions.
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	resp := map[string]any{
		"uptime_s":    time.Since(h.startTime).Seconds(),
		"sessions":    len(h.clients),
		"visualizers": len(viz.List()),
	}
	h.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (h *Hub) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viz.Search(r.URL.Query().Get("q")))
}

// HandleSteps returns the whole step sequence for the query's params.
func (h *Hub) HandleSteps(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, ok := viz.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, unknownVisualizer(name))
		return
	}
	params := v.Defaults().With(h.cfg.ParamsFor(name)).With(queryParams(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"name":   v.Name,
		"params": params,
		"steps":  v.Generate(params),
	})
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func queryParams(r *http.Request) map[string]string {
	out := map[string]string{}
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
