package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/httpmw"
	"github.com/NUSSETO/Graduate-Survival/internal/page"
	"github.com/NUSSETO/Graduate-Survival/internal/session"
	"github.com/NUSSETO/Graduate-Survival/internal/stream"
	staticfiles "github.com/NUSSETO/Graduate-Survival/static"

	"github.com/a-h/templ"
	"github.com/klauspost/compress/gzhttp"
)

type Options struct {
	Config  *config.Config
	Session *session.Session
	Logger  *log.Logger
}

// NewHandler mounts the game API, the websocket stream, the page and the
// static assets on one mux. The caller owns the session and runs its clock.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Session == nil {
		return nil, errors.New("session is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	sess := opts.Session

	mux := http.NewServeMux()

	devDir := ""
	if opts.Config.Server.DevStatic {
		devDir = opts.Config.Server.StaticDir
	}
	mux.Handle("/static/", gzhttp.GzipHandler(http.StripPrefix("/static/", staticfiles.Handler(devDir))))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "gradsurv",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		m := sess.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "gradsurv",
			"tick":    m.Tick,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	gameHandler := session.NewHandler(sess)
	mux.Handle("/api/game/state", gzhttp.GzipHandler(http.HandlerFunc(gameHandler.State)))
	mux.Handle("/api/game/cmd", gzhttp.GzipHandler(http.HandlerFunc(gameHandler.Command)))
	mux.Handle("/api/game/schema", gzhttp.GzipHandler(http.HandlerFunc(gameHandler.Schema)))

	mux.Handle("/api/config", gzhttp.GzipHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})))

	mux.Handle("/ws", stream.NewServer(sess, opts.Logger).Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		templ.Handler(page.Game(sess.Snapshot())).ServeHTTP(w, r)
	})

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger, "/healthz", "/readyz"),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// LogStartup prints the settings an operator usually wants to see first.
func LogStartup(logger *log.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	seed := "time"
	if cfg.SeededRNG.Enabled {
		seed = "fixed"
	}
	logger.Printf("[startup] addr=%s rng=%s dev_static=%t start_energy=%d/%d regen=%d",
		strings.TrimSpace(cfg.Server.Addr), seed, cfg.Server.DevStatic,
		cfg.Start.Energy, cfg.Start.MaxEnergy, cfg.Start.BaseRegen)
}
