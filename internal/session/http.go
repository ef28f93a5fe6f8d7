package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/view"
)

const maxCommandBytes = 4 << 10

type Handler struct {
	session *Session
}

func NewHandler(s *Session) *Handler {
	return &Handler{session: s}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// GET /api/game/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// POST /api/game/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "could not read body")
		return
	}

	cmd, err := h.session.ParseCommand(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":     false,
			"error":  err.Error(),
			"reason": Reason(err),
			"state":  h.session.Snapshot(),
		})
		return
	}

	m, err := h.session.Apply(cmd)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": m})
	case errors.Is(err, game.ErrInsufficientFunds):
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"ok":     false,
			"error":  "not enough papers",
			"reason": Reason(err),
			"state":  m,
		})
	case errors.Is(err, game.ErrInsufficientEnergy):
		writeJSON(w, http.StatusConflict, map[string]any{
			"ok":     false,
			"error":  "not enough energy",
			"reason": Reason(err),
			"state":  m,
		})
	case errors.Is(err, ErrInvalidCommand):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":     false,
			"error":  err.Error(),
			"reason": Reason(err),
			"state":  m,
		})
	default:
		writeErr(w, http.StatusInternalServerError, "command failed")
	}
}

// GET /api/game/schema
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	b, err := view.Schema()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "could not build schema")
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(b)
}
