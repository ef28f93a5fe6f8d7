package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Reason string `json:"reason"`
	State  struct {
		Energy int `json:"energy"`
		Papers int `json:"papers"`
	} `json:"state"`
}

func postCmd(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, cmdResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/game/cmd", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Command(rec, req)

	var out cmdResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHandler_State(t *testing.T) {
	ts := newTestSession(t, noEvents)
	h := NewHandler(ts.Session)

	rec := httptest.NewRecorder()
	h.State(rec, httptest.NewRequest(http.MethodGet, "/api/game/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 50, body["energy"])
	assert.EqualValues(t, 1000, body["graduationGoal"])

	rec = httptest.NewRecorder()
	h.State(rec, httptest.NewRequest(http.MethodPost, "/api/game/state", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_CommandAction(t *testing.T) {
	ts := newTestSession(t, noEvents)
	h := NewHandler(ts.Session)

	rec, out := postCmd(t, h, `{"type":"action"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, out.OK)
	assert.Equal(t, 48, out.State.Energy)
	assert.Equal(t, 1, out.State.Papers)
}

func TestHandler_CommandInsufficientFunds(t *testing.T) {
	ts := newTestSession(t, noEvents)
	h := NewHandler(ts.Session)

	rec, out := postCmd(t, h, `{"type":"purchase","id":"espresso"}`)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.False(t, out.OK)
	assert.Equal(t, "insufficient_funds", out.Reason)
	assert.Equal(t, 0, out.State.Papers)
}

func TestHandler_CommandInsufficientEnergy(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.state.Energy = 0
	h := NewHandler(ts.Session)

	rec, out := postCmd(t, h, `{"type":"action"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_energy", out.Reason)
	assert.Equal(t, 0, out.State.Papers)
}

func TestHandler_CommandRejectsInvalidBodies(t *testing.T) {
	ts := newTestSession(t, noEvents)
	h := NewHandler(ts.Session)

	for _, body := range []string{`{`, `{"type":"purchase","id":"timeMachine"}`, `{"type":"nap"}`} {
		rec, out := postCmd(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "invalid_command", out.Reason, body)
	}
}

func TestHandler_CommandMethodNotAllowed(t *testing.T) {
	ts := newTestSession(t, noEvents)
	h := NewHandler(ts.Session)

	rec := httptest.NewRecorder()
	h.Command(rec, httptest.NewRequest(http.MethodGet, "/api/game/cmd", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_Schema(t *testing.T) {
	ts := newTestSession(t, noEvents)
	h := NewHandler(ts.Session)

	rec := httptest.NewRecorder()
	h.Schema(rec, httptest.NewRequest(http.MethodGet, "/api/game/schema", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/schema+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"netEnergyPerTick"`)
}
