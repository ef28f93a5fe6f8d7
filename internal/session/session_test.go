package session

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"
	"github.com/NUSSETO/Graduate-Survival/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand answers every roll with the same values.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

var noEvents = fixedRand{f: 0.999}

type testSession struct {
	*Session
	clock *game.FakeClock
	logs  *bytes.Buffer
}

func newTestSession(t *testing.T, rng game.Rand) testSession {
	t.Helper()

	var logs bytes.Buffer
	clock := game.NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	s, err := New(Options{
		Config: config.Default(),
		Rand:   rng,
		Clock:  clock,
		Logger: log.New(&logs, "", 0),
	})
	require.NoError(t, err)
	return testSession{Session: s, clock: clock, logs: &logs}
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	cat := upgrade.Default()
	cat[0].CostMultiplier = 0.5

	_, err := New(Options{Config: config.Default(), Catalog: cat})
	assert.Error(t, err)
}

func TestSnapshot_FreshGame(t *testing.T) {
	ts := newTestSession(t, noEvents)

	m := ts.Snapshot()

	assert.Equal(t, 50, m.Energy)
	assert.Equal(t, 0, m.Papers)
	assert.Equal(t, uint64(0), m.Tick)
	assert.Len(t, m.Upgrades, 4)
}

func TestTick_AdvancesAndPublishes(t *testing.T) {
	ts := newTestSession(t, noEvents)

	var got []view.Model
	cancel := ts.Subscribe(func(m view.Model) { got = append(got, m) })

	m := ts.Tick()
	assert.Equal(t, 55, m.Energy)
	assert.Equal(t, uint64(1), m.Tick)
	require.Len(t, got, 1)
	assert.Equal(t, m, got[0])

	cancel()
	ts.Tick()
	assert.Len(t, got, 1)
}

func TestManualAction_EventNoticeExpiresAfterTwoTicks(t *testing.T) {
	ts := newTestSession(t, fixedRand{f: 0, n: 0})

	m, err := ts.ManualAction()
	require.NoError(t, err)
	assert.Equal(t, "Advisor Meeting!\n-10 Energy", m.Event)
	assert.Equal(t, 38, m.Energy)
	assert.Equal(t, 1, m.Papers)

	ts.clock.Advance(config.TickPeriod)
	assert.Equal(t, "Advisor Meeting!\n-10 Energy", ts.Snapshot().Event)

	ts.clock.Advance(config.TickPeriod)
	assert.Empty(t, ts.Snapshot().Event)
}

func TestManualAction_NewEventReplacesNotice(t *testing.T) {
	ts := newTestSession(t, fixedRand{f: 0, n: 2})

	_, err := ts.ManualAction()
	require.NoError(t, err)
	ts.clock.Advance(config.TickPeriod + time.Second/2)

	m, err := ts.ManualAction()
	require.NoError(t, err)
	assert.Equal(t, "Free Pizza!\n+50 Energy", m.Event)

	ts.clock.Advance(config.TickPeriod)
	assert.NotEmpty(t, ts.Snapshot().Event)
}

func TestManualAction_InsufficientEnergyDoesNotPublish(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.state.Energy = 1

	published := 0
	ts.Subscribe(func(view.Model) { published++ })

	m, err := ts.ManualAction()
	assert.ErrorIs(t, err, game.ErrInsufficientEnergy)
	assert.Equal(t, 1, m.Energy)
	assert.False(t, m.CanAct)
	assert.Equal(t, 0, published)
}

func TestPurchase_UnknownIDIsInvalidCommand(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.state.Papers = 500

	m, err := ts.Purchase("timeMachine")

	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, 500, m.Papers)
}

func TestPurchase_InsufficientFunds(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.state.Papers = 9

	m, err := ts.Purchase(upgrade.BetterBeans)

	assert.ErrorIs(t, err, game.ErrInsufficientFunds)
	assert.Equal(t, 9, m.Papers)
	assert.Equal(t, 0, m.Upgrades[0].Level)
}

func TestPurchase_LogsAndUpdatesShop(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.state.Papers = 10

	m, err := ts.Purchase(upgrade.BetterBeans)
	require.NoError(t, err)

	assert.Equal(t, 0, m.Papers)
	assert.Equal(t, 1, m.Upgrades[0].Level)
	assert.Equal(t, 13, m.Upgrades[0].NextCost)
	assert.Contains(t, ts.logs.String(), `"msg":"upgrade_purchased"`)
	assert.Contains(t, ts.logs.String(), `"upgrade":"betterBeans"`)
}

func TestGraduation_LoggedOnce(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.state.Papers = 999

	m, err := ts.ManualAction()
	require.NoError(t, err)
	assert.True(t, m.Graduated)

	_, err = ts.ManualAction()
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(ts.logs.String(), `"msg":"graduated"`))
}

func TestApply_Dispatch(t *testing.T) {
	ts := newTestSession(t, noEvents)

	m, err := ts.Apply(Command{Type: CommandAction})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Papers)

	_, err = ts.Apply(Command{Type: CommandPurchase, ID: string(upgrade.Plant)})
	assert.ErrorIs(t, err, game.ErrInsufficientFunds)

	_, err = ts.Apply(Command{Type: "dance"})
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestParseCommand(t *testing.T) {
	ts := newTestSession(t, noEvents)

	cmd, err := ts.ParseCommand([]byte(`{"type":"action"}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Type: CommandAction}, cmd)

	cmd, err = ts.ParseCommand([]byte(`{"type":"purchase","id":"espresso"}`))
	require.NoError(t, err)
	assert.Equal(t, Command{Type: CommandPurchase, ID: "espresso"}, cmd)

	for _, raw := range []string{
		`not json`,
		`{}`,
		`{"type":"dance"}`,
		`{"type":"purchase"}`,
		`{"type":"purchase","id":"timeMachine"}`,
		`{"type":"action","extra":true}`,
		`["action"]`,
	} {
		_, err := ts.ParseCommand([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidCommand, raw)
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, "", Reason(nil))
	assert.Equal(t, "insufficient_funds", Reason(game.ErrInsufficientFunds))
	assert.Equal(t, "insufficient_energy", Reason(game.ErrInsufficientEnergy))
	assert.Equal(t, "invalid_command", Reason(ErrInvalidCommand))
	assert.Equal(t, "internal", Reason(assert.AnError))
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	ts := newTestSession(t, noEvents)
	ts.period = 5 * time.Millisecond

	ticks := make(chan uint64, 16)
	ts.Subscribe(func(m view.Model) {
		select {
		case ticks <- m.Tick:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ts.Run(ctx)
		close(done)
	}()

	for want := uint64(1); want <= 3; want++ {
		select {
		case got := <-ticks:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never arrived", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
