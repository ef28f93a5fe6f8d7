package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"
	"github.com/NUSSETO/Graduate-Survival/internal/view"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type Options struct {
	Config  *config.Config
	Catalog upgrade.Catalog
	Rand    game.Rand
	Clock   game.Clock
	Logger  *log.Logger
}

// Session is the host of one running game. It serializes every engine call
// behind one mutex, runs the tick scheduler and fans rendered models out to
// subscribers.
type Session struct {
	mu          sync.Mutex
	state       *game.State
	engine      game.Engine
	tick        uint64
	notice      string
	noticeUntil time.Time
	graduated   bool

	clock  game.Clock
	logger *log.Logger
	period time.Duration

	commands *jsonschema.Schema

	subMu   sync.Mutex
	subs    map[int]func(view.Model)
	nextSub int
}

func New(opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = upgrade.Default()
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = game.NewRand(opts.Config.SeededRNG.Enabled, opts.Config.SeededRNG.Seed)
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	commands, err := compileCommandSchema(opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("command schema: %w", err)
	}

	return &Session{
		state:    game.NewState(opts.Config.Start, opts.Catalog),
		engine:   game.NewEngine(opts.Catalog, opts.Rand),
		clock:    opts.Clock,
		logger:   opts.Logger,
		period:   config.TickPeriod,
		commands: commands,
		subs:     map[int]func(view.Model){},
	}, nil
}

func (s *Session) Snapshot() view.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

func (s *Session) Tick() view.Model {
	s.mu.Lock()
	s.engine.Tick(s.state)
	s.tick++
	s.checkGraduationLocked()
	m := s.renderLocked()
	s.mu.Unlock()

	s.publish(m)
	return m
}

// Purchase buys one level of id. An unknown id is rejected as an invalid
// command before the engine sees it.
func (s *Session) Purchase(id upgrade.ID) (view.Model, error) {
	if _, ok := s.engine.Catalog.Lookup(id); !ok {
		return s.Snapshot(), fmt.Errorf("%w: unknown upgrade %q", ErrInvalidCommand, id)
	}

	s.mu.Lock()
	level := s.state.Levels[id]
	err := s.engine.Purchase(s.state, id)
	if err == nil {
		s.logLocked(map[string]any{
			"msg":     "upgrade_purchased",
			"upgrade": string(id),
			"level":   level + 1,
			"papers":  s.state.Papers,
		})
	}
	m := s.renderLocked()
	s.mu.Unlock()

	if err != nil {
		return m, err
	}
	s.publish(m)
	return m, nil
}

func (s *Session) ManualAction() (view.Model, error) {
	s.mu.Lock()
	res, err := s.engine.ManualAction(s.state)
	if err == nil {
		if res.EventFired {
			s.notice = res.Event.Text
			s.noticeUntil = s.clock.Now().Add(config.EventDisplayDuration)
		}
		s.checkGraduationLocked()
	}
	m := s.renderLocked()
	s.mu.Unlock()

	if err != nil {
		return m, err
	}
	s.publish(m)
	return m, nil
}

// Apply runs a parsed command.
func (s *Session) Apply(cmd Command) (view.Model, error) {
	switch cmd.Type {
	case CommandAction:
		return s.ManualAction()
	case CommandPurchase:
		return s.Purchase(upgrade.ID(cmd.ID))
	default:
		return s.Snapshot(), fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, cmd.Type)
	}
}

// Run ticks the game once per tick period until ctx is done.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Printf("session: ticking every %s", s.period)
	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("session: stopped after %d ticks", s.currentTick())
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Subscribe registers fn for every model published after a successful
// mutation. fn runs on the mutating goroutine and must not block.
func (s *Session) Subscribe(fn func(view.Model)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) publish(m view.Model) {
	s.subMu.Lock()
	fns := make([]func(view.Model), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(m)
	}
}

func (s *Session) currentTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

func (s *Session) renderLocked() view.Model {
	if s.notice != "" && !s.clock.Now().Before(s.noticeUntil) {
		s.notice = ""
	}
	return view.Render(s.state.Clone(), s.engine.Catalog, s.notice, s.tick)
}

func (s *Session) checkGraduationLocked() {
	if s.graduated || !game.IsGraduated(s.state) {
		return
	}
	s.graduated = true
	s.logLocked(map[string]any{
		"msg":    "graduated",
		"tick":   s.tick,
		"papers": s.state.Papers,
	})
}

func (s *Session) logLocked(payload map[string]any) {
	payload["ts"] = s.clock.Now().UTC().Format(time.RFC3339Nano)
	payload["level"] = "info"
	b, err := json.Marshal(payload)
	if err != nil {
		s.logger.Printf(`{"level":"error","msg":"log_marshal_failed","error":%q}`, err.Error())
		return
	}
	s.logger.Print(string(b))
}
