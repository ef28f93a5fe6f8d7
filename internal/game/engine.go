package game

import (
	"errors"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientEnergy = errors.New("insufficient energy")
)

// Engine holds the rules. It keeps no state of its own; every operation
// runs to completion on the State it is handed and callers must not share
// that State between goroutines without their own serialization.
type Engine struct {
	Catalog upgrade.Catalog
	Events  []RandomEvent
	Rand    Rand
}

func NewEngine(cat upgrade.Catalog, rng Rand) Engine {
	return Engine{
		Catalog: cat,
		Events:  DefaultEvents,
		Rand:    rng,
	}
}

type TickResult struct {
	EnergyGained int  `json:"energy_gained"`
	Produced     int  `json:"produced"`
	Stalled      bool `json:"stalled"`
}

type ActionResult struct {
	Event      RandomEvent `json:"event"`
	EventFired bool        `json:"event_fired"`
}

// NextCost is what the next level of id costs at the current level.
func (e Engine) NextCost(s *State, id upgrade.ID) int {
	return upgrade.Cost(e.Catalog.MustGet(id), s.Levels[id])
}

func (e Engine) Purchase(s *State, id upgrade.ID) error {
	def := e.Catalog.MustGet(id)
	cost := upgrade.Cost(def, s.Levels[id])
	if s.Papers < cost {
		return ErrInsufficientFunds
	}

	s.Papers -= cost
	if s.Levels == nil {
		s.Levels = map[upgrade.ID]int{}
	}
	s.Levels[id]++
	applyEffect(s, def.Effect)
	return nil
}

func applyEffect(s *State, fx upgrade.Effect) {
	s.BaseRegen += fx.Regen
	s.MaxEnergy += fx.MaxEnergy
	s.AutoPapers += fx.AutoPapers
	if fx.EventChance != nil && *fx.EventChance < s.EventChance {
		s.EventChance = *fx.EventChance
	}
}

// Tick is one passive step: regenerate, then let automation burn one energy
// per paper. Automation that cannot afford its full run skips the tick.
func (e Engine) Tick(s *State) TickResult {
	var res TickResult

	before := s.Energy
	s.Energy = min(s.MaxEnergy, s.Energy+s.BaseRegen)
	res.EnergyGained = s.Energy - before

	if s.AutoPapers > 0 {
		runCost := s.AutoPapers
		if s.Energy >= runCost {
			s.Energy -= runCost
			s.Papers += s.AutoPapers
			res.Produced = s.AutoPapers
		} else {
			res.Stalled = true
		}
	}
	return res
}

func (e Engine) ManualAction(s *State) (ActionResult, error) {
	if s.Energy < config.ManualPaperCost {
		return ActionResult{}, ErrInsufficientEnergy
	}
	s.Energy -= config.ManualPaperCost
	s.Papers++

	ev, fired := e.RollRandomEvent(s)
	return ActionResult{Event: ev, EventFired: fired}, nil
}

// RollRandomEvent fires with probability s.EventChance. A fired event is
// picked uniformly and its energy delta is clamped into [0, MaxEnergy].
func (e Engine) RollRandomEvent(s *State) (RandomEvent, bool) {
	if e.Rand == nil || len(e.Events) == 0 {
		return RandomEvent{}, false
	}
	if e.Rand.Float64() >= s.EventChance {
		return RandomEvent{}, false
	}

	ev := e.Events[e.Rand.Intn(len(e.Events))]
	s.Energy = clamp(s.Energy+ev.EnergyDelta, 0, s.MaxEnergy)
	return ev, true
}

// NetEnergyPerTick is the rate shown to the player. It charges two energy
// per automated paper; Tick charges one.
// TODO: settle on one rate together with the undergrad shop description.
func NetEnergyPerTick(s *State) int {
	return s.BaseRegen - s.AutoPapers*2
}

func IsGraduated(s *State) bool {
	return s.Papers >= config.GraduationGoal
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
