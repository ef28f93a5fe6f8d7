package game

import (
	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"
)

// State is the whole mutable game record. One exists per running game.
type State struct {
	Energy     int `json:"energy"`
	MaxEnergy  int `json:"max_energy"`
	Papers     int `json:"papers"`
	BaseRegen  int `json:"base_regen"`
	AutoPapers int `json:"auto_papers"`

	EventChance float64 `json:"event_chance"`

	Levels map[upgrade.ID]int `json:"levels"`
}

func NewState(b config.Balance, cat upgrade.Catalog) *State {
	levels := make(map[upgrade.ID]int, len(cat))
	for _, id := range cat.IDs() {
		levels[id] = 0
	}
	return &State{
		Energy:      b.Energy,
		MaxEnergy:   b.MaxEnergy,
		BaseRegen:   b.BaseRegen,
		EventChance: b.EventChance,
		Levels:      levels,
	}
}

// Clone returns a copy that shares nothing with s.
func (s State) Clone() State {
	out := s
	out.Levels = make(map[upgrade.ID]int, len(s.Levels))
	for k, v := range s.Levels {
		out.Levels[k] = v
	}
	return out
}
