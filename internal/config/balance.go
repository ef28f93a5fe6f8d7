package config

import (
	"fmt"
	"time"
)

const (
	// ManualPaperCost is the energy one manual action spends for one paper.
	ManualPaperCost = 2
	GraduationGoal  = 1000

	TickPeriod        = time.Second
	EventDisplayTicks = 2
)

// EventDisplayDuration is how long a fired event stays visible.
const EventDisplayDuration = EventDisplayTicks * TickPeriod

// Balance holds the starting values of a fresh game.
type Balance struct {
	Energy      int     `yaml:"energy" json:"energy"`
	MaxEnergy   int     `yaml:"max_energy" json:"max_energy"`
	BaseRegen   int     `yaml:"base_regen" json:"base_regen"`
	EventChance float64 `yaml:"event_chance" json:"event_chance"`
}

func DefaultBalance() Balance {
	return Balance{
		Energy:      50,
		MaxEnergy:   100,
		BaseRegen:   5,
		EventChance: 0.15,
	}
}

// ApplyDefaults fills an entirely empty block. A partially filled block is
// taken as written so that zero regen or zero chance stay expressible.
func (b *Balance) ApplyDefaults() {
	if *b == (Balance{}) {
		*b = DefaultBalance()
	}
}

func (b Balance) Validate() error {
	if b.MaxEnergy < 0 {
		return fmt.Errorf("start.max_energy must be >= 0, got %d", b.MaxEnergy)
	}
	if b.Energy < 0 || b.Energy > b.MaxEnergy {
		return fmt.Errorf("start.energy must be within [0, %d], got %d", b.MaxEnergy, b.Energy)
	}
	if b.BaseRegen < 0 {
		return fmt.Errorf("start.base_regen must be >= 0, got %d", b.BaseRegen)
	}
	if b.EventChance < 0 || b.EventChance > 1 {
		return fmt.Errorf("start.event_chance must be within [0, 1], got %v", b.EventChance)
	}
	return nil
}
