package upgrade

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type ID string

const (
	BetterBeans ID = "betterBeans"
	Espresso    ID = "espresso"
	Undergrad   ID = "undergrad"
	Plant       ID = "plant"
)

// Effect is what one purchase does to the state. Deltas only ever add;
// EventChance, when set, can only lower the current chance.
type Effect struct {
	Regen       int
	MaxEnergy   int
	AutoPapers  int
	EventChance *float64
}

type Definition struct {
	ID          ID
	Name        string
	Description string

	BaseCost       int
	CostMultiplier float64

	Effect Effect
}

// Catalog is ordered; the order is the shop display order.
type Catalog []Definition

var maxCost = decimal.NewFromInt(math.MaxInt64)

// Cost returns floor(BaseCost * CostMultiplier^level), saturating at MaxInt64.
func Cost(def Definition, level int) int {
	if level < 0 {
		level = 0
	}
	c := decimal.NewFromFloat(def.CostMultiplier).
		Pow(decimal.NewFromInt(int64(level))).
		Mul(decimal.NewFromInt(int64(def.BaseCost))).
		Floor()
	if c.GreaterThanOrEqual(maxCost) {
		return math.MaxInt64
	}
	return int(c.IntPart())
}

func chance(p float64) *float64 { return &p }

func Default() Catalog {
	return Catalog{
		{
			ID:             BetterBeans,
			Name:           "Better Beans",
			Description:    "+5 Base Regen/Sec",
			BaseCost:       10,
			CostMultiplier: 1.3,
			Effect:         Effect{Regen: 5},
		},
		{
			ID:             Espresso,
			Name:           "Espresso Machine",
			Description:    "+50 Max Energy Cap",
			BaseCost:       50,
			CostMultiplier: 1.2,
			Effect:         Effect{MaxEnergy: 50},
		},
		{
			ID:             Undergrad,
			Name:           "Undergrad Student",
			Description:    "+5 Papers/Sec (Costs 2 Energy/Sec)",
			BaseCost:       25,
			CostMultiplier: 1.4,
			Effect:         Effect{AutoPapers: 5},
		},
		{
			ID:             Plant,
			Name:           "Desk Plant",
			Description:    "Reduces Bad Events & +2 Regen",
			BaseCost:       100,
			CostMultiplier: 2,
			Effect:         Effect{Regen: 2, EventChance: chance(0.05)},
		},
	}
}

func (c Catalog) Lookup(id ID) (Definition, bool) {
	for _, d := range c {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// MustGet panics on an unknown id. Callers at the input boundary must use
// Lookup first; reaching the panic is a wiring bug.
func (c Catalog) MustGet(id ID) Definition {
	d, ok := c.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("upgrade: unknown id %q", id))
	}
	return d
}

func (c Catalog) IDs() []ID {
	out := make([]ID, 0, len(c))
	for _, d := range c {
		out = append(out, d.ID)
	}
	return out
}

func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New("upgrade: empty catalog")
	}
	seen := make(map[ID]bool, len(c))
	for _, d := range c {
		if d.ID == "" {
			return errors.New("upgrade: definition with empty id")
		}
		if seen[d.ID] {
			return fmt.Errorf("upgrade %s: duplicate id", d.ID)
		}
		seen[d.ID] = true

		if d.BaseCost <= 0 {
			return fmt.Errorf("upgrade %s: base cost must be > 0, got %d", d.ID, d.BaseCost)
		}
		if d.CostMultiplier <= 1 {
			return fmt.Errorf("upgrade %s: cost multiplier must be > 1, got %v", d.ID, d.CostMultiplier)
		}
		e := d.Effect
		if e.Regen < 0 || e.MaxEnergy < 0 || e.AutoPapers < 0 {
			return fmt.Errorf("upgrade %s: effect deltas must be non-negative", d.ID)
		}
		if e.EventChance != nil && (*e.EventChance < 0 || *e.EventChance > 1) {
			return fmt.Errorf("upgrade %s: event chance %v outside [0,1]", d.ID, *e.EventChance)
		}
	}
	return nil
}
