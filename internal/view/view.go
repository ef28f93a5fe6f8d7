// Package view projects game state into what a client draws. Nothing here
// mutates state.
package view

import (
	"encoding/json"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"

	"github.com/invopop/jsonschema"
)

type Model struct {
	Tick uint64 `json:"tick" jsonschema:"description=Ticks applied since the game started"`

	Energy           int `json:"energy"`
	MaxEnergy        int `json:"maxEnergy"`
	Papers           int `json:"papers"`
	NetEnergyPerTick int `json:"netEnergyPerTick"`
	AutoPapers       int `json:"autoPapers"`

	CanAct         bool `json:"canAct" jsonschema:"description=Enough energy for one manual paper"`
	Graduated      bool `json:"graduated"`
	GraduationGoal int  `json:"graduationGoal"`

	Upgrades []Upgrade `json:"upgrades"`

	Event string `json:"event,omitempty" jsonschema:"description=Text of a random event still on display"`
}

type Upgrade struct {
	ID          upgrade.ID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Level       int        `json:"level"`
	NextCost    int        `json:"nextCost"`
	Affordable  bool       `json:"affordable"`
}

func Render(s game.State, cat upgrade.Catalog, event string, tick uint64) Model {
	m := Model{
		Tick:             tick,
		Energy:           s.Energy,
		MaxEnergy:        s.MaxEnergy,
		Papers:           s.Papers,
		NetEnergyPerTick: game.NetEnergyPerTick(&s),
		AutoPapers:       s.AutoPapers,
		CanAct:           s.Energy >= config.ManualPaperCost,
		Graduated:        game.IsGraduated(&s),
		GraduationGoal:   config.GraduationGoal,
		Upgrades:         make([]Upgrade, 0, len(cat)),
		Event:            event,
	}
	for _, def := range cat {
		level := s.Levels[def.ID]
		cost := upgrade.Cost(def, level)
		m.Upgrades = append(m.Upgrades, Upgrade{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Level:       level,
			NextCost:    cost,
			Affordable:  s.Papers >= cost,
		})
	}
	return m
}

// Schema is the JSON Schema of Model, for clients that validate frames.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	return json.MarshalIndent(r.Reflect(&Model{}), "", "  ")
}
