package view

import (
	"encoding/json"
	"testing"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_FreshGame(t *testing.T) {
	cat := upgrade.Default()
	s := game.NewState(config.DefaultBalance(), cat)

	m := Render(*s, cat, "", 0)

	assert.Equal(t, 50, m.Energy)
	assert.Equal(t, 100, m.MaxEnergy)
	assert.Equal(t, 5, m.NetEnergyPerTick)
	assert.True(t, m.CanAct)
	assert.False(t, m.Graduated)
	assert.Equal(t, 1000, m.GraduationGoal)
	assert.Empty(t, m.Event)

	require.Len(t, m.Upgrades, 4)
	assert.Equal(t, upgrade.BetterBeans, m.Upgrades[0].ID)
	assert.Equal(t, "Better Beans", m.Upgrades[0].Name)
	assert.Equal(t, 10, m.Upgrades[0].NextCost)
	for _, u := range m.Upgrades {
		assert.False(t, u.Affordable, u.ID)
	}
}

func TestRender_AffordabilityFollowsNextCost(t *testing.T) {
	cat := upgrade.Default()
	s := game.NewState(config.DefaultBalance(), cat)
	s.Papers = 30
	s.Levels[upgrade.BetterBeans] = 2

	m := Render(*s, cat, "Free Pizza!\n+50 Energy", 12)

	byID := map[upgrade.ID]Upgrade{}
	for _, u := range m.Upgrades {
		byID[u.ID] = u
	}
	assert.Equal(t, 16, byID[upgrade.BetterBeans].NextCost)
	assert.Equal(t, 2, byID[upgrade.BetterBeans].Level)
	assert.True(t, byID[upgrade.BetterBeans].Affordable)
	assert.True(t, byID[upgrade.Undergrad].Affordable)
	assert.False(t, byID[upgrade.Espresso].Affordable)
	assert.False(t, byID[upgrade.Plant].Affordable)

	assert.Equal(t, uint64(12), m.Tick)
	assert.Equal(t, "Free Pizza!\n+50 Energy", m.Event)
}

func TestRender_LowEnergyAndGraduation(t *testing.T) {
	cat := upgrade.Default()
	s := game.State{Energy: 1, MaxEnergy: 100, Papers: 1000, BaseRegen: 5, AutoPapers: 5}

	m := Render(s, cat, "", 0)

	assert.False(t, m.CanAct)
	assert.True(t, m.Graduated)
	assert.Equal(t, -5, m.NetEnergyPerTick)
}

func TestRender_DoesNotAliasLevels(t *testing.T) {
	cat := upgrade.Default()
	s := game.NewState(config.DefaultBalance(), cat)

	m := Render(*s, cat, "", 0)
	s.Levels[upgrade.Plant] = 3

	assert.Equal(t, 0, m.Upgrades[3].Level)
}

func TestSchema_DescribesModel(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties: %s", b)
	for _, key := range []string{"energy", "maxEnergy", "papers", "netEnergyPerTick", "autoPapers", "upgrades", "graduated", "event"} {
		assert.Contains(t, props, key)
	}
}
