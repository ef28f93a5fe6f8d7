package main

import (
	"fmt"
	"io"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"
)

type result struct {
	Ticks          int
	GraduatedAt    int // 0 when the goal was never reached
	Clicks         int
	Events         int
	StalledTicks   int
	Purchases      map[upgrade.ID]int
	Final          game.State
	PurchaseOrder  []upgrade.ID
	FinalNetEnergy int
}

// simulate plays a greedy student: each tick it writes up to clicks papers by
// hand, buys the cheapest affordable upgrade until nothing is affordable,
// then lets the tick run.
func simulate(bal config.Balance, cat upgrade.Catalog, rng game.Rand, ticks, clicks int) result {
	s := game.NewState(bal, cat)
	e := game.NewEngine(cat, rng)
	res := result{Purchases: map[upgrade.ID]int{}}

	for t := 1; t <= ticks; t++ {
		for i := 0; i < clicks; i++ {
			ar, err := e.ManualAction(s)
			if err != nil {
				break
			}
			res.Clicks++
			if ar.EventFired {
				res.Events++
			}
		}

		for {
			id, ok := cheapestAffordable(e, s)
			if !ok {
				break
			}
			if err := e.Purchase(s, id); err != nil {
				break
			}
			res.Purchases[id]++
			res.PurchaseOrder = append(res.PurchaseOrder, id)
		}

		if tr := e.Tick(s); tr.Stalled {
			res.StalledTicks++
		}
		res.Ticks = t

		if res.GraduatedAt == 0 && game.IsGraduated(s) {
			res.GraduatedAt = t
			break
		}
	}

	res.Final = s.Clone()
	res.FinalNetEnergy = game.NetEnergyPerTick(s)
	return res
}

func cheapestAffordable(e game.Engine, s *game.State) (upgrade.ID, bool) {
	best := upgrade.ID("")
	bestCost := 0
	for _, d := range e.Catalog {
		c := e.NextCost(s, d.ID)
		if c > s.Papers {
			continue
		}
		if best == "" || c < bestCost {
			best, bestCost = d.ID, c
		}
	}
	return best, best != ""
}

func printResult(out io.Writer, r result) {
	if r.GraduatedAt > 0 {
		fmt.Fprintf(out, "graduated at tick %d\n", r.GraduatedAt)
	} else {
		fmt.Fprintf(out, "not graduated after %d ticks\n", r.Ticks)
	}
	fmt.Fprintf(out, "papers=%d energy=%d/%d regen=%d auto=%d net=%+d\n",
		r.Final.Papers, r.Final.Energy, r.Final.MaxEnergy, r.Final.BaseRegen, r.Final.AutoPapers, r.FinalNetEnergy)
	fmt.Fprintf(out, "clicks=%d events=%d stalled_ticks=%d purchases=%d\n",
		r.Clicks, r.Events, r.StalledTicks, len(r.PurchaseOrder))
	for _, id := range []upgrade.ID{upgrade.BetterBeans, upgrade.Espresso, upgrade.Undergrad, upgrade.Plant} {
		fmt.Fprintf(out, "  %-12s lvl %d\n", id, r.Final.Levels[id])
	}
}
