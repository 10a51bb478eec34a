package engine

import (
	"skirmish/experiments/metrics"
	"skirmish/game"
)

// Outcome describes a battle at the moment it stopped. Score is only
// meaningful when Decided is set.
type Outcome struct {
	Rounds    int
	HitPoints int // summed over all survivors
	Score     int // Rounds * HitPoints
	Decided   bool
	Aborted   bool
	Initial   map[game.Faction]int
	Survivors map[game.Faction]int
	Metric    metrics.GameMetric
}

// Winner returns the only faction with creatures left.
func (o Outcome) Winner() (game.Faction, bool) {
	if !o.Decided {
		return 0, false
	}
	for _, f := range game.Factions {
		if o.Survivors[f] > 0 && o.Survivors[f.Enemy()] == 0 {
			return f, true
		}
	}
	return 0, false
}

func (o Outcome) Losses(f game.Faction) int {
	return o.Initial[f] - o.Survivors[f]
}

// Flawless reports whether the battle ended with f having lost nobody.
func (o Outcome) Flawless(f game.Faction) bool {
	return o.Decided && !o.Aborted && o.Losses(f) == 0
}
