package engine

import (
	"math"
	"math/rand"

	"github.com/valtyr/warspire/internal/game"
)

// calculateLoot computes the gold pillaged after a battle. The result is the
// defender's gold scaled by a run of factors: a uniform haircut, the number
// of turns spent, the level gap, and a sliding protection for low-level
// defenders. A defender whose fort was already razed before the battle is
// easier to pillage (the 1.05 path). Always within [0, defender gold].
func calculateLoot(rng *rand.Rand, attacker, defender *game.Player, turnsUsed int, fortRazedAtStart bool) int64 {
	if defender.Gold <= 0 {
		return 0
	}
	uniformFactor := uniform(rng, 0.90, 0.99)
	turnFactor := uniform(rng, float64(100+10*turnsUsed), float64(100+20*turnsUsed)) / 371

	levelGap := attacker.Level() - defender.Level()
	if levelGap < 0 {
		levelGap = -levelGap
	}
	if levelGap > 5 {
		levelGap = 5
	}
	levelDifferenceFactor := 1 + math.Min(0.5, float64(levelGap)*0.05)

	loot := float64(defender.Gold) * uniformFactor * turnFactor * levelDifferenceFactor * lootExposure(defender.Level())
	if fortRazedAtStart {
		loot *= 1.05
	}
	out := int64(math.Round(loot))
	if out < 0 {
		out = 0
	}
	if out > defender.Gold {
		out = defender.Gold
	}
	return out
}

// lootExposure protects low-level defenders on a sliding scale: half
// exposure at level 1 rising to 0.75 by level 9, flat through level 10, then
// rising again to full exposure at level 15 and beyond.
func lootExposure(level int) float64 {
	switch {
	case level <= 1:
		return 0.5
	case level <= 9:
		return 0.5 + float64(level-1)*(0.25/8)
	case level <= 10:
		return 0.75
	case level < 15:
		return 0.75 + float64(level-10)*(0.25/5)
	default:
		return 1.0
	}
}
