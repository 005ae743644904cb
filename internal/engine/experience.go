package engine

import (
	"math"
	"math/rand"

	"github.com/valtyr/warspire/internal/game"
)

// computeExperience awards XP for a battle. Win/loss is decided on the
// scalar OFFENSE vs DEFENSE stats, not the killing/defense pair. Each side's
// per-turn figure blends the inverse power ratio (underdogs learn more) with
// its specialized-unit ratio, jittered ±3%. On top of that an additive
// global bonus — base 1000, plus level-gap and fort-destruction bonuses,
// scaled by turns/10 — is split 75/25 in the winner's favor. The global
// bonus double-counts the win on purpose: it matches the live game's
// behavior and saved records depend on it.
func computeExperience(cat *game.Catalog, rng *rand.Rand, attacker, defender *game.Player, turnsUsed int, fortDestroyed bool) Experience {
	atkStat := GetStat(cat, attacker, game.StatOffense)
	defStat := GetStat(cat, defender, game.StatDefense)
	attackerWon := atkStat > defStat

	atkXP := 120 * math.Min(4, float64(defStat)/math.Max(float64(atkStat), 1))
	defXP := 80 * math.Min(4, float64(atkStat)/math.Max(float64(defStat), 1))
	atkXP *= 1 + 0.3*specializedRatio(attacker, game.UnitOffense)
	defXP *= 1 + 0.3*specializedRatio(defender, game.UnitDefense)
	atkXP *= uniform(rng, 0.97, 1.03)
	defXP *= uniform(rng, 0.97, 1.03)

	bonus := 1000.0
	levelGap := attacker.Level() - defender.Level()
	if levelGap < 0 {
		levelGap = -levelGap
	}
	if levelGap > 5 {
		levelGap = 5
	}
	bonus += float64(levelGap) * 100
	if fortDestroyed {
		bonus += 500
	}
	bonus *= float64(turnsUsed) / 10

	if attackerWon {
		atkXP += 0.75 * bonus
		defXP += 0.25 * bonus
	} else {
		atkXP += 0.25 * bonus
		defXP += 0.75 * bonus
	}
	return Experience{
		Attacker: int64(math.Round(atkXP)),
		Defender: int64(math.Round(defXP)),
	}
}

// specializedRatio is the share of a player's population made up of the
// given unit kind, in [0,1]. Zero population yields 0.
func specializedRatio(p *game.Player, kind game.UnitKind) float64 {
	pop := p.Population()
	if pop == 0 {
		return 0
	}
	r := float64(p.UnitTotal(kind)) / float64(pop)
	if r > 1 {
		r = 1
	}
	return r
}
