package engine

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/valtyr/warspire/internal/game"
)

// ErrFortificationNotFound is returned when the defender's fort level has no
// catalog row. The battle aborts before any state is touched.
var ErrFortificationNotFound = errors.New("fortification not found")

const maxBattleTurns = 10

// UnitLoss records casualties in one unit stack.
type UnitLoss struct {
	Kind     game.UnitKind `json:"kind"`
	Level    int           `json:"level"`
	Quantity int           `json:"quantity"`
}

// SideLosses accumulates one side's casualties over a whole battle.
type SideLosses struct {
	Total int        `json:"total"`
	Units []UnitLoss `json:"units"`
}

func (s *SideLosses) add(losses []UnitLoss) {
	for _, l := range losses {
		s.Total += l.Quantity
		merged := false
		for i := range s.Units {
			if s.Units[i].Kind == l.Kind && s.Units[i].Level == l.Level {
				s.Units[i].Quantity += l.Quantity
				merged = true
				break
			}
		}
		if !merged {
			s.Units = append(s.Units, l)
		}
	}
}

// TurnSnapshot is the per-turn strength record kept in the battle result.
type TurnSnapshot struct {
	Turn       int     `json:"turn"`
	AttackerKS float64 `json:"attacker_ks"`
	AttackerDS float64 `json:"attacker_ds"`
	DefenderKS float64 `json:"defender_ks"`
	DefenderDS float64 `json:"defender_ds"`
}

// Experience is the XP awarded to each side by a battle.
type Experience struct {
	Attacker int64 `json:"attacker"`
	Defender int64 `json:"defender"`
}

// BattleResult is the accumulator a battle builds up and returns.
type BattleResult struct {
	TurnsTaken    int            `json:"turns_taken"`
	FortHitpoints int            `json:"fort_hitpoints"`
	FortDamage    int            `json:"fort_damage"`
	PillagedGold  int64          `json:"pillaged_gold"`
	Losses        BattleLosses   `json:"losses"`
	Experience    Experience     `json:"experience"`
	Turns         []TurnSnapshot `json:"turns"`
}

// BattleLosses pairs the two sides' casualty totals.
type BattleLosses struct {
	Attacker SideLosses `json:"attacker"`
	Defender SideLosses `json:"defender"`
}

// SimulateBattle resolves a multi-turn attack. It mutates both players in
// memory (units, fort hitpoints, gold, experience) and returns the result;
// committing the new state is the caller's job. Turns outside [1,10] are
// clamped; the loop exits early once the attacker has no offense units left.
func SimulateBattle(cat *game.Catalog, rng *rand.Rand, attacker, defender *game.Player, turns int) (*BattleResult, error) {
	if _, ok := cat.Fortification(defender.FortLevel); !ok {
		return nil, ErrFortificationNotFound
	}
	if turns < 1 {
		turns = 1
	}
	if turns > maxBattleTurns {
		turns = maxBattleTurns
	}

	fortRazedAtStart := defender.FortHitpoints == 0
	res := &BattleResult{}

	for turn := 1; turn <= turns; turn++ {
		attackPop := attacker.UnitTotal(game.UnitOffense)
		if attackPop == 0 {
			break
		}
		res.TurnsTaken = turn

		defProp := defender.DefenseProportion()
		militia := defProp < militiaThreshold

		atkKS, atkDS := CombatStrength(cat, attacker, game.StatOffense, false, 0, 0)
		defKS, defDS := CombatStrength(cat, defender, game.StatDefense, militia, 0, 0)

		defUnits := defender.UnitTotal(game.UnitDefense)
		targetPop := defUnits
		if militia {
			civilians := defender.UnitTotal(game.UnitCitizen, game.UnitWorker)
			if withMilitia := defUnits + int(0.25*float64(civilians)); withMilitia > targetPop {
				targetPop = withMilitia
			}
		}

		counterRatio := defKS / math.Max(atkDS, 1)
		offenseRatio := atkKS / math.Max(defDS, 1)
		amp := ampFactor(targetPop)

		fortMult := 1.0
		if defDS == 0 && defender.FortHitpoints > 0 {
			fortMult = 1.5
		}

		defCas := computeCasualties(rng, offenseRatio, amp, targetPop, fortMult)
		if defProp <= militiaThreshold && defProp > 0 {
			defCas = int(math.Round(float64(defCas) * 1.5))
		}
		defCas = capCasualties(defCas, targetPop)
		atkCas := capCasualties(computeCasualties(rng, counterRatio, amp, attackPop, 1.0), attackPop)

		if defender.FortHitpoints > 0 {
			dmg := fortDamage(rng, atkKS/math.Max(defDS, 1))
			if dmg > defender.FortHitpoints {
				dmg = defender.FortHitpoints
			}
			defender.FortHitpoints -= dmg
			res.FortDamage += dmg
		}

		defKinds := []game.UnitKind{game.UnitDefense}
		if defender.FortHitpoints == 0 && defProp < militiaThreshold {
			defKinds = []game.UnitKind{game.UnitDefense, game.UnitCitizen, game.UnitWorker}
		}
		res.Losses.Defender.add(distributeCasualties(defender, defKinds, defCas))
		res.Losses.Attacker.add(distributeCasualties(attacker, []game.UnitKind{game.UnitOffense}, atkCas))

		res.Turns = append(res.Turns, TurnSnapshot{
			Turn:       turn,
			AttackerKS: atkKS,
			AttackerDS: atkDS,
			DefenderKS: defKS,
			DefenderDS: defDS,
		})
	}

	res.FortHitpoints = defender.FortHitpoints

	if res.TurnsTaken > 0 {
		loot := calculateLoot(rng, attacker, defender, res.TurnsTaken, fortRazedAtStart)
		defender.Gold -= loot
		attacker.Gold += loot
		res.PillagedGold = loot

		fortDestroyed := !fortRazedAtStart && defender.FortHitpoints == 0
		res.Experience = computeExperience(cat, rng, attacker, defender, res.TurnsTaken, fortDestroyed)
		attacker.Experience += res.Experience.Attacker
		defender.Experience += res.Experience.Defender
	}
	return res, nil
}

// ampFactor dampens casualties against larger defended populations: a step
// multiplier over the 0.4 base rate, shrinking as the target population
// grows, reverting to the bare base beyond 150k.
func ampFactor(targetPop int) float64 {
	const base = 0.4
	switch {
	case targetPop <= 1000:
		return base * 1.6
	case targetPop <= 5000:
		return base * 1.5
	case targetPop <= 10000:
		return base * 1.35
	case targetPop <= 50000:
		return base * 1.2
	case targetPop <= 100000:
		return base * 0.95
	case targetPop <= 150000:
		return base * 0.75
	default:
		return base
	}
}

// casualtyBaseRate maps a strength ratio through the bucketed randomized
// base-rate table. Stronger dominance draws from higher buckets.
func casualtyBaseRate(rng *rand.Rand, ratio float64) float64 {
	switch {
	case ratio >= 5:
		return uniform(rng, 0.0015, 0.0018)
	case ratio >= 4:
		return uniform(rng, 0.0012, 0.0015)
	case ratio >= 3:
		return uniform(rng, 0.0009, 0.0012)
	case ratio >= 2:
		return uniform(rng, 0.0006, 0.0009)
	case ratio >= 1:
		return uniform(rng, 0.0004, 0.0006)
	case ratio >= 0.5:
		return uniform(rng, 0.0002, 0.0004)
	default:
		return uniform(rng, 0.0001, 0.0002)
	}
}

func computeCasualties(rng *rand.Rand, ratio, amp float64, pop int, fortMult float64) int {
	if pop <= 0 || ratio <= 0 {
		return 0
	}
	rate := casualtyBaseRate(rng, ratio)
	return int(math.Round(rate * amp * ratio * float64(pop) * fortMult))
}

// capCasualties bounds a turn's casualties: a rout (raw figure above 75% of
// the population) may wipe the whole force, anything less loses at most 5%.
func capCasualties(raw, pop int) int {
	if raw <= 0 || pop <= 0 {
		return 0
	}
	if raw > pop*3/4 {
		return min(raw, pop)
	}
	return min(raw, pop/20)
}

// fortDamage draws this turn's fortification damage from a 4-tier table
// keyed by the attacker's killing strength over the defender's defense.
func fortDamage(rng *rand.Rand, ratio float64) int {
	switch {
	case ratio <= 0.05:
		return uniformInt(rng, 0, 1)
	case ratio <= 0.5:
		return uniformInt(rng, 0, 3)
	case ratio <= 1.3:
		return uniformInt(rng, 3, 8)
	default:
		return uniformInt(rng, 6, 12)
	}
}

// distributeCasualties spreads losses across a player's stacks of the given
// kinds, highest level first, proportionally to stack size. No stack ever
// goes below zero; if the losses exceed the pooled quantity the pool is
// wiped. The player's holdings are mutated and the apportionment returned.
func distributeCasualties(p *game.Player, kinds []game.UnitKind, losses int) []UnitLoss {
	if losses <= 0 {
		return nil
	}
	var stacks []*game.UnitHolding
	total := 0
	for i := range p.Units {
		u := &p.Units[i]
		for _, k := range kinds {
			if u.Kind == k && u.Quantity > 0 {
				stacks = append(stacks, u)
				total += u.Quantity
				break
			}
		}
	}
	if total == 0 {
		return nil
	}
	sort.Slice(stacks, func(i, j int) bool { return stacks[i].Level > stacks[j].Level })
	if losses > total {
		losses = total
	}

	out := make([]UnitLoss, 0, len(stacks))
	assigned := 0
	shares := make([]int, len(stacks))
	for i, s := range stacks {
		share := losses * s.Quantity / total
		shares[i] = share
		assigned += share
	}
	// Hand out the rounding remainder one unit at a time, front line first.
	for rem := losses - assigned; rem > 0; {
		progressed := false
		for i, s := range stacks {
			if rem == 0 {
				break
			}
			if shares[i] < s.Quantity {
				shares[i]++
				rem--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	for i, s := range stacks {
		if shares[i] == 0 {
			continue
		}
		s.Quantity -= shares[i]
		out = append(out, UnitLoss{Kind: s.Kind, Level: s.Level, Quantity: shares[i]})
	}
	return out
}
