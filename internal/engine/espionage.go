package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/valtyr/warspire/internal/game"
)

// IntelResult is what a reconnaissance mission returns.
type IntelResult struct {
	Success      bool                 `json:"success"`
	SpiesLost    int                  `json:"spies_lost"`
	Intelligence *game.PlayerSnapshot `json:"intelligence,omitempty"`
}

// InfiltrationResult is what a fort sabotage mission returns.
type InfiltrationResult struct {
	Success    bool `json:"success"`
	SpiesLost  int  `json:"spies_lost"`
	FortDamage int  `json:"fort_damage"`
}

// AssassinationResult is what a targeted kill mission returns.
type AssassinationResult struct {
	Success     bool       `json:"success"`
	SpiesLost   int        `json:"spies_lost"`
	UnitsKilled int        `json:"units_killed"`
	Losses      []UnitLoss `json:"losses,omitempty"`
}

// AssassinationTarget selects which defender stacks an assassination hits.
type AssassinationTarget string

const (
	TargetOffense   AssassinationTarget = "OFFENSE"
	TargetDefense   AssassinationTarget = "DEFENSE"
	TargetCivilians AssassinationTarget = "CITIZEN_WORKERS"
)

// SpyStrength is the level-1 fast path: level-1 spies plus level-1 spy
// weapons, each capped at the number of spies sent.
func SpyStrength(cat *game.Catalog, p *game.Player, spiesSent int) (ks, ds float64) {
	return ClandestineStrength(cat, p, game.StatSpy, spiesSent, 1)
}

// SentryStrength mirrors SpyStrength for the defending sentries.
func SentryStrength(cat *game.Catalog, p *game.Player, spiesSent int) (ks, ds float64) {
	return ClandestineStrength(cat, p, game.StatSentry, spiesSent, 1)
}

// ClandestineStrength is the spy-scale strength query: the full catalog
// killing/defense model restricted to at most unitsSent units, optionally to
// a single unit level (assassinations target one defender tier).
func ClandestineStrength(cat *game.Catalog, p *game.Player, category game.StatCategory, unitsSent, levelFilter int) (ks, ds float64) {
	return CombatStrength(cat, p, category, false, unitsSent, levelFilter)
}

// spyAmpFactor is the espionage counterpart of ampFactor. Spy missions work
// on headcounts of tens, so the population bands are much finer.
func spyAmpFactor(targetPop int) float64 {
	const base = 0.4
	switch {
	case targetPop <= 1:
		return base * 0.75
	case targetPop <= 3:
		return base * 0.95
	case targetPop <= 5:
		return base * 1.2
	case targetPop <= 7:
		return base * 1.35
	case targetPop <= 9:
		return base * 1.5
	case targetPop <= 10:
		return base * 1.6
	default:
		return base
	}
}

// computeSpyCasualties mirrors the battle casualty formula at spy scale: a
// plain uniform draw replaces the bucketed base-rate table and the result is
// scaled a thousandfold, since the populations involved are tiny.
func computeSpyCasualties(rng *rand.Rand, ratio float64, targetPop int, ratioCap float64) int {
	if targetPop <= 0 || ratio <= 0 {
		return 0
	}
	if ratioCap > 0 && ratio > ratioCap {
		ratio = ratioCap
	}
	rate := rng.Float64() * 0.0018 * 1000
	n := int(math.Round(rate * spyAmpFactor(targetPop) * ratio * float64(targetPop)))
	if n > targetPop {
		n = targetPop
	}
	return n
}

// missionOutcome resolves the shared success/loss core of every spy mission:
// clamp the spies actually sent, compare spy killing strength against the
// defender's full sentry line, and on failure lose spies with severity
// scaling toward a wipe as the sentries dominate.
func missionOutcome(cat *game.Catalog, rng *rand.Rand, attacker, defender *game.Player, spiesSent int) (sent int, success bool, atkKS, defDS float64, spiesLost int) {
	sent = min(spiesSent, attacker.UnitTotal(game.UnitSpy))
	if sent <= 0 {
		return 0, false, 0, 0, 0
	}
	atkKS, _ = ClandestineStrength(cat, attacker, game.StatSpy, sent, 0)
	_, defDS = CombatStrength(cat, defender, game.StatSentry, false, 0, 0)
	success = atkKS > defDS*cat.Espionage.SuccessThreshold

	if !success {
		severity := 1.0
		if atkKS+defDS > 0 {
			severity = defDS / (atkKS + defDS)
		}
		spiesLost = int(math.Ceil(float64(sent) * severity))
		if spiesLost > sent {
			spiesLost = sent
		}
	} else if sent > 1 {
		// Even successful missions can cost a scout or two.
		counter := defDS / math.Max(atkKS, 1)
		spiesLost = min(sent-1, computeSpyCasualties(rng, counter, sent, cat.Espionage.AssassinationRatioCap))
	}
	return sent, success, atkKS, defDS, spiesLost
}

// SimulateIntel runs a reconnaissance mission. On success it returns a
// fractional snapshot of the defender's state, scaled by how thoroughly the
// spies outmatched the sentries.
func SimulateIntel(cat *game.Catalog, rng *rand.Rand, attacker, defender *game.Player, spiesSent int) (*IntelResult, error) {
	_, success, atkKS, defDS, lost := missionOutcome(cat, rng, attacker, defender, spiesSent)
	applySpyLosses(attacker, lost)
	res := &IntelResult{Success: success, SpiesLost: lost}
	if !success {
		return res, nil
	}

	pct := 100
	if atkKS+defDS > 0 {
		pct = int(math.Round(100 * atkKS / (atkKS + defDS)))
	}
	if limit := cat.Espionage.MaxIntelPercent; limit > 0 && pct > limit {
		pct = limit
	}
	res.Intelligence = snapshotPlayer(defender, pct)
	return res, nil
}

// SimulateInfiltration runs a fort sabotage mission: on success the fort
// takes damage proportional to how far the spies outclassed the sentries.
func SimulateInfiltration(cat *game.Catalog, rng *rand.Rand, attacker, defender *game.Player, spiesSent int) (*InfiltrationResult, error) {
	if _, ok := cat.Fortification(defender.FortLevel); !ok {
		return nil, ErrFortificationNotFound
	}
	_, success, atkKS, defDS, lost := missionOutcome(cat, rng, attacker, defender, spiesSent)
	applySpyLosses(attacker, lost)
	res := &InfiltrationResult{Success: success, SpiesLost: lost}
	if !success || defender.FortHitpoints <= 0 {
		return res, nil
	}

	ratio := atkKS / math.Max(defDS, 1)
	if limit := cat.Espionage.InfiltrationRatioCap; limit > 0 && ratio > limit {
		ratio = limit
	}
	dmg := int(math.Round(uniform(rng, 6, 12) * ratio * spyAmpFactor(defender.UnitTotal(game.UnitSentry))))
	if dmg < 1 {
		dmg = 1
	}
	if dmg > defender.FortHitpoints {
		dmg = defender.FortHitpoints
	}
	defender.FortHitpoints -= dmg
	res.FortDamage = dmg
	return res, nil
}

// SimulateAssassination runs a targeted kill mission against one category of
// defender units. A successful strike always claims at least one target.
func SimulateAssassination(cat *game.Catalog, rng *rand.Rand, attacker, defender *game.Player, spiesSent int, target AssassinationTarget) (*AssassinationResult, error) {
	sent, success, atkKS, defDS, lost := missionOutcome(cat, rng, attacker, defender, spiesSent)
	applySpyLosses(attacker, lost)
	res := &AssassinationResult{Success: success, SpiesLost: lost}
	if !success || sent == 0 {
		return res, nil
	}

	kinds := targetKinds(target)
	targetPop := defender.UnitTotal(kinds...)
	if targetPop == 0 {
		return res, nil
	}
	ratio := atkKS / math.Max(defDS, 1)
	killed := computeSpyCasualties(rng, ratio, targetPop, cat.Espionage.AssassinationRatioCap)
	if killed < 1 {
		killed = 1
	}
	res.Losses = distributeCasualties(defender, kinds, killed)
	for _, l := range res.Losses {
		res.UnitsKilled += l.Quantity
	}
	return res, nil
}

func targetKinds(target AssassinationTarget) []game.UnitKind {
	switch target {
	case TargetOffense:
		return []game.UnitKind{game.UnitOffense}
	case TargetDefense:
		return []game.UnitKind{game.UnitDefense}
	default:
		return []game.UnitKind{game.UnitCitizen, game.UnitWorker}
	}
}

// applySpyLosses removes lost spies from the attacker's stacks, lowest level
// first: green operatives are burned before veterans.
func applySpyLosses(attacker *game.Player, lost int) {
	var stacks []*game.UnitHolding
	for i := range attacker.Units {
		u := &attacker.Units[i]
		if u.Kind == game.UnitSpy && u.Quantity > 0 {
			stacks = append(stacks, u)
		}
	}
	sort.Slice(stacks, func(i, j int) bool { return stacks[i].Level < stacks[j].Level })
	for _, u := range stacks {
		if lost == 0 {
			break
		}
		n := min(lost, u.Quantity)
		u.Quantity -= n
		lost -= n
	}
}

// snapshotPlayer builds the fractional intel copy: every numeric quantity is
// scaled by the intelligence percentage, rounded up so even thin intel shows
// something for non-empty holdings.
func snapshotPlayer(p *game.Player, pct int) *game.PlayerSnapshot {
	scale := func(v int) int {
		if v <= 0 {
			return 0
		}
		return int(math.Ceil(float64(v) * float64(pct) / 100))
	}
	snap := &game.PlayerSnapshot{
		PlayerID:        p.ID,
		IntelPercentage: pct,
		Gold:            int64(math.Ceil(float64(p.Gold) * float64(pct) / 100)),
		FortLevel:       p.FortLevel,
		FortHitpoints:   scale(p.FortHitpoints),
	}
	for _, u := range p.Units {
		if u.Quantity <= 0 {
			continue
		}
		snap.Units = append(snap.Units, game.UnitHolding{Kind: u.Kind, Level: u.Level, Quantity: scale(u.Quantity)})
	}
	for _, it := range p.Items {
		if it.Quantity <= 0 {
			continue
		}
		snap.Items = append(snap.Items, game.ItemHolding{Kind: it.Kind, Usage: it.Usage, Level: it.Level, Quantity: scale(it.Quantity)})
	}
	return snap
}
