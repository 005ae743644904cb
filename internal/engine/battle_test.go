package engine

import (
	"math/rand"
	"testing"

	"github.com/valtyr/warspire/internal/game"
)

func attackerFixture(offense int) *game.Player {
	return &game.Player{
		Gold:          10000,
		FortLevel:     1,
		FortHitpoints: 50,
		Units: []game.UnitHolding{
			unit(game.UnitOffense, 1, offense),
			unit(game.UnitCitizen, 1, offense),
		},
		Items: []game.ItemHolding{item(game.ItemWeapon, game.StatOffense, 1, offense)},
	}
}

func defenderFixture(defense int) *game.Player {
	return &game.Player{
		Gold:          50000,
		FortLevel:     1,
		FortHitpoints: 50,
		Units: []game.UnitHolding{
			unit(game.UnitDefense, 1, defense),
			unit(game.UnitCitizen, 1, defense),
			unit(game.UnitWorker, 1, defense/2),
		},
	}
}

func TestSimulateBattle_UnknownFort(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(1))
	def := defenderFixture(100)
	def.FortLevel = 99
	if _, err := SimulateBattle(cat, rng, attackerFixture(100), def, 5); err != ErrFortificationNotFound {
		t.Fatalf("expected ErrFortificationNotFound, got %v", err)
	}
}

func TestSimulateBattle_TurnsClamped(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(2))
	res, err := SimulateBattle(cat, rng, attackerFixture(1000), defenderFixture(1000), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TurnsTaken > 10 {
		t.Fatalf("expected at most 10 turns, got %d", res.TurnsTaken)
	}
	if len(res.Turns) != res.TurnsTaken {
		t.Fatalf("expected %d snapshots, got %d", res.TurnsTaken, len(res.Turns))
	}
}

func TestSimulateBattle_Invariants(t *testing.T) {
	cat := testCatalog()
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		att := attackerFixture(2000)
		def := defenderFixture(1500)
		attPop := att.Population()
		defPop := def.Population()
		defGold := def.Gold

		res, err := SimulateBattle(cat, rng, att, def, 10)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if res.Losses.Attacker.Total > attPop || res.Losses.Defender.Total > defPop {
			t.Fatalf("seed %d: losses exceed populations: %d/%d vs %d/%d",
				seed, res.Losses.Attacker.Total, attPop, res.Losses.Defender.Total, defPop)
		}
		if def.FortHitpoints < 0 {
			t.Fatalf("seed %d: fort hitpoints went negative: %d", seed, def.FortHitpoints)
		}
		if res.PillagedGold < 0 || res.PillagedGold > defGold {
			t.Fatalf("seed %d: pillaged gold out of range: %d", seed, res.PillagedGold)
		}
		if def.Gold < 0 {
			t.Fatalf("seed %d: defender gold went negative: %d", seed, def.Gold)
		}
		for _, u := range def.Units {
			if u.Quantity < 0 {
				t.Fatalf("seed %d: defender stack went negative: %+v", seed, u)
			}
		}
		for _, u := range att.Units {
			if u.Quantity < 0 {
				t.Fatalf("seed %d: attacker stack went negative: %+v", seed, u)
			}
		}
		if res.Experience.Attacker <= 0 || res.Experience.Defender <= 0 {
			t.Fatalf("seed %d: expected positive experience, got %+v", seed, res.Experience)
		}
	}
}

func TestSimulateBattle_NoOffenseEndsEarly(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(3))
	att := &game.Player{FortLevel: 1, Units: []game.UnitHolding{unit(game.UnitCitizen, 1, 100)}}
	def := defenderFixture(100)
	res, err := SimulateBattle(cat, rng, att, def, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TurnsTaken != 0 || res.PillagedGold != 0 {
		t.Fatalf("expected no turns and no loot, got turns=%d loot=%d", res.TurnsTaken, res.PillagedGold)
	}
}

func TestSimulateBattle_RazedFortPillagePath(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(4))
	att := attackerFixture(2000)
	def := defenderFixture(200)
	def.FortHitpoints = 0
	res, err := SimulateBattle(cat, rng, att, def, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.FortHitpoints != 0 {
		t.Fatalf("razed fort should stay at 0, got %d", def.FortHitpoints)
	}
	if res.FortDamage != 0 {
		t.Fatalf("no fort damage possible on a razed fort, got %d", res.FortDamage)
	}
	if res.PillagedGold <= 0 {
		t.Fatalf("expected loot against a razed fort, got %d", res.PillagedGold)
	}
}

func TestAmpFactor_StepTable(t *testing.T) {
	cases := []struct {
		pop  int
		want float64
	}{
		{500, 0.4 * 1.6},
		{1000, 0.4 * 1.6},
		{1001, 0.4 * 1.5},
		{5000, 0.4 * 1.5},
		{10000, 0.4 * 1.35},
		{50000, 0.4 * 1.2},
		{100000, 0.4 * 0.95},
		{150000, 0.4 * 0.75},
		{150001, 0.4},
	}
	for _, c := range cases {
		if got := ampFactor(c.pop); got != c.want {
			t.Fatalf("ampFactor(%d) = %v, want %v", c.pop, got, c.want)
		}
	}
	// Monotone non-increasing up to the 150k cliff.
	prev := ampFactor(1)
	for _, pop := range []int{1000, 2000, 8000, 30000, 90000, 140000} {
		cur := ampFactor(pop)
		if cur > prev {
			t.Fatalf("ampFactor not monotone at pop %d: %v > %v", pop, cur, prev)
		}
		prev = cur
	}
}

func TestCapCasualties(t *testing.T) {
	// Below the rout threshold the cap is 5% of the population.
	if got := capCasualties(30, 1000); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := capCasualties(70, 1000); got != 50 {
		t.Fatalf("expected 5%% cap of 50, got %d", got)
	}
	// A rout may take the whole force but never more.
	if got := capCasualties(900, 1000); got != 900 {
		t.Fatalf("expected rout to stand at 900, got %d", got)
	}
	if got := capCasualties(5000, 1000); got != 1000 {
		t.Fatalf("expected full-population cap, got %d", got)
	}
	if got := capCasualties(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty population, got %d", got)
	}
}

func TestFortDamage_Tiers(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		if d := fortDamage(rng, 0.01); d < 0 || d > 1 {
			t.Fatalf("tier 1 damage out of range: %d", d)
		}
		if d := fortDamage(rng, 0.3); d < 0 || d > 3 {
			t.Fatalf("tier 2 damage out of range: %d", d)
		}
		if d := fortDamage(rng, 1.0); d < 3 || d > 8 {
			t.Fatalf("tier 3 damage out of range: %d", d)
		}
		if d := fortDamage(rng, 4.0); d < 6 || d > 12 {
			t.Fatalf("tier 4 damage out of range: %d", d)
		}
	}
}

func TestLootExposure_Curve(t *testing.T) {
	if got := lootExposure(1); got != 0.5 {
		t.Fatalf("level 1 exposure = %v, want 0.5", got)
	}
	if got := lootExposure(9); got != 0.75 {
		t.Fatalf("level 9 exposure = %v, want 0.75", got)
	}
	if got := lootExposure(10); got != 0.75 {
		t.Fatalf("level 10 exposure = %v, want 0.75", got)
	}
	if got := lootExposure(15); got != 1.0 {
		t.Fatalf("level 15 exposure = %v, want 1.0", got)
	}
	if got := lootExposure(30); got != 1.0 {
		t.Fatalf("level 30 exposure = %v, want 1.0", got)
	}
	prev := 0.0
	for lvl := 1; lvl <= 20; lvl++ {
		cur := lootExposure(lvl)
		if cur < prev {
			t.Fatalf("exposure decreased at level %d: %v < %v", lvl, cur, prev)
		}
		prev = cur
	}
}

func TestDistributeCasualties_NeverOverdraws(t *testing.T) {
	p := &game.Player{Units: []game.UnitHolding{
		unit(game.UnitDefense, 1, 10),
		unit(game.UnitDefense, 2, 5),
	}}
	losses := distributeCasualties(p, []game.UnitKind{game.UnitDefense}, 100)
	total := 0
	for _, l := range losses {
		total += l.Quantity
	}
	if total != 15 {
		t.Fatalf("expected the whole pool of 15 removed, got %d", total)
	}
	for _, u := range p.Units {
		if u.Quantity != 0 {
			t.Fatalf("expected empty stacks, got %+v", u)
		}
	}
}

func TestDistributeCasualties_Proportional(t *testing.T) {
	p := &game.Player{Units: []game.UnitHolding{
		unit(game.UnitDefense, 1, 90),
		unit(game.UnitDefense, 2, 10),
	}}
	distributeCasualties(p, []game.UnitKind{game.UnitDefense}, 10)
	if got := p.UnitTotal(game.UnitDefense); got != 90 {
		t.Fatalf("expected 90 survivors, got %d", got)
	}
	// The big stack should absorb most of the losses.
	if p.Unit(game.UnitDefense, 1).Quantity < 80 {
		t.Fatalf("expected level-1 stack to carry the bulk, got %d", p.Unit(game.UnitDefense, 1).Quantity)
	}
}
