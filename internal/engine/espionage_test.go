package engine

import (
	"math/rand"
	"testing"

	"github.com/valtyr/warspire/internal/game"
)

func spymasterFixture() *game.Player {
	return &game.Player{
		Units: []game.UnitHolding{
			unit(game.UnitSpy, 1, 7000),
			unit(game.UnitSpy, 2, 6000),
			unit(game.UnitSpy, 3, 2032),
		},
	}
}

func undefendedTargetFixture() *game.Player {
	return &game.Player{
		Gold:          250000,
		FortLevel:     3,
		FortHitpoints: 100,
		Units: []game.UnitHolding{
			unit(game.UnitCitizen, 1, 50000),
			unit(game.UnitWorker, 1, 30000),
			unit(game.UnitOffense, 1, 20000),
		},
	}
}

func fortressTargetFixture() *game.Player {
	return &game.Player{
		Gold:          250000,
		FortLevel:     10,
		FortHitpoints: 275,
		Units: []game.UnitHolding{
			unit(game.UnitSentry, 1, 1000000),
			unit(game.UnitWorker, 1, 1000000),
		},
		Items: []game.ItemHolding{item(game.ItemWeapon, game.StatSentry, 1, 1000000)},
	}
}

func smallSpyRingFixture() *game.Player {
	return &game.Player{Units: []game.UnitHolding{unit(game.UnitSpy, 1, 1000)}}
}

func TestSpyAmpFactor_Bands(t *testing.T) {
	cases := []struct {
		pop  int
		want float64
	}{
		{1, 0.4 * 0.75},
		{2, 0.4 * 0.95},
		{3, 0.4 * 0.95},
		{5, 0.4 * 1.2},
		{7, 0.4 * 1.35},
		{9, 0.4 * 1.5},
		{10, 0.4 * 1.6},
		{11, 0.4},
		{1000, 0.4},
	}
	for _, c := range cases {
		if got := spyAmpFactor(c.pop); got != c.want {
			t.Fatalf("spyAmpFactor(%d) = %v, want %v", c.pop, got, c.want)
		}
	}
}

func TestSimulateAssassination_AgainstUndefendedTarget(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(7))
	att := spymasterFixture()
	def := undefendedTargetFixture()

	res, err := SimulateAssassination(cat, rng, att, def, 30, TargetOffense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success against a target with no sentries")
	}
	if res.UnitsKilled <= 0 {
		t.Fatalf("expected kills, got %d", res.UnitsKilled)
	}
	if res.SpiesLost > 30 {
		t.Fatalf("lost more spies than were sent: %d", res.SpiesLost)
	}
	if def.UnitTotal(game.UnitOffense) != 20000-res.UnitsKilled {
		t.Fatalf("defender offense not reduced by the kill count")
	}
}

func TestEspionage_OverwhelmedSpiesAreWipedOut(t *testing.T) {
	cat := testCatalog()

	t.Run("intel", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		att := smallSpyRingFixture()
		res, err := SimulateIntel(cat, rng, att, fortressTargetFixture(), 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Fatalf("expected intel to fail against a fortress of sentries")
		}
		if res.SpiesLost < 999 {
			t.Fatalf("expected near-total spy losses, got %d", res.SpiesLost)
		}
		if res.Intelligence != nil {
			t.Fatalf("failed mission must not leak intelligence")
		}
	})

	t.Run("infiltration", func(t *testing.T) {
		rng := rand.New(rand.NewSource(12))
		att := smallSpyRingFixture()
		def := fortressTargetFixture()
		res, err := SimulateInfiltration(cat, rng, att, def, 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success || res.FortDamage != 0 {
			t.Fatalf("expected failed infiltration with no damage, got %+v", res)
		}
		if res.SpiesLost < 999 {
			t.Fatalf("expected near-total spy losses, got %d", res.SpiesLost)
		}
		if def.FortHitpoints != 275 {
			t.Fatalf("fort should be untouched, got %d", def.FortHitpoints)
		}
	})

	t.Run("assassination", func(t *testing.T) {
		rng := rand.New(rand.NewSource(13))
		att := smallSpyRingFixture()
		res, err := SimulateAssassination(cat, rng, att, fortressTargetFixture(), 1000, TargetCivilians)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success || res.UnitsKilled != 0 {
			t.Fatalf("expected failed assassination, got %+v", res)
		}
		if res.SpiesLost < 999 {
			t.Fatalf("expected near-total spy losses, got %d", res.SpiesLost)
		}
	})
}

func TestSimulateIntel_SnapshotScaling(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(21))
	att := spymasterFixture()
	def := undefendedTargetFixture()

	res, err := SimulateIntel(cat, rng, att, def, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Intelligence == nil {
		t.Fatalf("expected successful intel, got %+v", res)
	}
	snap := res.Intelligence
	// No sentries at all: the report caps at the configured maximum.
	if snap.IntelPercentage != cat.Espionage.MaxIntelPercent {
		t.Fatalf("expected intel at cap %d%%, got %d%%", cat.Espionage.MaxIntelPercent, snap.IntelPercentage)
	}
	if snap.Gold <= 0 || snap.Gold > def.Gold {
		t.Fatalf("snapshot gold out of range: %d", snap.Gold)
	}
	for _, u := range snap.Units {
		actual := def.Unit(u.Kind, u.Level)
		if actual == nil || u.Quantity > actual.Quantity {
			t.Fatalf("snapshot stack exceeds reality: %+v", u)
		}
		if u.Quantity <= 0 {
			t.Fatalf("non-empty stack reported as empty: %+v", u)
		}
	}
}

func TestSimulateInfiltration_DamagesFort(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(31))
	att := spymasterFixture()
	def := undefendedTargetFixture()
	before := def.FortHitpoints

	res, err := SimulateInfiltration(cat, rng, att, def, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success against no sentries")
	}
	if res.FortDamage <= 0 {
		t.Fatalf("expected fort damage, got %d", res.FortDamage)
	}
	if def.FortHitpoints != before-res.FortDamage || def.FortHitpoints < 0 {
		t.Fatalf("fort hitpoints inconsistent: %d", def.FortHitpoints)
	}
}

func TestSimulateInfiltration_UnknownFort(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(32))
	def := undefendedTargetFixture()
	def.FortLevel = 42
	if _, err := SimulateInfiltration(cat, rng, spymasterFixture(), def, 10); err != ErrFortificationNotFound {
		t.Fatalf("expected ErrFortificationNotFound, got %v", err)
	}
}

func TestMissionOutcome_NoSpies(t *testing.T) {
	cat := testCatalog()
	rng := rand.New(rand.NewSource(41))
	att := &game.Player{}
	res, err := SimulateIntel(cat, rng, att, undefendedTargetFixture(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success || res.SpiesLost != 0 {
		t.Fatalf("expected neutral failure with no spies, got %+v", res)
	}
}

func TestApplySpyLosses_LowestLevelFirst(t *testing.T) {
	p := spymasterFixture()
	applySpyLosses(p, 7500)
	if p.Unit(game.UnitSpy, 1).Quantity != 0 {
		t.Fatalf("expected level-1 spies burned first, got %d", p.Unit(game.UnitSpy, 1).Quantity)
	}
	if p.Unit(game.UnitSpy, 2).Quantity != 5500 {
		t.Fatalf("expected 5500 level-2 spies left, got %d", p.Unit(game.UnitSpy, 2).Quantity)
	}
	if p.Unit(game.UnitSpy, 3).Quantity != 2032 {
		t.Fatalf("level-3 spies should be untouched, got %d", p.Unit(game.UnitSpy, 3).Quantity)
	}
}
