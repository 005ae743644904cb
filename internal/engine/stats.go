package engine

import (
	"math"
	"sort"

	"github.com/valtyr/warspire/internal/game"
)

// militiaThreshold is the defense proportion below which civilians are
// pressed into the defense (militia fallback) and defender casualties are
// penalized.
const militiaThreshold = 0.25

// militiaKinds are the unit kinds that fight as militia when a defender's
// dedicated defense is too thin.
var militiaKinds = []game.UnitKind{game.UnitCitizen, game.UnitWorker, game.UnitSentry, game.UnitSpy}

// unitStack is one (kind, level) bucket selected for a strength pass.
type unitStack struct {
	kind     game.UnitKind
	level    int
	quantity int
}

func unitKindFor(category game.StatCategory) game.UnitKind {
	switch category {
	case game.StatOffense:
		return game.UnitOffense
	case game.StatDefense:
		return game.UnitDefense
	case game.StatSpy:
		return game.UnitSpy
	default:
		return game.UnitSentry
	}
}

// selectStacks picks the player's units of the category, highest level first.
// levelFilter restricts to a single unit level; maxUnits caps the cumulative
// quantity counted (both are espionage-scale options, 0 disables them).
func selectStacks(p *game.Player, category game.StatCategory, maxUnits, levelFilter int) []unitStack {
	kind := unitKindFor(category)
	stacks := make([]unitStack, 0, 4)
	for i := range p.Units {
		u := &p.Units[i]
		if u.Kind != kind || u.Quantity <= 0 {
			continue
		}
		if levelFilter > 0 && u.Level != levelFilter {
			continue
		}
		stacks = append(stacks, unitStack{kind: u.Kind, level: u.Level, quantity: u.Quantity})
	}
	sort.Slice(stacks, func(i, j int) bool { return stacks[i].level > stacks[j].level })
	if maxUnits > 0 {
		remaining := maxUnits
		for i := range stacks {
			if stacks[i].quantity > remaining {
				stacks[i].quantity = remaining
			}
			remaining -= stacks[i].quantity
		}
	}
	return stacks
}

// itemsForSlot returns the player's items of one equipment slot and usage,
// highest level first.
func itemsForSlot(p *game.Player, slot game.ItemKind, usage game.StatCategory) []game.ItemHolding {
	items := make([]game.ItemHolding, 0, 4)
	for i := range p.Items {
		it := &p.Items[i]
		if it.Kind == slot && it.Usage == usage && it.Quantity > 0 {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Level > items[j].Level })
	return items
}

// upgradesFor returns the player's battle upgrades of one category, highest
// level first.
func upgradesFor(p *game.Player, category game.StatCategory) []game.BattleUpgradeHolding {
	ups := make([]game.BattleUpgradeHolding, 0, 2)
	for i := range p.BattleUpgrades {
		b := &p.BattleUpgrades[i]
		if b.Category == category && b.Quantity > 0 {
			ups = append(ups, *b)
		}
	}
	sort.Slice(ups, func(i, j int) bool { return ups[i].Level > ups[j].Level })
	return ups
}

// GetStat computes the scalar stat for one category: unit bonuses, one item
// bonus per slot per unit, squad upgrade coverage, then the percentage
// multiplier. Missing catalog rows, empty armies and zero denominators all
// yield 0 — a stat query never fails.
func GetStat(cat *game.Catalog, p *game.Player, category game.StatCategory) int {
	stacks := selectStacks(p, category, 0, 0)
	total := 0.0
	for _, s := range stacks {
		if ut, ok := cat.UnitType(s.kind, s.level); ok {
			total += float64(ut.Bonus) * float64(s.quantity)
		}
	}
	for _, slot := range game.ItemKinds {
		total += itemSlotPass(cat, p, slot, category, stacks, func(t game.ItemType, n int) float64 {
			return float64(t.Bonus) * float64(n)
		})
	}
	total += upgradePass(cat, p, category, stacks, func(t game.BattleUpgradeType, n int) float64 {
		return float64(t.Bonus) * float64(n)
	})
	if total <= 0 {
		return 0
	}
	pct := bonusPercent(cat, p, category)
	return int(math.Ceil(total * (1 + pct/100)))
}

// CombatStrength mirrors GetStat's unit/item/upgrade passes but tracks the
// killing/defense strength pair instead of the scalar bonus, and skips the
// percentage multiplier. includeCivilians enables the militia fallback for a
// thinly defended population. spiesSent and levelFilter restrict the counted
// units for espionage-scale queries.
func CombatStrength(cat *game.Catalog, p *game.Player, category game.StatCategory, includeCivilians bool, spiesSent, levelFilter int) (ks, ds float64) {
	stacks := selectStacks(p, category, spiesSent, levelFilter)
	for _, s := range stacks {
		if ut, ok := cat.UnitType(s.kind, s.level); ok {
			ks += ut.KillingStrength * float64(s.quantity)
			ds += ut.DefenseStrength * float64(s.quantity)
		}
	}
	for _, slot := range game.ItemKinds {
		ks += itemSlotPass(cat, p, slot, category, stacks, func(t game.ItemType, n int) float64 {
			return t.KillingStrength * float64(n)
		})
		ds += itemSlotPass(cat, p, slot, category, stacks, func(t game.ItemType, n int) float64 {
			return t.DefenseStrength * float64(n)
		})
	}
	// A squad upgrade's single bonus counts toward both figures.
	up := upgradePass(cat, p, category, stacks, func(t game.BattleUpgradeType, n int) float64 {
		return float64(t.Bonus) * float64(n)
	})
	ks += up
	ds += up

	if includeCivilians && p.DefenseProportion() < militiaThreshold {
		for _, kind := range militiaKinds {
			if kind == unitKindFor(category) {
				continue
			}
			for i := range p.Units {
				u := &p.Units[i]
				if u.Kind != kind || u.Quantity <= 0 {
					continue
				}
				if ut, ok := cat.UnitType(u.Kind, u.Level); ok {
					ks += ut.KillingStrength * float64(u.Quantity)
					ds += ut.DefenseStrength * float64(u.Quantity)
				}
			}
		}
	}
	return ks, ds
}

// itemSlotPass walks one equipment slot highest level first, applying each
// item to at most one unit and consuming stock. Slots are independent: the
// same unit may benefit from every slot, but only once per slot.
func itemSlotPass(cat *game.Catalog, p *game.Player, slot game.ItemKind, usage game.StatCategory, stacks []unitStack, value func(game.ItemType, int) float64) float64 {
	eligible := make([]int, len(stacks))
	for i := range stacks {
		eligible[i] = stacks[i].quantity
	}
	total := 0.0
	for _, it := range itemsForSlot(p, slot, usage) {
		t, ok := cat.ItemType(slot, usage, it.Level)
		if !ok {
			continue
		}
		stock := it.Quantity
		for i := range stacks {
			if stock == 0 {
				break
			}
			n := min(stock, eligible[i])
			if n <= 0 {
				continue
			}
			total += value(t, n)
			eligible[i] -= n
			stock -= n
		}
	}
	return total
}

// upgradePass applies squad upgrades highest level first against a coverage
// ledger rebuilt for this pass: each unit is covered at most once, and an
// upgrade covers at most quantity*unitsCovered units at or above its minimum
// unit level.
func upgradePass(cat *game.Catalog, p *game.Player, category game.StatCategory, stacks []unitStack, value func(game.BattleUpgradeType, int) float64) float64 {
	covered := make([]int, len(stacks))
	total := 0.0
	for _, up := range upgradesFor(p, category) {
		t, ok := cat.BattleUpgradeType(category, up.Level)
		if !ok || t.UnitsCovered <= 0 {
			continue
		}
		capacity := up.Quantity * t.UnitsCovered
		for i := range stacks {
			if capacity == 0 {
				break
			}
			if stacks[i].level < t.MinUnitLevel {
				continue
			}
			n := min(capacity, stacks[i].quantity-covered[i])
			if n <= 0 {
				continue
			}
			total += value(t, n)
			covered[i] += n
			capacity -= n
		}
	}
	return total
}

// bonusPercent sums the flat percentage bonuses for a category: race and
// class heritage, proficiency points, and the category's structure or
// fortification bonus.
func bonusPercent(cat *game.Catalog, p *game.Player, category game.StatCategory) float64 {
	pct := cat.HeritagePercent(p.Race, category) + cat.HeritagePercent(p.Class, category)
	switch category {
	case game.StatOffense:
		pct += p.ProficiencyLevel(game.ProfOffense)
		pct += cat.StructurePercent(game.StructureOffense, p.StructureLevel(game.StructureOffense))
	case game.StatDefense:
		pct += p.ProficiencyLevel(game.ProfDefense)
		if f, ok := cat.Fortification(p.FortLevel); ok {
			pct += f.DefenseBonusPercent
		}
	case game.StatSpy:
		pct += p.ProficiencyLevel(game.ProfIntel)
		pct += cat.StructurePercent(game.StructureSpy, p.StructureLevel(game.StructureSpy))
	case game.StatSentry:
		pct += p.ProficiencyLevel(game.ProfIntel)
		pct += cat.StructurePercent(game.StructureSentry, p.StructureLevel(game.StructureSentry))
	}
	return float64(pct)
}
