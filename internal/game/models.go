package game

import (
	"gorm.io/gorm"
)

// UnitKind identifies the role of a unit stack.
type UnitKind string

const (
	UnitCitizen UnitKind = "CITIZEN"
	UnitWorker  UnitKind = "WORKER"
	UnitOffense UnitKind = "OFFENSE"
	UnitDefense UnitKind = "DEFENSE"
	UnitSpy     UnitKind = "SPY"
	UnitSentry  UnitKind = "SENTRY"
)

// ItemKind is an equipment slot. A unit benefits from at most one item per
// slot, but bonuses from different slots stack.
type ItemKind string

const (
	ItemWeapon  ItemKind = "WEAPON"
	ItemHelm    ItemKind = "HELM"
	ItemBoots   ItemKind = "BOOTS"
	ItemBracers ItemKind = "BRACERS"
	ItemShield  ItemKind = "SHIELD"
	ItemArmor   ItemKind = "ARMOR"
)

// ItemKinds lists every equipment slot in the order item passes walk them.
var ItemKinds = []ItemKind{ItemWeapon, ItemHelm, ItemBracers, ItemShield, ItemBoots, ItemArmor}

// StatCategory is one of the four combat roles a stat query can target.
type StatCategory string

const (
	StatOffense StatCategory = "OFFENSE"
	StatDefense StatCategory = "DEFENSE"
	StatSpy     StatCategory = "SPY"
	StatSentry  StatCategory = "SENTRY"
)

// Proficiency names a bonus-point track players allocate levels into.
type Proficiency string

const (
	ProfOffense Proficiency = "OFFENSE"
	ProfDefense Proficiency = "DEFENSE"
	ProfIncome  Proficiency = "INCOME"
	ProfIntel   Proficiency = "INTEL"
	ProfPrices  Proficiency = "PRICES"
)

// StructureKind names an upgradeable structure. Structure levels gate which
// catalog entries are purchasable and grant percentage bonuses.
type StructureKind string

const (
	StructureArmory  StructureKind = "ARMORY"
	StructureOffense StructureKind = "OFFENSE"
	StructureSpy     StructureKind = "SPY"
	StructureSentry  StructureKind = "SENTRY"
)

// UnitHolding is one owned unit stack, unique per (kind, level).
type UnitHolding struct {
	gorm.Model
	PlayerID uint     `json:"-"`
	Kind     UnitKind `json:"kind"`
	Level    int      `json:"level"`
	Quantity int      `json:"quantity"`
}

// ItemHolding is one owned equipment stack.
type ItemHolding struct {
	gorm.Model
	PlayerID uint         `json:"-"`
	Kind     ItemKind     `json:"kind"`
	Usage    StatCategory `json:"usage"`
	Level    int          `json:"level"`
	Quantity int          `json:"quantity"`
}

// BattleUpgradeHolding is squad-wide gear: each upgrade unit covers a fixed
// number of units of its category (see BattleUpgradeType.UnitsCovered).
type BattleUpgradeHolding struct {
	gorm.Model
	PlayerID uint         `json:"-"`
	Category StatCategory `json:"category"`
	Level    int          `json:"level"`
	Quantity int          `json:"quantity"`
}

// StructureUpgrade records the player's level in one structure track.
type StructureUpgrade struct {
	gorm.Model
	PlayerID uint          `json:"-"`
	Kind     StructureKind `json:"kind"`
	Level    int           `json:"level"`
}

// ProficiencyAllocation records allocated bonus points on one track. The
// allocated level translates 1:1 into a percentage bonus for that track.
type ProficiencyAllocation struct {
	gorm.Model
	PlayerID uint        `json:"-"`
	Category Proficiency `json:"category"`
	Level    int         `json:"level"`
}

// Player is the single mutable entity the engine reads and writes. It is
// loaded once per mission, mutated in memory by the resolution engine and
// written back by the storage layer afterwards.
type Player struct {
	gorm.Model
	Name  string `json:"name" gorm:"size:32"`
	Race  string `json:"race" gorm:"size:16"`
	Class string `json:"class" gorm:"size:16"`

	Experience    int64 `json:"experience"`
	Gold          int64 `json:"gold"`
	FortLevel     int   `json:"fort_level"`
	FortHitpoints int   `json:"fort_hitpoints"`

	Units             []UnitHolding           `json:"units"`
	Items             []ItemHolding           `json:"items"`
	BattleUpgrades    []BattleUpgradeHolding  `json:"battle_upgrades"`
	StructureUpgrades []StructureUpgrade      `json:"structure_upgrades"`
	BonusPoints       []ProficiencyAllocation `json:"bonus_points"`
}

func (Player) TableName() string { return "players" }

// Level derives the player's level from accumulated experience.
func (p *Player) Level() int { return LevelForXP(p.Experience) }

// Unit returns the holding for (kind, level), or nil if the player owns none.
func (p *Player) Unit(kind UnitKind, level int) *UnitHolding {
	for i := range p.Units {
		if p.Units[i].Kind == kind && p.Units[i].Level == level {
			return &p.Units[i]
		}
	}
	return nil
}

// UnitTotal sums quantities across all stacks of the given kinds.
func (p *Player) UnitTotal(kinds ...UnitKind) int {
	total := 0
	for i := range p.Units {
		for _, k := range kinds {
			if p.Units[i].Kind == k {
				total += p.Units[i].Quantity
				break
			}
		}
	}
	return total
}

// Population is the player's total headcount across every unit kind.
func (p *Player) Population() int {
	total := 0
	for i := range p.Units {
		total += p.Units[i].Quantity
	}
	return total
}

// DefenseProportion is the fraction of the population that is dedicated
// DEFENSE units. A zero population yields 0 (never-fail stat policy).
func (p *Player) DefenseProportion() float64 {
	pop := p.Population()
	if pop == 0 {
		return 0
	}
	return float64(p.UnitTotal(UnitDefense)) / float64(pop)
}

// StructureLevel returns the player's level in the given structure track.
func (p *Player) StructureLevel(kind StructureKind) int {
	for i := range p.StructureUpgrades {
		if p.StructureUpgrades[i].Kind == kind {
			return p.StructureUpgrades[i].Level
		}
	}
	return 0
}

// ProficiencyLevel returns the allocated bonus-point level for a track.
func (p *Player) ProficiencyLevel(cat Proficiency) int {
	for i := range p.BonusPoints {
		if p.BonusPoints[i].Category == cat {
			return p.BonusPoints[i].Level
		}
	}
	return 0
}

// AdjustUnits applies a delta to the (kind, level) stack, clamping at zero.
// It returns the delta actually applied.
func (p *Player) AdjustUnits(kind UnitKind, level, delta int) int {
	u := p.Unit(kind, level)
	if u == nil {
		if delta <= 0 {
			return 0
		}
		p.Units = append(p.Units, UnitHolding{PlayerID: p.ID, Kind: kind, Level: level, Quantity: delta})
		return delta
	}
	if delta < 0 && u.Quantity+delta < 0 {
		removed := -u.Quantity
		u.Quantity = 0
		return removed
	}
	u.Quantity += delta
	return delta
}

// MissionKind tags a mission log entry.
type MissionKind string

const (
	MissionAttack        MissionKind = "ATTACK"
	MissionIntel         MissionKind = "INTEL"
	MissionInfiltration  MissionKind = "INFILTRATION"
	MissionAssassination MissionKind = "ASSASSINATION"
)

// MissionLog is the immutable record written after every resolved mission.
type MissionLog struct {
	gorm.Model
	AttackerID uint        `json:"attacker_id" gorm:"index"`
	DefenderID uint        `json:"defender_id" gorm:"index"`
	Kind       MissionKind `json:"kind" gorm:"size:16"`

	TurnsUsed int  `json:"turns_used"`
	SpiesSent int  `json:"spies_sent"`
	Success   bool `json:"success"`

	PillagedGold   int64 `json:"pillaged_gold"`
	AttackerLosses int   `json:"attacker_losses"`
	DefenderLosses int   `json:"defender_losses"`
	FortDamage     int   `json:"fort_damage"`
	UnitsKilled    int   `json:"units_killed"`
	SpiesLost      int   `json:"spies_lost"`

	AttackerXP int64 `json:"attacker_xp"`
	DefenderXP int64 `json:"defender_xp"`

	Summary string `json:"summary" gorm:"size:1024"`
}

func (MissionLog) TableName() string { return "mission_logs" }

// PlayerSnapshot is the fractional copy of a defender's state returned by a
// successful intel mission. Each numeric field is scaled by the intelligence
// percentage the spies managed to gather.
type PlayerSnapshot struct {
	PlayerID        uint          `json:"player_id"`
	IntelPercentage int           `json:"intel_percentage"`
	Gold            int64         `json:"gold"`
	FortLevel       int           `json:"fort_level"`
	FortHitpoints   int           `json:"fort_hitpoints"`
	Units           []UnitHolding `json:"units"`
	Items           []ItemHolding `json:"items"`
}
