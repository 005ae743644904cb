package game

// UnitType is the catalog row for one trainable unit tier. Bonus feeds the
// scalar stat; KillingStrength/DefenseStrength feed battle resolution.
type UnitType struct {
	Kind            UnitKind `json:"kind"`
	Level           int      `json:"level"`
	Name            string   `json:"name"`
	Bonus           int      `json:"bonus"`
	KillingStrength float64  `json:"killing_strength"`
	DefenseStrength float64  `json:"defense_strength"`
	MinFortLevel    int      `json:"min_fort_level"`
	Cost            int64    `json:"cost"`
}

// ItemType is the catalog row for one piece of equipment.
type ItemType struct {
	Kind            ItemKind     `json:"kind"`
	Usage           StatCategory `json:"usage"`
	Level           int          `json:"level"`
	Name            string       `json:"name"`
	Bonus           int          `json:"bonus"`
	KillingStrength float64      `json:"killing_strength"`
	DefenseStrength float64      `json:"defense_strength"`
	ArmoryLevel     int          `json:"armory_level"`
	Cost            int64        `json:"cost"`
}

// BattleUpgradeType is the catalog row for squad-wide gear. One owned unit of
// the upgrade covers UnitsCovered units of the category at or above
// MinUnitLevel.
type BattleUpgradeType struct {
	Category       StatCategory `json:"category"`
	Level          int          `json:"level"`
	Name           string       `json:"name"`
	Bonus          int          `json:"bonus"`
	UnitsCovered   int          `json:"units_covered"`
	MinUnitLevel   int          `json:"min_unit_level"`
	StructureLevel int          `json:"structure_level"`
	Cost           int64        `json:"cost"`
}

// Fortification is the catalog row for one fort level.
type Fortification struct {
	Level               int    `json:"level"`
	Name                string `json:"name"`
	Hitpoints           int    `json:"hitpoints"`
	DefenseBonusPercent int    `json:"defense_bonus_percent"`
	GoldPerTurn         int64  `json:"gold_per_turn"`
	Cost                int64  `json:"cost"`
}

// HeritageBonus is a flat percentage bonus granted by a race or class.
type HeritageBonus struct {
	Name     string       `json:"name"`
	Category StatCategory `json:"category"`
	Percent  int          `json:"percent"`
}

// StructureBonus maps a structure track level to its percentage bonus.
type StructureBonus struct {
	Kind    StructureKind `json:"kind"`
	Level   int           `json:"level"`
	Percent int           `json:"percent"`
}

// EspionageTuning holds the game-balance knobs of the espionage resolver.
// They are catalog data rather than code so designers can retune missions
// without an engine change.
type EspionageTuning struct {
	// SuccessThreshold scales the sentry strength the spy squad must beat.
	SuccessThreshold float64 `json:"success_threshold"`
	// MaxIntelPercent caps how much of a defender's state one mission reveals.
	MaxIntelPercent int `json:"max_intel_percent"`
	// InfiltrationRatioCap bounds the strength ratio used for fort damage.
	InfiltrationRatioCap float64 `json:"infiltration_ratio_cap"`
	// AssassinationRatioCap bounds the strength ratio used for kills.
	AssassinationRatioCap float64 `json:"assassination_ratio_cap"`
}

// Catalog bundles every static reference table the engine reads. Catalogs
// are immutable once built; the engine never writes to them.
type Catalog struct {
	Units          []UnitType          `json:"unit_list"`
	Items          []ItemType          `json:"item_list"`
	BattleUpgrades []BattleUpgradeType `json:"battle_upgrade_list"`
	Fortifications []Fortification     `json:"fortification_list"`
	Heritage       []HeritageBonus     `json:"heritage_list"`
	Structures     []StructureBonus    `json:"structure_list"`
	Espionage      EspionageTuning     `json:"espionage"`
}

// UnitType looks up a unit catalog row. Absent rows are a normal condition:
// strength passes silently skip holdings with no catalog entry.
func (c *Catalog) UnitType(kind UnitKind, level int) (UnitType, bool) {
	for i := range c.Units {
		if c.Units[i].Kind == kind && c.Units[i].Level == level {
			return c.Units[i], true
		}
	}
	return UnitType{}, false
}

// ItemType looks up an item catalog row by slot, usage and level.
func (c *Catalog) ItemType(kind ItemKind, usage StatCategory, level int) (ItemType, bool) {
	for i := range c.Items {
		if c.Items[i].Kind == kind && c.Items[i].Usage == usage && c.Items[i].Level == level {
			return c.Items[i], true
		}
	}
	return ItemType{}, false
}

// BattleUpgradeType looks up a squad upgrade catalog row.
func (c *Catalog) BattleUpgradeType(cat StatCategory, level int) (BattleUpgradeType, bool) {
	for i := range c.BattleUpgrades {
		if c.BattleUpgrades[i].Category == cat && c.BattleUpgrades[i].Level == level {
			return c.BattleUpgrades[i], true
		}
	}
	return BattleUpgradeType{}, false
}

// Fortification looks up a fort catalog row by level.
func (c *Catalog) Fortification(level int) (Fortification, bool) {
	for i := range c.Fortifications {
		if c.Fortifications[i].Level == level {
			return c.Fortifications[i], true
		}
	}
	return Fortification{}, false
}

// HeritagePercent returns the flat bonus a race or class name grants for a
// category. Unknown names grant nothing.
func (c *Catalog) HeritagePercent(name string, cat StatCategory) int {
	for i := range c.Heritage {
		if c.Heritage[i].Name == name && c.Heritage[i].Category == cat {
			return c.Heritage[i].Percent
		}
	}
	return 0
}

// StructurePercent returns the percentage bonus for a structure track at the
// given level. Levels between configured rows use the highest row at or
// below the level.
func (c *Catalog) StructurePercent(kind StructureKind, level int) int {
	best := 0
	bestLevel := -1
	for i := range c.Structures {
		s := c.Structures[i]
		if s.Kind == kind && s.Level <= level && s.Level > bestLevel {
			best = s.Percent
			bestLevel = s.Level
		}
	}
	return best
}
