package game

// DefaultCatalog returns the built-in balance tables. A JSON config file may
// replace any table wholesale (see internal/config); the defaults keep the
// server runnable without one.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Units:          defaultUnits(),
		Items:          defaultItems(),
		BattleUpgrades: defaultBattleUpgrades(),
		Fortifications: defaultFortifications(),
		Heritage:       defaultHeritage(),
		Structures:     defaultStructures(),
		Espionage: EspionageTuning{
			SuccessThreshold:      1.05,
			MaxIntelPercent:       90,
			InfiltrationRatioCap:  10,
			AssassinationRatioCap: 5,
		},
	}
	return c
}

func defaultUnits() []UnitType {
	units := []UnitType{
		{Kind: UnitCitizen, Level: 1, Name: "Citizen", Bonus: 0, KillingStrength: 1, DefenseStrength: 1},
		{Kind: UnitWorker, Level: 1, Name: "Worker", Bonus: 0, KillingStrength: 1, DefenseStrength: 1, Cost: 1000},
	}
	names := map[UnitKind][3]string{
		UnitOffense: {"Soldier", "Knight", "Berserker"},
		UnitDefense: {"Guard", "Archer", "Royal Guard"},
		UnitSpy:     {"Spy", "Infiltrator", "Assassin"},
		UnitSentry:  {"Sentry", "Sentinel", "Warden"},
	}
	for _, kind := range []UnitKind{UnitOffense, UnitDefense, UnitSpy, UnitSentry} {
		for level := 1; level <= 3; level++ {
			bonus := []int{3, 20, 50}[level-1]
			ks := []float64{3, 20, 50}[level-1]
			ds := []float64{3, 20, 50}[level-1]
			switch kind {
			case UnitOffense:
				ds = ks / 2
			case UnitDefense, UnitSentry:
				ks = ds / 2
			}
			units = append(units, UnitType{
				Kind:            kind,
				Level:           level,
				Name:            names[kind][level-1],
				Bonus:           bonus,
				KillingStrength: ks,
				DefenseStrength: ds,
				MinFortLevel:    []int{1, 5, 10}[level-1],
				Cost:            []int64{2500, 12500, 45000}[level-1],
			})
		}
	}
	return units
}

func defaultItems() []ItemType {
	// Per-slot base values at level 1; level 2 and 3 scale 4x and 10x.
	slots := []struct {
		kind  ItemKind
		bonus int
		cost  int64
	}{
		{ItemWeapon, 25, 12500},
		{ItemHelm, 10, 5000},
		{ItemBracers, 10, 5000},
		{ItemShield, 15, 7500},
		{ItemBoots, 5, 2500},
		{ItemArmor, 20, 10000},
	}
	scale := []int{1, 4, 10}
	var items []ItemType
	for _, usage := range []StatCategory{StatOffense, StatDefense, StatSpy, StatSentry} {
		for _, s := range slots {
			for level := 1; level <= 3; level++ {
				bonus := s.bonus * scale[level-1]
				ks := float64(bonus)
				ds := float64(bonus)
				switch usage {
				case StatOffense, StatSpy:
					ds = ks / 2
				case StatDefense, StatSentry:
					ks = ds / 2
				}
				items = append(items, ItemType{
					Kind:            s.kind,
					Usage:           usage,
					Level:           level,
					Name:            string(usage) + " " + string(s.kind),
					Bonus:           bonus,
					KillingStrength: ks,
					DefenseStrength: ds,
					ArmoryLevel:     level,
					Cost:            s.cost * int64(scale[level-1]),
				})
			}
		}
	}
	return items
}

func defaultBattleUpgrades() []BattleUpgradeType {
	names := map[StatCategory][2]string{
		StatOffense: {"Siege Ram", "War Elephant"},
		StatDefense: {"Palisade Line", "Ballista Tower"},
		StatSpy:     {"Smoke Kit", "Shadow Cloak"},
		StatSentry:  {"Watch Beacon", "Hound Pack"},
	}
	var out []BattleUpgradeType
	for _, cat := range []StatCategory{StatOffense, StatDefense, StatSpy, StatSentry} {
		for level := 1; level <= 2; level++ {
			out = append(out, BattleUpgradeType{
				Category:       cat,
				Level:          level,
				Name:           names[cat][level-1],
				Bonus:          []int{10, 40}[level-1],
				UnitsCovered:   []int{5, 10}[level-1],
				MinUnitLevel:   level,
				StructureLevel: []int{3, 8}[level-1],
				Cost:           []int64{100000, 500000}[level-1],
			})
		}
	}
	return out
}

func defaultFortifications() []Fortification {
	names := []string{
		"Manor", "Village", "Town", "Outpost", "Outpost Tier 2",
		"Outpost Tier 3", "Stronghold", "Stronghold Tier 2", "Stronghold Tier 3",
		"Fortress", "Fortress Tier 2", "Fortress Tier 3", "Citadel",
		"Citadel Tier 2", "Citadel Tier 3",
	}
	out := make([]Fortification, 0, len(names))
	for i, name := range names {
		level := i + 1
		out = append(out, Fortification{
			Level:               level,
			Name:                name,
			Hitpoints:           50 + 25*i,
			DefenseBonusPercent: 5 * level,
			GoldPerTurn:         int64(1000 * level),
			Cost:                int64(100000) * int64(level) * int64(level),
		})
	}
	return out
}

func defaultHeritage() []HeritageBonus {
	return []HeritageBonus{
		// Races
		{Name: "HUMAN", Category: StatOffense, Percent: 5},
		{Name: "HUMAN", Category: StatSentry, Percent: 5},
		{Name: "ELF", Category: StatDefense, Percent: 5},
		{Name: "ELF", Category: StatSpy, Percent: 5},
		{Name: "GOBLIN", Category: StatOffense, Percent: 5},
		{Name: "GOBLIN", Category: StatSpy, Percent: 5},
		{Name: "UNDEAD", Category: StatDefense, Percent: 5},
		{Name: "UNDEAD", Category: StatSentry, Percent: 5},
		// Classes
		{Name: "FIGHTER", Category: StatOffense, Percent: 5},
		{Name: "CLERIC", Category: StatDefense, Percent: 5},
		{Name: "ASSASSIN", Category: StatSpy, Percent: 5},
		{Name: "THIEF", Category: StatSentry, Percent: 5},
	}
}

func defaultStructures() []StructureBonus {
	var out []StructureBonus
	for _, kind := range []StructureKind{StructureOffense, StructureSpy, StructureSentry} {
		for level := 1; level <= 10; level++ {
			out = append(out, StructureBonus{Kind: kind, Level: level, Percent: 5 * level})
		}
	}
	// The armory gates item tiers but grants no percentage bonus.
	return out
}
