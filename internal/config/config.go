package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/valtyr/warspire/internal/game"
)

// Server holds the process-level settings, parsed from the environment.
type Server struct {
	Address     string `env:"WARSPIRE_ADDR" envDefault:":8080"`
	DBPath      string `env:"WARSPIRE_DB" envDefault:"./data/warspire.db"`
	CatalogPath string `env:"WARSPIRE_CONFIG"`
}

// LoadServer parses the server configuration from environment variables.
func LoadServer() (*Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment config: %w", err)
	}
	return &s, nil
}

// rawCatalog mirrors the JSON balance file. Any table present replaces the
// built-in default wholesale; absent tables keep the defaults.
type rawCatalog struct {
	Units          []game.UnitType          `json:"unit_list"`
	Items          []game.ItemType          `json:"item_list"`
	BattleUpgrades []game.BattleUpgradeType `json:"battle_upgrade_list"`
	Fortifications []game.Fortification     `json:"fortification_list"`
	Heritage       []game.HeritageBonus     `json:"heritage_list"`
	Structures     []game.StructureBonus    `json:"structure_list"`
	Espionage      *game.EspionageTuning    `json:"espionage"`
}

// LoadCatalog reads a JSON balance file and merges it over the default
// catalog. An empty path returns the defaults untouched.
func LoadCatalog(path string) (*game.Catalog, error) {
	cat := game.DefaultCatalog()
	if path == "" {
		return cat, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	var rc rawCatalog
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if rc.Units != nil {
		cat.Units = rc.Units
	}
	if rc.Items != nil {
		cat.Items = rc.Items
	}
	if rc.BattleUpgrades != nil {
		cat.BattleUpgrades = rc.BattleUpgrades
	}
	if rc.Fortifications != nil {
		cat.Fortifications = rc.Fortifications
	}
	if rc.Heritage != nil {
		cat.Heritage = rc.Heritage
	}
	if rc.Structures != nil {
		cat.Structures = rc.Structures
	}
	if rc.Espionage != nil {
		cat.Espionage = *rc.Espionage
	}
	if err := validateCatalog(path, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// validateCatalog enforces the cross-entry invariants the engine assumes:
// unique keys per table, positive coverage, monotonic fort levels.
func validateCatalog(path string, cat *game.Catalog) error {
	unitKeys := make(map[string]struct{}, len(cat.Units))
	for _, u := range cat.Units {
		if u.Level < 1 {
			return fmt.Errorf("catalog file %s: unit %q has level %d (must be >= 1)", path, u.Name, u.Level)
		}
		key := fmt.Sprintf("%s:%d", u.Kind, u.Level)
		if _, dup := unitKeys[key]; dup {
			return fmt.Errorf("catalog file %s: duplicate unit entry %s", path, key)
		}
		unitKeys[key] = struct{}{}
	}
	itemKeys := make(map[string]struct{}, len(cat.Items))
	for _, it := range cat.Items {
		key := fmt.Sprintf("%s:%s:%d", it.Kind, it.Usage, it.Level)
		if _, dup := itemKeys[key]; dup {
			return fmt.Errorf("catalog file %s: duplicate item entry %s", path, key)
		}
		itemKeys[key] = struct{}{}
	}
	for _, b := range cat.BattleUpgrades {
		if b.UnitsCovered < 1 {
			return fmt.Errorf("catalog file %s: upgrade %q covers %d units (must be >= 1)", path, b.Name, b.UnitsCovered)
		}
	}
	if len(cat.Fortifications) == 0 {
		return fmt.Errorf("catalog file %s: fortification_list is empty", path)
	}
	fortLevels := make(map[int]struct{}, len(cat.Fortifications))
	for _, f := range cat.Fortifications {
		if f.Hitpoints < 0 {
			return fmt.Errorf("catalog file %s: fortification level %d has negative hitpoints", path, f.Level)
		}
		if _, dup := fortLevels[f.Level]; dup {
			return fmt.Errorf("catalog file %s: duplicate fortification level %d", path, f.Level)
		}
		fortLevels[f.Level] = struct{}{}
	}
	if cat.Espionage.SuccessThreshold <= 0 {
		return fmt.Errorf("catalog file %s: espionage success_threshold must be positive", path)
	}
	return nil
}
