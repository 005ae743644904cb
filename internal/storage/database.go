package storage

import (
	"github.com/valtyr/warspire/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate; removing the DB file resets it.
	err = db.AutoMigrate(
		&game.Player{},
		&game.UnitHolding{},
		&game.ItemHolding{},
		&game.BattleUpgradeHolding{},
		&game.StructureUpgrade{},
		&game.ProficiencyAllocation{},
		&game.MissionLog{},
	)
	if err != nil {
		return nil, err
	}

	// Stacks are unique per player and kind/level; the engine merges deltas
	// into existing stacks, so duplicate rows would double-count.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_unit_holdings_stack ON unit_holdings(player_id, kind, level);").Error; execErr != nil {
		return nil, execErr
	}
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_item_holdings_stack ON item_holdings(player_id, kind, usage, level);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
