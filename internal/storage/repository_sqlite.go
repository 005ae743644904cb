package storage

import (
	"gorm.io/gorm"

	"github.com/valtyr/warspire/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreatePlayer(p *game.Player) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetPlayerByID(id uint) (*game.Player, error) {
	var p game.Player
	err := r.db.
		Preload("Units").
		Preload("Items").
		Preload("BattleUpgrades").
		Preload("StructureUpgrades").
		Preload("BonusPoints").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpdatePlayer(p *game.Player) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (r *sqliteRepository) SavePlayersAndLog(attacker, defender *game.Player, entry *game.MissionLog) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	save := func(p *game.Player) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
	}
	if err := save(attacker); err != nil {
		tx.Rollback()
		return err
	}
	if err := save(defender); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Create(entry).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) GetMissionLogs(playerID uint, limit int) ([]game.MissionLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []game.MissionLog
	err := r.db.
		Where("attacker_id = ? OR defender_id = ?", playerID, playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// GetTopPlayers returns the top N players ordered by experience desc, then
// gold desc as a tiebreaker.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Player, error) {
	if limit <= 0 {
		limit = 10
	}
	var players []game.Player
	err := r.db.Model(&game.Player{}).
		Order("experience DESC").
		Order("gold DESC").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
