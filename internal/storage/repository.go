package storage

import (
	"github.com/valtyr/warspire/internal/game"
)

type Repository interface {
	CreatePlayer(p *game.Player) error
	// GetPlayerByID loads a player with every holding association preloaded.
	GetPlayerByID(id uint) (*game.Player, error)
	UpdatePlayer(p *game.Player) error

	// SavePlayersAndLog persists both mutated players and the mission log
	// entry in a single transaction. Either everything lands or nothing does.
	SavePlayersAndLog(attacker, defender *game.Player, entry *game.MissionLog) error

	// GetMissionLogs returns the most recent missions the player took part
	// in, attacker or defender side, newest first.
	GetMissionLogs(playerID uint, limit int) ([]game.MissionLog, error)

	// Leaderboard
	GetTopPlayers(limit int) ([]game.Player, error)
}
