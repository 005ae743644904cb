package service

import (
	"fmt"

	"github.com/valtyr/warspire/internal/dedupe"
	"github.com/valtyr/warspire/internal/engine"
	"github.com/valtyr/warspire/internal/game"
)

// PlayerStats is the computed public profile for one player.
type PlayerStats struct {
	PlayerID   uint   `json:"player_id"`
	Name       string `json:"name"`
	Race       string `json:"race"`
	Class      string `json:"class"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`
	Gold       int64  `json:"gold"`
	Population int    `json:"population"`
	FortLevel  int    `json:"fort_level"`

	Offense int `json:"offense"`
	Defense int `json:"defense"`
	Spy     int `json:"spy"`
	Sentry  int `json:"sentry"`
}

// LeaderboardEntry is one row of the experience ranking.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerID   uint   `json:"player_id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`
	Gold       int64  `json:"gold"`
}

func statsKey(playerID uint) string {
	return fmt.Sprintf("stats:%d", playerID)
}

// PlayerStats computes the four army stats plus profile figures for one
// player. Concurrent requests for the same player share a single computation.
func (s *MissionService) PlayerStats(playerID uint) (*PlayerStats, error) {
	v, err, _ := dedupe.StatsGroup.Do(statsKey(playerID), func() (interface{}, error) {
		p, err := s.repo.GetPlayerByID(playerID)
		if err != nil || p == nil {
			return nil, ErrPlayerNotFound
		}
		return &PlayerStats{
			PlayerID:   p.ID,
			Name:       p.Name,
			Race:       p.Race,
			Class:      p.Class,
			Level:      p.Level(),
			Experience: p.Experience,
			Gold:       p.Gold,
			Population: p.Population(),
			FortLevel:  p.FortLevel,
			Offense:    engine.GetStat(s.catalog, p, game.StatOffense),
			Defense:    engine.GetStat(s.catalog, p, game.StatDefense),
			Spy:        engine.GetStat(s.catalog, p, game.StatSpy),
			Sentry:     engine.GetStat(s.catalog, p, game.StatSentry),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PlayerStats), nil
}

// Leaderboard returns the top players by experience. Concurrent requests for
// the same limit share a single query.
func (s *MissionService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("top:%d", limit), func() (interface{}, error) {
		players, err := s.repo.GetTopPlayers(limit)
		if err != nil {
			return nil, err
		}
		entries := make([]LeaderboardEntry, 0, len(players))
		for i, p := range players {
			entries = append(entries, LeaderboardEntry{
				Rank:       i + 1,
				PlayerID:   p.ID,
				Name:       p.Name,
				Level:      p.Level(),
				Experience: p.Experience,
				Gold:       p.Gold,
			})
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaderboardEntry), nil
}
