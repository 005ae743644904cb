package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/valtyr/warspire/internal/dedupe"
	"github.com/valtyr/warspire/internal/engine"
	"github.com/valtyr/warspire/internal/game"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrSelfTarget          = errors.New("attacker and defender must be different players")
	ErrNoFortification     = errors.New("target has no standing fortification")
	ErrInvalidSpiesSent    = errors.New("spies sent must be positive")
	ErrInvalidAssassTarget = errors.New("unknown assassination target")
)

// MissionRepo is the storage surface missions need. The full Repository
// satisfies it; tests substitute an in-memory mock.
type MissionRepo interface {
	GetPlayerByID(id uint) (*game.Player, error)
	SavePlayersAndLog(attacker, defender *game.Player, entry *game.MissionLog) error
	GetMissionLogs(playerID uint, limit int) ([]game.MissionLog, error)
	GetTopPlayers(limit int) ([]game.Player, error)
}

// MissionService serializes missions per player and persists their outcome.
// Two concurrent missions touching the same player run one after the other;
// missions on disjoint player pairs run in parallel.
type MissionService struct {
	repo    MissionRepo
	catalog *game.Catalog

	// NewRNG builds the random source for one mission. Overridable so tests
	// can pin a seed.
	NewRNG func() *rand.Rand

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewMissionService(repo MissionRepo, catalog *game.Catalog) *MissionService {
	return &MissionService{
		repo:    repo,
		catalog: catalog,
		NewRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		locks: make(map[uint]*sync.Mutex),
	}
}

func (s *MissionService) playerLock(id uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// lockPair acquires both player locks in ascending ID order so two missions
// with the players swapped cannot deadlock. The returned func releases both.
func (s *MissionService) lockPair(a, b uint) func() {
	first, second := a, b
	if first > second {
		first, second = second, first
	}
	l1 := s.playerLock(first)
	l2 := s.playerLock(second)
	l1.Lock()
	l2.Lock()
	return func() {
		l2.Unlock()
		l1.Unlock()
	}
}

// loadPair fetches both players or reports ErrPlayerNotFound.
func (s *MissionService) loadPair(attackerID, defenderID uint) (*game.Player, *game.Player, error) {
	if attackerID == defenderID {
		return nil, nil, ErrSelfTarget
	}
	attacker, err := s.repo.GetPlayerByID(attackerID)
	if err != nil || attacker == nil {
		return nil, nil, ErrPlayerNotFound
	}
	defender, err := s.repo.GetPlayerByID(defenderID)
	if err != nil || defender == nil {
		return nil, nil, ErrPlayerNotFound
	}
	return attacker, defender, nil
}

// Attack runs a battle between the two players and persists the outcome.
func (s *MissionService) Attack(attackerID, defenderID uint, turns int) (*engine.BattleResult, *game.MissionLog, error) {
	unlock := s.lockPair(attackerID, defenderID)
	defer unlock()

	attacker, defender, err := s.loadPair(attackerID, defenderID)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.SimulateBattle(s.catalog, s.NewRNG(), attacker, defender, turns)
	if err != nil {
		if errors.Is(err, engine.ErrFortificationNotFound) {
			return nil, nil, ErrNoFortification
		}
		return nil, nil, err
	}

	entry := &game.MissionLog{
		AttackerID:     attackerID,
		DefenderID:     defenderID,
		Kind:           game.MissionAttack,
		TurnsUsed:      result.TurnsTaken,
		Success:        result.Losses.Defender.Total >= result.Losses.Attacker.Total,
		PillagedGold:   result.PillagedGold,
		AttackerLosses: result.Losses.Attacker.Total,
		DefenderLosses: result.Losses.Defender.Total,
		FortDamage:     result.FortDamage,
		AttackerXP:     result.Experience.Attacker,
		DefenderXP:     result.Experience.Defender,
		Summary:        fmt.Sprintf("%s attacked %s: %d gold pillaged over %d turns", attacker.Name, defender.Name, result.PillagedGold, result.TurnsTaken),
	}
	if err := s.persist(attacker, defender, entry); err != nil {
		return nil, nil, err
	}
	return result, entry, nil
}

// Intel runs a reconnaissance mission and persists the outcome.
func (s *MissionService) Intel(attackerID, defenderID uint, spiesSent int) (*engine.IntelResult, *game.MissionLog, error) {
	if spiesSent <= 0 {
		return nil, nil, ErrInvalidSpiesSent
	}
	unlock := s.lockPair(attackerID, defenderID)
	defer unlock()

	attacker, defender, err := s.loadPair(attackerID, defenderID)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.SimulateIntel(s.catalog, s.NewRNG(), attacker, defender, spiesSent)
	if err != nil {
		return nil, nil, err
	}

	entry := &game.MissionLog{
		AttackerID: attackerID,
		DefenderID: defenderID,
		Kind:       game.MissionIntel,
		SpiesSent:  spiesSent,
		Success:    result.Success,
		SpiesLost:  result.SpiesLost,
		Summary:    fmt.Sprintf("%s scouted %s: success=%t, %d spies lost", attacker.Name, defender.Name, result.Success, result.SpiesLost),
	}
	if err := s.persist(attacker, defender, entry); err != nil {
		return nil, nil, err
	}
	return result, entry, nil
}

// Infiltrate runs a fort sabotage mission and persists the outcome.
func (s *MissionService) Infiltrate(attackerID, defenderID uint, spiesSent int) (*engine.InfiltrationResult, *game.MissionLog, error) {
	if spiesSent <= 0 {
		return nil, nil, ErrInvalidSpiesSent
	}
	unlock := s.lockPair(attackerID, defenderID)
	defer unlock()

	attacker, defender, err := s.loadPair(attackerID, defenderID)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.SimulateInfiltration(s.catalog, s.NewRNG(), attacker, defender, spiesSent)
	if err != nil {
		if errors.Is(err, engine.ErrFortificationNotFound) {
			return nil, nil, ErrNoFortification
		}
		return nil, nil, err
	}

	entry := &game.MissionLog{
		AttackerID: attackerID,
		DefenderID: defenderID,
		Kind:       game.MissionInfiltration,
		SpiesSent:  spiesSent,
		Success:    result.Success,
		SpiesLost:  result.SpiesLost,
		FortDamage: result.FortDamage,
		Summary:    fmt.Sprintf("%s infiltrated %s: %d fort damage, %d spies lost", attacker.Name, defender.Name, result.FortDamage, result.SpiesLost),
	}
	if err := s.persist(attacker, defender, entry); err != nil {
		return nil, nil, err
	}
	return result, entry, nil
}

// Assassinate runs a targeted kill mission and persists the outcome.
func (s *MissionService) Assassinate(attackerID, defenderID uint, spiesSent int, target engine.AssassinationTarget) (*engine.AssassinationResult, *game.MissionLog, error) {
	if spiesSent <= 0 {
		return nil, nil, ErrInvalidSpiesSent
	}
	switch target {
	case engine.TargetOffense, engine.TargetDefense, engine.TargetCivilians:
	default:
		return nil, nil, ErrInvalidAssassTarget
	}
	unlock := s.lockPair(attackerID, defenderID)
	defer unlock()

	attacker, defender, err := s.loadPair(attackerID, defenderID)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.SimulateAssassination(s.catalog, s.NewRNG(), attacker, defender, spiesSent, target)
	if err != nil {
		return nil, nil, err
	}

	entry := &game.MissionLog{
		AttackerID:  attackerID,
		DefenderID:  defenderID,
		Kind:        game.MissionAssassination,
		SpiesSent:   spiesSent,
		Success:     result.Success,
		SpiesLost:   result.SpiesLost,
		UnitsKilled: result.UnitsKilled,
		Summary:     fmt.Sprintf("%s sent assassins after %s: %d units killed, %d spies lost", attacker.Name, defender.Name, result.UnitsKilled, result.SpiesLost),
	}
	if err := s.persist(attacker, defender, entry); err != nil {
		return nil, nil, err
	}
	return result, entry, nil
}

func (s *MissionService) persist(attacker, defender *game.Player, entry *game.MissionLog) error {
	if err := s.repo.SavePlayersAndLog(attacker, defender, entry); err != nil {
		return err
	}
	// Stats for both players just changed; drop any in-flight cached reads.
	dedupe.StatsGroup.Forget(statsKey(attacker.ID))
	dedupe.StatsGroup.Forget(statsKey(defender.ID))
	return nil
}

// MissionLogs returns the player's most recent missions, newest first.
func (s *MissionService) MissionLogs(playerID uint, limit int) ([]game.MissionLog, error) {
	if _, err := s.repo.GetPlayerByID(playerID); err != nil {
		return nil, ErrPlayerNotFound
	}
	return s.repo.GetMissionLogs(playerID, limit)
}
