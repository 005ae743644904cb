package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/valtyr/warspire/internal/constants"
	"github.com/valtyr/warspire/internal/game"
	"github.com/valtyr/warspire/internal/service"
)

type mockRepo struct {
	players map[uint]*game.Player
}

func (m *mockRepo) GetPlayerByID(id uint) (*game.Player, error) {
	if p, ok := m.players[id]; ok {
		return p, nil
	}
	return nil, service.ErrPlayerNotFound
}

func (m *mockRepo) SavePlayersAndLog(attacker, defender *game.Player, entry *game.MissionLog) error {
	return nil
}

func (m *mockRepo) GetMissionLogs(playerID uint, limit int) ([]game.MissionLog, error) {
	return nil, nil
}

func (m *mockRepo) GetTopPlayers(limit int) ([]game.Player, error) {
	out := make([]game.Player, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, *p)
	}
	return out, nil
}

func testRouter(players map[uint]*game.Player) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewMissionService(&mockRepo{players: players}, game.DefaultCatalog())
	svc.NewRNG = func() *rand.Rand { return rand.New(rand.NewSource(7)) }
	h := NewMissionHandler(svc)

	router := gin.New()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	apiRoutes.POST(constants.RouteBattles, h.Battle)
	apiRoutes.POST(constants.RouteSpyIntel, h.SpyIntel)
	apiRoutes.POST(constants.RouteSpyInfiltrate, h.SpyInfiltrate)
	apiRoutes.POST(constants.RouteSpyAssassinate, h.SpyAssassinate)
	apiRoutes.GET(constants.RoutePlayerStats, h.GetPlayerStats)
	apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
	return router
}

func testPlayers() map[uint]*game.Player {
	attacker := &game.Player{
		Name:          "Raider",
		FortLevel:     1,
		FortHitpoints: 50,
		Units: []game.UnitHolding{
			{Kind: game.UnitOffense, Level: 1, Quantity: 5000},
			{Kind: game.UnitSpy, Level: 1, Quantity: 2000},
		},
	}
	attacker.ID = 1
	defender := &game.Player{
		Name:          "Settler",
		Gold:          40000,
		FortLevel:     2,
		FortHitpoints: 100,
		Units: []game.UnitHolding{
			{Kind: game.UnitCitizen, Level: 1, Quantity: 9000},
			{Kind: game.UnitDefense, Level: 1, Quantity: 800},
		},
	}
	defender.ID = 2
	return map[uint]*game.Player{1: attacker, 2: defender}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBattleEndpoint_OK(t *testing.T) {
	router := testRouter(testPlayers())
	w := postJSON(t, router, "/api/battles", map[string]interface{}{
		"attacker_id": 1, "defender_id": 2, "turns": 5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Log struct {
			Kind string `json:"kind"`
		} `json:"log"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Log.Kind != string(game.MissionAttack) {
		t.Fatalf("log kind = %q, want ATTACK", resp.Log.Kind)
	}
}

func TestBattleEndpoint_BadRequest(t *testing.T) {
	router := testRouter(testPlayers())
	w := postJSON(t, router, "/api/battles", map[string]interface{}{"attacker_id": 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestBattleEndpoint_UnknownPlayer(t *testing.T) {
	router := testRouter(testPlayers())
	w := postJSON(t, router, "/api/battles", map[string]interface{}{
		"attacker_id": 1, "defender_id": 99, "turns": 3,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestBattleEndpoint_SelfTarget(t *testing.T) {
	router := testRouter(testPlayers())
	w := postJSON(t, router, "/api/battles", map[string]interface{}{
		"attacker_id": 1, "defender_id": 1, "turns": 3,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestIntelEndpoint_OK(t *testing.T) {
	router := testRouter(testPlayers())
	w := postJSON(t, router, "/api/spy/intel", map[string]interface{}{
		"attacker_id": 1, "defender_id": 2, "spies_sent": 500,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestInfiltrateEndpoint_NoFort(t *testing.T) {
	players := testPlayers()
	players[2].FortLevel = 0
	router := testRouter(players)
	w := postJSON(t, router, "/api/spy/infiltrate", map[string]interface{}{
		"attacker_id": 1, "defender_id": 2, "spies_sent": 500,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestAssassinateEndpoint_BadTarget(t *testing.T) {
	router := testRouter(testPlayers())
	w := postJSON(t, router, "/api/spy/assassinate", map[string]interface{}{
		"attacker_id": 1, "defender_id": 2, "spies_sent": 500, "target": "THRONE_ROOM",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPlayerStatsEndpoint(t *testing.T) {
	router := testRouter(testPlayers())
	req := httptest.NewRequest(http.MethodGet, "/api/players/2/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var stats service.PlayerStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if stats.PlayerID != 2 || stats.Population != 9800 {
		t.Fatalf("unexpected stats payload: %+v", stats)
	}
}

func TestPlayerStatsEndpoint_BadID(t *testing.T) {
	router := testRouter(testPlayers())
	req := httptest.NewRequest(http.MethodGet, "/api/players/zero/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	router := testRouter(testPlayers())
	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var entries []service.LeaderboardEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 leaderboard entries, got %d", len(entries))
	}
}
