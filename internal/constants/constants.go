package constants

// Centralized constants for env keys, routes and API strings.
const (
	// Environment variable keys
	EnvAddr     = "WARSPIRE_ADDR"
	EnvDBPath   = "WARSPIRE_DB"
	EnvCatalog  = "WARSPIRE_CONFIG"
	EnvLogLevel = "WARSPIRE_LOG_LEVEL"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteBattles        = "/battles"
	RouteSpyIntel       = "/spy/intel"
	RouteSpyInfiltrate  = "/spy/infiltrate"
	RouteSpyAssassinate = "/spy/assassinate"
	RoutePlayerStats    = "/players/:playerID/stats"
	RoutePlayerMissions = "/players/:playerID/missions"
	RouteLeaderboard    = "/leaderboard"
	RouteVersion        = "/version"
	RouteHealth         = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidPlayerID   = "Invalid player ID"
	ErrPlayerNotFound    = "Player not found"
	ErrSelfTarget        = "Attacker and defender must be different players"
	ErrNoFortification   = "Target has no standing fortification"
	ErrFailedResolve     = "Failed to resolve mission"
	ErrFailedFetchStats  = "Failed to fetch player stats"
	ErrFailedLeaderboard = "Failed to fetch leaderboard"
	ErrFailedMissionLogs = "Failed to fetch mission logs"
)

// Logging field names
const (
	LogFieldPlayerID   = "player_id"
	LogFieldAttackerID = "attacker_id"
	LogFieldDefenderID = "defender_id"
	LogFieldMission    = "mission"
	LogFieldTurns      = "turns"
	LogFieldAddr       = "addr"
	LogFieldPath       = "path"
)
