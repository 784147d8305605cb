package constants

// Centralized constants for env keys, headers, routes and API messages.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvConfigPath    = "TASERN_CONFIG"
	EnvDatabasePath  = "TASERN_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteHealth        = "/health"
	RouteVersion       = "/version"
	RouteAuthGuest     = "/auth/guest"
	RouteCards         = "/cards"
	RouteLeaderboard   = "/leaderboard"
	RoutePlayerStats   = "/player-stats"
	RouteBattles       = "/battles"
	RouteBattlesJoin   = "/battles/join"
	RouteBattleByCode  = "/battles/:battleCode"
	RouteBattleAction  = "/battles/:battleCode/action"
	RouteBattleLog     = "/battles/:battleCode/log"
	RouteBattleWatch   = "/battles/:battleCode/watch"
	RouteBattleSurrend = "/battles/:battleCode/surrender"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidBattleCode      = "Invalid battle code"
	ErrBattleNotFound         = "Battle not found"
	ErrBattleFull             = "Battle is full"
	ErrBattleNotInProgress    = "Battle is not in progress"
	ErrNotYourTurn            = "It is not your turn"
	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchCards       = "Failed to fetch cards"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedStoreAction      = "Failed to store action"
	ErrPlayerNotInBattle      = "Player not in this battle"
	ErrNameRequired           = "name is required"
	ErrNameExceeds            = "Name exceeds 32 characters"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID   = "battle_id"
	LogFieldBattleCode = "battle_code"
	LogFieldPlayerID   = "player_id"
	LogFieldTurn       = "turn"
	LogFieldAction     = "action"
	LogFieldAddr       = "addr"
	LogFieldConfigPath = "config_path"
)
