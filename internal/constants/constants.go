package constants

// Centralized constants for env keys, routes and shared messages.
const (
	// Environment variable keys
	EnvConfigPath = "ARENA_CONFIG"
	EnvDBPath     = "ARENA_DB"

	// Default locations used when the env vars above are unset.
	DefaultConfigPath = "./arena_config.json"
	DefaultDBPath     = "./data/arena.db"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteUnits      = "/units"
	RouteUnitByName = "/units/:name"

	RouteInventory   = "/inventory/:userID"
	RouteInventories = "/inventories"
	RouteActiveUnit  = "/inventory/:userID/active"
	RouteSummon      = "/summon"
	RouteWallet      = "/wallet/:userID"
	RouteFarm        = "/economy/farm"
	RouteGamble      = "/economy/gamble"
	RouteSlots       = "/economy/slots"
	RoutePrestige    = "/prestige"
	RouteLeaderboard = "/leaderboard"
	RouteBoss        = "/boss"

	RouteBattles      = "/battles"
	RouteBattleState  = "/battles/state"
	RouteBattleAttack = "/battles/attack"
	RouteBattleSpell  = "/battles/spell"

	RouteHome    = "/"
	RouteStatus  = "/status"
	RouteVersion = "/version"
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
	ErrUnitNotFound      = "Unit not found"
	ErrInventoryEmpty    = "Inventory is empty"
	ErrUnitNotOwned      = "You don't own a unit with that name"
	ErrNotEnoughPoints   = "Not enough points"
	ErrBattleNotFound    = "No active battle in this channel"
	ErrBattleExists      = "A battle is already in progress in this channel"
	ErrBattleOver        = "The battle has already concluded"
	ErrNotYourTurn       = "It's not your turn"
	ErrBossDefeated      = "The boss has already been defeated! Wait for a new one."
	ErrBossBusy          = "The boss is already fighting in another channel"
	ErrFailedLeaderboard = "Failed to fetch leaderboard"
	ErrFailedInventory   = "Failed to fetch inventory"
	ErrFailedWallet      = "Failed to fetch wallet"
	ErrFailedSummon      = "Failed to summon"
	ErrFailedStoreAction = "Failed to store action"
)

// Success messages
const (
	MsgPrestigeUp = "Prestige level up! Your inventory was reset."
)

// Logging field names
const (
	LogFieldUserID    = "user_id"
	LogFieldChannelID = "channel_id"
	LogFieldBattleID  = "battle_id"
	LogFieldUnit      = "unit"
	LogFieldBoss      = "boss"
	LogFieldAddr      = "addr"
	LogFieldCount     = "count"
	LogFieldPoints    = "points"
)
