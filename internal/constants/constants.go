package constants

import "time"

// Environment variable keys
const (
	EnvConfigPath = "POKEMON_CONFIG"

	DefaultConfigPath = "./pokemon_config.json"
)

// HTTP headers and content types
const (
	HeaderCacheControl  = "Cache-Control"
	HeaderXCache        = "X-Cache"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Service defaults
const (
	DefaultServerAddress  = ":5000"
	DefaultCatalogPath    = "files/pokemon.csv"
	DefaultPerPage        = 10
	DefaultMaxPerPage     = 50
	DefaultCacheTTL       = 60 * time.Second
	DefaultCacheSize      = 1024
	DefaultLogMaxSizeMB   = 10
	DefaultLogMaxBackups  = 3
	DefaultStoreDriver    = "memory"
	StoreDriverSQLite     = "sqlite"
	DefaultFuzzyThreshold = 0.80
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/v1"
	RouteBattle        = "/battle"
	RouteBattleStatus  = "/get_battle_status"
	RoutePokemons      = "/pokemons"
	RouteHealth        = "/healthz"
	RouteVersion       = "/version"
	RouteMetrics       = "/metrics"
	QueryBattleID      = "battle_id"
	QueryPage          = "page"
	QueryPerPage       = "per_page"
	JSONFieldPokemon1  = "pokemon1"
	JSONFieldPokemon2  = "pokemon2"
	JSONFieldBattleID  = "battle_id"
	JSONFieldStatus    = "status"
	JSONFieldResult    = "result"
	JSONFieldWinner    = "winner"
	JSONFieldDamage    = "damage"
	JSONFieldPage      = "page"
	JSONFieldPerPage   = "per_page"
	JSONFieldTotal     = "total"
	JSONFieldPages     = "pages"
	JSONFieldData      = "data"
	JSONFieldLinks     = "links"
	JSONFieldLinkFirst = "first"
	JSONFieldLinkLast  = "last"
	JSONFieldLinkPrev  = "prev"
	JSONFieldLinkNext  = "next"
)

// Common JSON response keys
const (
	JSONKeyError = "error"
)

// Common error messages used across API handlers
const (
	ErrInvalidJSON          = "Invalid JSON"
	ErrBothPokemonRequired  = "Both pokemon1 and pokemon2 fields are required."
	ErrPokemonMustBeStrings = "pokemon1 and pokemon2 must be strings."
	ErrPokemonUnrecognized  = "One or both Pokemon names are unrecognized."
	ErrSelfBattle           = "A Pokemon cannot battle itself."
	ErrNoDataAvailable      = "No data available."
	ErrBattleIDRequired     = "battle_id field is required."
	ErrBattleIDFormat       = "Invalid battle_id format. It must be a valid UUID."
	ErrBattleNotFoundFmt    = "Battle with id %s not found."
	ErrInvalidPagination    = "page and per_page must be positive integers."
	ErrInternal             = "Internal server error."
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldPokemon1 = "pokemon1"
	LogFieldPokemon2 = "pokemon2"
	LogFieldStatus   = "status"
	LogFieldWinner   = "winner"
	LogFieldDamage   = "damage"
	LogFieldReason   = "reason"
	LogFieldCount    = "count"
	LogFieldPath     = "path"
	LogFieldKey      = "key"
	LogFieldAddr     = "addr"
	LogFieldRound    = "round"
	LogFieldAttacker = "attacker"
	LogFieldDefender = "defender"
	LogFieldScore    = "score"
	LogFieldAttempt  = "attempt"
)
