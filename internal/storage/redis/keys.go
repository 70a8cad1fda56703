package redis

import (
	"fmt"

	"gameledger/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "ledger"

// Key generation functions for each entity type

// recordKey returns the Redis key for a GameRecord
func recordKey(id model.GameID) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, id)
}

// recordIndexKey returns the Redis key for the SET of all record ids
func recordIndexKey() string {
	return fmt.Sprintf("%s:idx:records", keyPrefix)
}

// playerGamesKey returns the Redis key for a player's append-only game id LIST
func playerGamesKey(playerID model.AccountID) string {
	return fmt.Sprintf("%s:player:%s:games", keyPrefix, playerID)
}

// statsKey returns the Redis key for a player's stats
func statsKey(playerID model.AccountID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, playerID)
}

// playerIndexKey returns the Redis key for the SET of players with stats
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// leaderboardKey returns the Redis key for the leaderboard snapshot
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// adminsKey returns the Redis key for the admin roster
func adminsKey() string {
	return fmt.Sprintf("%s:admins", keyPrefix)
}

// priceKey returns the Redis key for the configured price per byte
func priceKey() string {
	return fmt.Sprintf("%s:config:price_per_byte", keyPrefix)
}

// totalGamesKey returns the Redis key for the total games counter
func totalGamesKey() string {
	return fmt.Sprintf("%s:totals:games", keyPrefix)
}

// totalPlayersKey returns the Redis key for the total players counter
func totalPlayersKey() string {
	return fmt.Sprintf("%s:totals:players", keyPrefix)
}

// meterKey returns the Redis key for the metered storage byte counter
func meterKey() string {
	return fmt.Sprintf("%s:meter:bytes", keyPrefix)
}
