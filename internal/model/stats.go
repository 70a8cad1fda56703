package model

// PlayerStats is the running statistical summary for one player.
// It is created lazily on the player's first record, mutated only as a
// side effect of record insertion, and never deleted.
//
// AverageAttempts is an insertion-order running mean: replaying the same
// records in a different order yields a different value. WinRate is fully
// recomputed on every update rather than incremented, so it cannot drift.
type PlayerStats struct {
	PlayerID        AccountID `json:"player_id"`
	TotalGames      int       `json:"total_games"`
	TotalWins       int       `json:"total_wins"`
	AverageAttempts float64   `json:"average_attempts"`
	BestScore       int       `json:"best_score"` // 0 until the first win
	TotalTime       int64     `json:"total_time"`
	WinRate         float64   `json:"win_rate"`
	LastPlayed      int64     `json:"last_played"`
	TotalScore      int64     `json:"total_score"`
}

// HasBestScore reports whether the player has recorded a winning game yet.
// Attempts are always >= 1, so zero is a safe "unset" sentinel.
func (s *PlayerStats) HasBestScore() bool {
	return s.BestScore > 0
}

// LeaderboardEntry is a ranked projection of one player's stats.
// Entries are purely derived: the cache they live in can be discarded and
// rebuilt from PlayerStats at any time.
type LeaderboardEntry struct {
	Rank            int       `json:"rank"`
	PlayerID        AccountID `json:"player_id"`
	TotalGames      int       `json:"total_games"`
	WinRate         float64   `json:"win_rate"`
	AverageAttempts float64   `json:"average_attempts"`
	BestScore       int       `json:"best_score"`
	TotalScore      int64     `json:"total_score"`
}

// LeaderboardSnapshot is the cached ranking plus the time it was built.
// A zero RebuiltAt marks the cache as invalid.
type LeaderboardSnapshot struct {
	Entries   []LeaderboardEntry `json:"entries"`
	RebuiltAt int64              `json:"rebuilt_at"`
}

// ContractTotals are the ledger-wide counters maintained alongside inserts
type ContractTotals struct {
	TotalGames   int64 `json:"total_games"`
	TotalPlayers int64 `json:"total_players"`
}

// ContractStats is a read-only aggregate projection of the ledger
type ContractStats struct {
	TotalGames    int64     `json:"total_games"`
	TotalPlayers  int64     `json:"total_players"`
	TotalPlayTime int64     `json:"total_play_time"`
	Version       string    `json:"version"`
	Owner         AccountID `json:"owner"`
	StorageBytes  int64     `json:"storage_bytes"`
}
