package storage

import (
	"context"

	"gameledger/internal/model"
)

// Storage defines the interface for ledger persistence.
//
// The host environment serializes calls against the ledger, so
// implementations may assume a single writer: no write overlaps another
// write, and ApplyChangeset is the only multi-key mutation on the write
// path. Each implementation must still commit a changeset as one
// indivisible unit so a crash cannot leave partial state behind.
type Storage interface {
	// Game record operations
	GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error)
	GameRecordExists(ctx context.Context, id model.GameID) (bool, error)
	ListGameRecords(ctx context.Context) ([]*model.GameRecord, error)
	DeleteGameRecords(ctx context.Context, ids []model.GameID) error

	// Player index operations (append-only, insertion order)
	GetPlayerGameIDs(ctx context.Context, playerID model.AccountID) ([]model.GameID, error)

	// Player stats operations
	GetPlayerStats(ctx context.Context, playerID model.AccountID) (*model.PlayerStats, error)
	ListPlayerStats(ctx context.Context) ([]*model.PlayerStats, error)

	// ApplyChangeset atomically commits one accepted record submission:
	// the record, its player index entry, the updated stats, and the
	// ledger-wide counters. Either every part commits or none does.
	ApplyChangeset(ctx context.Context, cs *Changeset) error

	// Leaderboard cache operations
	GetLeaderboard(ctx context.Context) (*model.LeaderboardSnapshot, error)
	SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry, rebuiltAt int64) error
	ClearLeaderboard(ctx context.Context) error

	// Admin roster operations
	GetAdmins(ctx context.Context) ([]model.AccountID, error)
	SaveAdmins(ctx context.Context, admins []model.AccountID) error

	// Storage price operations (base token units per byte)
	GetStoragePrice(ctx context.Context) (uint64, bool, error)
	SetStoragePrice(ctx context.Context, price uint64) error

	// Ledger-wide counters
	GetContractTotals(ctx context.Context) (*model.ContractTotals, error)

	// StorageBytes reports the metered storage footprint of the ledger
	StorageBytes(ctx context.Context) (int64, error)
}
