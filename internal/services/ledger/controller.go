package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"gameledger/internal/dependencies/clock"
	"gameledger/internal/events"
	"gameledger/internal/model"
	"gameledger/internal/services/access"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/metering"
	"gameledger/internal/storage"
)

// Version identifies the ledger implementation in contract stats
const Version = "1.0.0"

// DefaultQueryLimit is used when a range query passes no limit
const DefaultQueryLimit = 20

// MaxQueryLimit caps records returned by a single range query
const MaxQueryLimit = 100

// MaxSearchResults caps player search results
const MaxSearchResults = 20

// Controller owns the record store write path and the read queries.
// Every mutation flows through StoreGameRecord as one staged changeset:
// nothing is written until validation and payment settlement pass, so a
// failure at any point leaves zero observable state change.
type Controller struct {
	storage     storage.Storage
	access      *access.Service
	metering    *metering.Service
	meter       metering.Meter
	leaderboard *leaderboard.Service
	emitter     events.Emitter
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new ledger controller
func NewController(
	store storage.Storage,
	accessService *access.Service,
	meteringService *metering.Service,
	meter metering.Meter,
	leaderboardService *leaderboard.Service,
	emitter events.Emitter,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     store,
		access:      accessService,
		metering:    meteringService,
		meter:       meter,
		leaderboard: leaderboardService,
		emitter:     emitter,
		clock:       clk,
		logger:      logger,
	}
}

// StoreGameRecord persists a completed game record, updates the player's
// stats, and settles the storage charge against the attached payment.
// The attached payment must cover the storage bytes the call adds; any
// excess is reported as a refund in the receipt for the host to return.
func (c *Controller) StoreGameRecord(ctx context.Context, record *model.GameRecord, payment uint64) (*model.Receipt, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	exists, err := c.storage.GameRecordExists(ctx, record.GameID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateGame
	}

	prev, err := c.storage.GetPlayerStats(ctx, record.PlayerID)
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	stats, staged := applyRecord(prev, record)

	cs := &storage.Changeset{
		Record:    record,
		Stats:     stats,
		PrevStats: prev,
		NewPlayer: prev == nil,
	}

	delta, err := cs.StorageDelta()
	if err != nil {
		return nil, err
	}

	// Settlement is the last gate before commit: an underpaid call
	// discards the entire changeset
	settlement, err := c.metering.Settle(ctx, delta, payment)
	if err != nil {
		return nil, err
	}

	if err := c.storage.ApplyChangeset(ctx, cs); err != nil {
		return nil, err
	}

	for _, event := range staged {
		c.emitter.Emit(ctx, event)
	}
	c.emitter.Emit(ctx, model.Event{
		Type:      model.EventRecordAccepted,
		Timestamp: c.clock.Now().Unix(),
		PlayerID:  record.PlayerID,
		GameID:    record.GameID,
		Payload: model.RecordAcceptedPayload{
			Success:    record.Success,
			Attempts:   record.Attempts,
			Difficulty: record.Difficulty,
		},
	})

	if err := c.leaderboard.InvalidateAfterWrite(ctx); err != nil {
		// The record is committed; a failed cache clear only delays
		// freshness until the next read-side rebuild
		c.logger.Warn("leaderboard invalidation failed",
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("game record stored",
		slog.String("game_id", string(record.GameID)),
		slog.String("player_id", string(record.PlayerID)),
		slog.Bool("success", record.Success),
		slog.Int64("storage_delta", settlement.Delta),
		slog.Uint64("refund", settlement.Refund),
	)

	return &model.Receipt{
		GameID:       record.GameID,
		StorageDelta: settlement.Delta,
		Required:     settlement.Required,
		Refund:       settlement.Refund,
	}, nil
}

// applyRecord computes the player's post-insertion stats and the events
// the update produces. The update order is fixed: counters first, then
// the win/best-score check, then the derived win rate and running mean.
func applyRecord(prev *model.PlayerStats, record *model.GameRecord) (*model.PlayerStats, []model.Event) {
	stats := &model.PlayerStats{PlayerID: record.PlayerID}
	if prev != nil {
		copied := *prev
		stats = &copied
	}

	var staged []model.Event

	stats.TotalGames++
	stats.TotalTime += record.DurationSeconds
	stats.LastPlayed = record.Timestamp
	stats.TotalScore += record.Score

	if record.Success {
		stats.TotalWins++
		if !stats.HasBestScore() || record.Attempts < stats.BestScore {
			// The very first win sets the best silently; only an
			// improvement over an existing best announces itself
			if stats.HasBestScore() {
				staged = append(staged, model.Event{
					Type:      model.EventNewBestScore,
					Timestamp: record.Timestamp,
					PlayerID:  record.PlayerID,
					GameID:    record.GameID,
					Payload: model.NewBestScorePayload{
						NewBest:      record.Attempts,
						PreviousBest: stats.BestScore,
					},
				})
			}
			stats.BestScore = record.Attempts
		}
	}

	// Fully recomputed each time so it cannot drift
	stats.WinRate = float64(stats.TotalWins) / float64(stats.TotalGames) * 100

	// Insertion-order running mean: replaying records in a different
	// order yields a different value
	n := float64(stats.TotalGames)
	stats.AverageAttempts = (stats.AverageAttempts*(n-1) + float64(record.Attempts)) / n

	staged = append(staged, model.Event{
		Type:      model.EventStatsUpdated,
		Timestamp: record.Timestamp,
		PlayerID:  record.PlayerID,
		GameID:    record.GameID,
		Payload: model.StatsUpdatedPayload{
			TotalGames: stats.TotalGames,
			WinRate:    stats.WinRate,
		},
	})

	return stats, staged
}

// GetGameRecord returns a record by id, or nil if it does not exist
func (c *Controller) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	record, err := c.storage.GetGameRecord(ctx, id)
	if errors.Is(err, model.ErrGameNotFound) {
		return nil, nil
	}
	return record, err
}

// GetGameRecords returns records for the given ids; missing ids yield
// nil entries at their positions
func (c *Controller) GetGameRecords(ctx context.Context, ids []model.GameID) ([]*model.GameRecord, error) {
	records := make([]*model.GameRecord, len(ids))
	for i, id := range ids {
		record, err := c.GetGameRecord(ctx, id)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}

// GetPlayerStats returns a player's stats, or nil if they have none
func (c *Controller) GetPlayerStats(ctx context.Context, playerID model.AccountID) (*model.PlayerStats, error) {
	stats, err := c.storage.GetPlayerStats(ctx, playerID)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil, nil
	}
	return stats, err
}

// GetPlayerGames pages through a player's history most-recently-inserted
// first, by indexing backward into the append-only per-player id list.
// Ordering follows insertion, not record timestamps.
func (c *Controller) GetPlayerGames(ctx context.Context, playerID model.AccountID, fromIndex, limit int) ([]*model.GameRecord, error) {
	limit = clampLimit(limit)
	if fromIndex < 0 {
		fromIndex = 0
	}

	ids, err := c.storage.GetPlayerGameIDs(ctx, playerID)
	if err != nil {
		return nil, err
	}

	total := len(ids)
	records := make([]*model.GameRecord, 0, limit)
	for i := fromIndex; i < fromIndex+limit && i < total; i++ {
		record, err := c.GetGameRecord(ctx, ids[total-1-i])
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// GetRecentGames returns the newest records by timestamp across all
// players. This is a full scan and sort; it never runs on the write path.
func (c *Controller) GetRecentGames(ctx context.Context, limit int) ([]*model.GameRecord, error) {
	limit = clampLimit(limit)

	records, err := c.storage.ListGameRecords(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	if limit > len(records) {
		limit = len(records)
	}
	return records[:limit], nil
}

// SearchPlayers scans player identities for a case-insensitive substring
// match, returning at most MaxSearchResults accounts
func (c *Controller) SearchPlayers(ctx context.Context, query string) ([]model.AccountID, error) {
	allStats, err := c.storage.ListPlayerStats(ctx)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	results := make([]model.AccountID, 0)
	for _, stats := range allStats {
		if strings.Contains(strings.ToLower(string(stats.PlayerID)), queryLower) {
			results = append(results, stats.PlayerID)
			if len(results) >= MaxSearchResults {
				break
			}
		}
	}
	return results, nil
}

// GetContractStats returns the ledger-wide aggregate projection
func (c *Controller) GetContractStats(ctx context.Context) (*model.ContractStats, error) {
	totals, err := c.storage.GetContractTotals(ctx)
	if err != nil {
		return nil, err
	}

	allStats, err := c.storage.ListPlayerStats(ctx)
	if err != nil {
		return nil, err
	}
	var totalTime int64
	for _, stats := range allStats {
		totalTime += stats.TotalTime
	}

	bytes, err := c.meter.StorageBytes(ctx)
	if err != nil {
		return nil, err
	}

	return &model.ContractStats{
		TotalGames:    totals.TotalGames,
		TotalPlayers:  totals.TotalPlayers,
		TotalPlayTime: totalTime,
		Version:       Version,
		Owner:         c.access.Owner(),
		StorageBytes:  bytes,
	}, nil
}

// CleanupOldRecords deletes up to limit records older than the given
// timestamp from the record store. Admin or owner only.
//
// Player indexes and stats are deliberately not reconciled: derived
// state keeps referencing the deleted records. Known limitation carried
// over from the original contract semantics.
func (c *Controller) CleanupOldRecords(ctx context.Context, caller model.AccountID, olderThan int64, limit int) (int, error) {
	if err := c.access.AssertAdmin(ctx, caller); err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, nil
	}

	records, err := c.storage.ListGameRecords(ctx)
	if err != nil {
		return 0, err
	}

	ids := make([]model.GameID, 0, limit)
	for _, record := range records {
		if record.Timestamp < olderThan {
			ids = append(ids, record.GameID)
			if len(ids) >= limit {
				break
			}
		}
	}

	if len(ids) == 0 {
		return 0, nil
	}

	if err := c.storage.DeleteGameRecords(ctx, ids); err != nil {
		return 0, err
	}

	c.logger.Info("old records cleaned up",
		slog.Int("removed", len(ids)),
		slog.Int64("older_than", olderThan),
	)
	return len(ids), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}
