package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"gameledger/internal/dependencies/clock"
	"gameledger/internal/model"
	"gameledger/internal/services/access"
	"gameledger/internal/storage"
)

// DefaultLimit is the number of entries returned when no limit is given
const DefaultLimit = 10

// MaxLimit caps the number of entries a single call can return
const MaxLimit = 100

// Config holds the two staleness thresholds for the cached leaderboard.
//
// Reads rebuild the cache once it is older than ReadStaleness. Writes
// clear it only once it is older than WriteStaleness, which is
// deliberately larger: the cache may serve up to ReadStaleness-old data,
// but a burst of inserts does not force a rebuild on every write. Keep
// the two independently tunable.
type Config struct {
	ReadStaleness  time.Duration
	WriteStaleness time.Duration
}

// DefaultConfig returns the standard staleness thresholds
func DefaultConfig() Config {
	return Config{
		ReadStaleness:  30 * time.Minute,
		WriteStaleness: time.Hour,
	}
}

// Service maintains the derived, fully-rebuildable ranking snapshot.
// The cache is never a source of truth: it can be discarded at any time
// and rebuilt wholesale from the stored player stats.
type Service struct {
	storage storage.Storage
	access  *access.Service
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new leaderboard service
func New(store storage.Storage, accessService *access.Service, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		access:  accessService,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Get returns up to limit entries in rank order, rebuilding the cache
// first if it is empty or older than the read staleness threshold.
func (s *Service) Get(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	snapshot, err := s.storage.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if len(snapshot.Entries) == 0 || now.Unix()-snapshot.RebuiltAt > int64(s.cfg.ReadStaleness.Seconds()) {
		entries, err := s.Rebuild(ctx)
		if err != nil {
			return nil, err
		}
		snapshot = &model.LeaderboardSnapshot{Entries: entries, RebuiltAt: now.Unix()}
	}

	if limit > len(snapshot.Entries) {
		limit = len(snapshot.Entries)
	}
	return snapshot.Entries[:limit], nil
}

// Rebuild gathers every player's stats, ranks them, and replaces the
// cache wholesale. There is no incremental merge.
func (s *Service) Rebuild(ctx context.Context) ([]model.LeaderboardEntry, error) {
	allStats, err := s.storage.ListPlayerStats(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(allStats))
	for _, stats := range allStats {
		entries = append(entries, model.LeaderboardEntry{
			PlayerID:        stats.PlayerID,
			TotalGames:      stats.TotalGames,
			WinRate:         stats.WinRate,
			AverageAttempts: stats.AverageAttempts,
			BestScore:       stats.BestScore,
			TotalScore:      stats.TotalScore,
		})
	}

	// Composite ranking: win rate desc, then average attempts asc,
	// then total score desc
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].WinRate != entries[j].WinRate {
			return entries[i].WinRate > entries[j].WinRate
		}
		if entries[i].AverageAttempts != entries[j].AverageAttempts {
			return entries[i].AverageAttempts < entries[j].AverageAttempts
		}
		return entries[i].TotalScore > entries[j].TotalScore
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	rebuiltAt := s.clock.Now().Unix()
	if err := s.storage.SaveLeaderboard(ctx, entries, rebuiltAt); err != nil {
		return nil, err
	}

	s.logger.Info("leaderboard rebuilt",
		slog.Int("players", len(entries)),
	)
	return entries, nil
}

// ForceRebuild rebuilds the cache immediately. Admin or owner only.
func (s *Service) ForceRebuild(ctx context.Context, caller model.AccountID) error {
	if err := s.access.AssertAdmin(ctx, caller); err != nil {
		return err
	}

	_, err := s.Rebuild(ctx)
	return err
}

// InvalidateAfterWrite opportunistically clears the cache after an
// accepted insertion once it is older than the write staleness
// threshold. The next read then pays for the rebuild.
func (s *Service) InvalidateAfterWrite(ctx context.Context) error {
	snapshot, err := s.storage.GetLeaderboard(ctx)
	if err != nil {
		return err
	}
	if snapshot.RebuiltAt == 0 {
		return nil // Already invalid
	}

	if s.clock.Now().Unix()-snapshot.RebuiltAt > int64(s.cfg.WriteStaleness.Seconds()) {
		return s.storage.ClearLeaderboard(ctx)
	}
	return nil
}
