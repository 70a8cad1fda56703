package memory

import (
	"context"
	"sync"

	"gameledger/internal/model"
	"gameledger/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	records     map[model.GameID]*model.GameRecord
	playerGames map[model.AccountID][]model.GameID
	stats       map[model.AccountID]*model.PlayerStats
	leaderboard model.LeaderboardSnapshot
	admins      []model.AccountID
	price       uint64
	priceSet    bool
	totals      model.ContractTotals
	bytes       int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		records:     make(map[model.GameID]*model.GameRecord),
		playerGames: make(map[model.AccountID][]model.GameID),
		stats:       make(map[model.AccountID]*model.PlayerStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game record operations

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return record, nil
}

func (s *Storage) GameRecordExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok, nil
}

func (s *Storage) ListGameRecords(ctx context.Context) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.GameRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records, nil
}

func (s *Storage) DeleteGameRecords(ctx context.Context, ids []model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		record, ok := s.records[id]
		if !ok {
			continue
		}
		size, err := storage.EncodedRecordSize(record)
		if err != nil {
			return err
		}
		delete(s.records, id)
		s.bytes -= size
	}
	return nil
}

// Player index operations

func (s *Storage) GetPlayerGameIDs(ctx context.Context, playerID model.AccountID) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.playerGames[playerID]
	result := make([]model.GameID, len(ids))
	copy(result, ids)
	return result, nil
}

// Player stats operations

func (s *Storage) GetPlayerStats(ctx context.Context, playerID model.AccountID) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return stats, nil
}

func (s *Storage) ListPlayerStats(ctx context.Context) ([]*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.PlayerStats, 0, len(s.stats))
	for _, stats := range s.stats {
		all = append(all, stats)
	}
	return all, nil
}

// ApplyChangeset commits a record submission under a single lock hold
func (s *Storage) ApplyChangeset(ctx context.Context, cs *storage.Changeset) error {
	delta, err := cs.StorageDelta()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[cs.Record.GameID] = cs.Record
	s.playerGames[cs.Record.PlayerID] = append(s.playerGames[cs.Record.PlayerID], cs.Record.GameID)
	s.stats[cs.Stats.PlayerID] = cs.Stats
	s.totals.TotalGames++
	if cs.NewPlayer {
		s.totals.TotalPlayers++
	}
	s.bytes += delta
	return nil
}

// Leaderboard cache operations

func (s *Storage) GetLeaderboard(ctx context.Context) (*model.LeaderboardSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := model.LeaderboardSnapshot{
		Entries:   make([]model.LeaderboardEntry, len(s.leaderboard.Entries)),
		RebuiltAt: s.leaderboard.RebuiltAt,
	}
	copy(snapshot.Entries, s.leaderboard.Entries)
	return &snapshot, nil
}

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry, rebuiltAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboard = model.LeaderboardSnapshot{
		Entries:   make([]model.LeaderboardEntry, len(entries)),
		RebuiltAt: rebuiltAt,
	}
	copy(s.leaderboard.Entries, entries)
	return nil
}

func (s *Storage) ClearLeaderboard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboard = model.LeaderboardSnapshot{}
	return nil
}

// Admin roster operations

func (s *Storage) GetAdmins(ctx context.Context) ([]model.AccountID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admins := make([]model.AccountID, len(s.admins))
	copy(admins, s.admins)
	return admins, nil
}

func (s *Storage) SaveAdmins(ctx context.Context, admins []model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins = make([]model.AccountID, len(admins))
	copy(s.admins, admins)
	return nil
}

// Storage price operations

func (s *Storage) GetStoragePrice(ctx context.Context) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.price, s.priceSet, nil
}

func (s *Storage) SetStoragePrice(ctx context.Context, price uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.price = price
	s.priceSet = true
	return nil
}

// Ledger-wide counters

func (s *Storage) GetContractTotals(ctx context.Context) (*model.ContractTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := s.totals
	return &totals, nil
}

func (s *Storage) StorageBytes(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bytes, nil
}
