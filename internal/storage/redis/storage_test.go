package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"gameledger/internal/model"
	"gameledger/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) record(id model.GameID, player model.AccountID) *model.GameRecord {
	return &model.GameRecord{
		GameID:          id,
		PlayerID:        player,
		TargetNumber:    42,
		Attempts:        3,
		Guesses:         []int{10, 50, 42},
		DurationSeconds: 60,
		Timestamp:       1700000000,
		Success:         true,
		Difficulty:      model.DifficultyNormal,
		Score:           150,
	}
}

func (s *StorageSuite) apply(record *model.GameRecord, newPlayer bool) {
	cs := &storage.Changeset{
		Record: record,
		Stats: &model.PlayerStats{
			PlayerID:   record.PlayerID,
			TotalGames: 1,
		},
		NewPlayer: newPlayer,
	}
	err := s.storage.ApplyChangeset(s.ctx, cs)
	s.Require().NoError(err)
}

// Record tests

func (s *StorageSuite) TestApplyChangesetStoresRecord() {
	record := s.record("game-1", "alice.test")
	s.apply(record, true)

	retrieved, err := s.storage.GetGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(record.GameID, retrieved.GameID)
	s.Equal(record.Guesses, retrieved.Guesses)

	exists, err := s.storage.GameRecordExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestGetGameRecordNotFound() {
	_, err := s.storage.GetGameRecord(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestApplyChangesetAppendsPlayerIndex() {
	s.apply(s.record("game-1", "alice.test"), true)
	s.apply(s.record("game-2", "alice.test"), false)

	ids, err := s.storage.GetPlayerGameIDs(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-1", "game-2"}, ids)
}

func (s *StorageSuite) TestApplyChangesetUpdatesTotals() {
	s.apply(s.record("game-1", "alice.test"), true)
	s.apply(s.record("game-2", "alice.test"), false)
	s.apply(s.record("game-3", "bob.test"), true)

	totals, err := s.storage.GetContractTotals(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), totals.TotalGames)
	s.Equal(int64(2), totals.TotalPlayers)
}

func (s *StorageSuite) TestApplyChangesetMetersBytes() {
	record := s.record("game-1", "alice.test")
	s.apply(record, true)

	bytes, err := s.storage.StorageBytes(s.ctx)
	s.Require().NoError(err)
	s.Positive(bytes)
}

func (s *StorageSuite) TestListGameRecords() {
	s.apply(s.record("game-1", "alice.test"), true)
	s.apply(s.record("game-2", "bob.test"), true)

	records, err := s.storage.ListGameRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)
}

func (s *StorageSuite) TestDeleteGameRecords() {
	s.apply(s.record("game-1", "alice.test"), true)
	s.apply(s.record("game-2", "alice.test"), false)

	before, err := s.storage.StorageBytes(s.ctx)
	s.Require().NoError(err)

	err = s.storage.DeleteGameRecords(s.ctx, []model.GameID{"game-1"})
	s.Require().NoError(err)

	_, err = s.storage.GetGameRecord(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	records, err := s.storage.ListGameRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 1)

	after, err := s.storage.StorageBytes(s.ctx)
	s.Require().NoError(err)
	s.Less(after, before)
}

// Stats tests

func (s *StorageSuite) TestGetPlayerStatsNotFound() {
	_, err := s.storage.GetPlayerStats(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayerStats() {
	s.apply(s.record("game-1", "alice.test"), true)
	s.apply(s.record("game-2", "bob.test"), true)

	all, err := s.storage.ListPlayerStats(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

// Leaderboard tests

func (s *StorageSuite) TestSaveAndGetLeaderboard() {
	entries := []model.LeaderboardEntry{
		{Rank: 1, PlayerID: "alice.test", WinRate: 100},
		{Rank: 2, PlayerID: "bob.test", WinRate: 50},
	}

	err := s.storage.SaveLeaderboard(s.ctx, entries, 1700000000)
	s.Require().NoError(err)

	snapshot, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1700000000), snapshot.RebuiltAt)
	s.Equal(entries, snapshot.Entries)
}

func (s *StorageSuite) TestGetLeaderboardEmpty() {
	snapshot, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(snapshot.Entries)
	s.Zero(snapshot.RebuiltAt)
}

func (s *StorageSuite) TestClearLeaderboard() {
	entries := []model.LeaderboardEntry{{Rank: 1, PlayerID: "alice.test"}}
	_ = s.storage.SaveLeaderboard(s.ctx, entries, 1700000000)

	err := s.storage.ClearLeaderboard(s.ctx)
	s.Require().NoError(err)

	snapshot, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(snapshot.Entries)
	s.Zero(snapshot.RebuiltAt)
}

// Admin roster tests

func (s *StorageSuite) TestSaveAndGetAdmins() {
	admins := []model.AccountID{"alice.test", "bob.test"}

	err := s.storage.SaveAdmins(s.ctx, admins)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAdmins(s.ctx)
	s.Require().NoError(err)
	s.Equal(admins, retrieved)
}

func (s *StorageSuite) TestGetAdminsEmpty() {
	admins, err := s.storage.GetAdmins(s.ctx)
	s.Require().NoError(err)
	s.Empty(admins)
}

// Price tests

func (s *StorageSuite) TestStoragePriceUnsetByDefault() {
	_, ok, err := s.storage.GetStoragePrice(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StorageSuite) TestSetAndGetStoragePrice() {
	err := s.storage.SetStoragePrice(s.ctx, 10)
	s.Require().NoError(err)

	price, ok, err := s.storage.GetStoragePrice(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(uint64(10), price)
}

func (s *StorageSuite) TestStorageBytesZeroByDefault() {
	bytes, err := s.storage.StorageBytes(s.ctx)
	s.Require().NoError(err)
	s.Zero(bytes)
}
