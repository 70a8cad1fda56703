package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gameledger/internal/dependencies/mocks"
	"gameledger/internal/events"
	"gameledger/internal/model"
	"gameledger/internal/services/access"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/metering"
	"gameledger/internal/storage/memory"
	"gameledger/internal/testutil"
)

const testOwner = model.AccountID("owner.test")

// Large enough to cover any record's storage charge at price 1
const ample = uint64(1_000_000)

type ControllerSuite struct {
	suite.Suite
	storage     *memory.Storage
	access      *access.Service
	metering    *metering.Service
	leaderboard *leaderboard.Service
	recorder    *events.Recorder
	clock       *mocks.MockClock
	controller  *Controller
	ctx         context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.access = access.New(s.storage, testOwner, logger)
	s.metering = metering.New(s.storage, s.access, 1, logger)
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.leaderboard = leaderboard.New(s.storage, s.access, s.clock, leaderboard.DefaultConfig(), logger)
	s.recorder = events.NewRecorder()
	meter := metering.NewStorageMeter(s.storage)
	s.controller = NewController(s.storage, s.access, s.metering, meter, s.leaderboard, s.recorder, s.clock, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) record(id model.GameID, player model.AccountID, attempts int, success bool) *model.GameRecord {
	guesses := make([]int, attempts)
	for i := range guesses {
		guesses[i] = 100 + i
	}
	return &model.GameRecord{
		GameID:          id,
		PlayerID:        player,
		TargetNumber:    42,
		Attempts:        attempts,
		Guesses:         guesses,
		DurationSeconds: 60,
		Timestamp:       1700000000,
		Success:         success,
		Difficulty:      model.DifficultyNormal,
		Score:           100,
	}
}

func (s *ControllerSuite) store(record *model.GameRecord) *model.Receipt {
	receipt, err := s.controller.StoreGameRecord(s.ctx, record, ample)
	s.Require().NoError(err)
	return receipt
}

// StoreGameRecord tests

func (s *ControllerSuite) TestStoreGameRecordSucceeds() {
	receipt := s.store(s.record("game-1", "alice.test", 3, true))

	s.Equal(model.GameID("game-1"), receipt.GameID)
	s.Positive(receipt.StorageDelta)
	s.Equal(uint64(receipt.StorageDelta), receipt.Required)
	s.Equal(ample-receipt.Required, receipt.Refund)

	stored, err := s.controller.GetGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(model.AccountID("alice.test"), stored.PlayerID)
}

func (s *ControllerSuite) TestStoreGameRecordValidates() {
	record := s.record("", "alice.test", 3, true)
	_, err := s.controller.StoreGameRecord(s.ctx, record, ample)
	s.ErrorIs(err, model.ErrEmptyGameID)

	record = s.record("game-1", "alice.test", 3, true)
	record.Guesses = []int{1, 2}
	_, err = s.controller.StoreGameRecord(s.ctx, record, ample)
	s.ErrorIs(err, model.ErrGuessCountMismatch)

	record = s.record("game-1", "alice.test", 3, true)
	record.Guesses[1] = model.MaxGuess + 1
	_, err = s.controller.StoreGameRecord(s.ctx, record, ample)
	s.ErrorIs(err, model.ErrGuessOutOfRange)

	record = s.record("game-1", "alice.test", 3, true)
	record.Difficulty = "brutal"
	_, err = s.controller.StoreGameRecord(s.ctx, record, ample)
	s.ErrorIs(err, model.ErrInvalidDifficulty)
}

func (s *ControllerSuite) TestStoreGameRecordRejectsDuplicate() {
	s.store(s.record("game-1", "alice.test", 3, true))

	_, err := s.controller.StoreGameRecord(s.ctx, s.record("game-1", "alice.test", 5, false), ample)
	s.ErrorIs(err, model.ErrDuplicateGame)

	// The duplicate must leave every projection untouched
	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Equal(1, stats.TotalGames)

	totals, err := s.storage.GetContractTotals(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), totals.TotalGames)
}

func (s *ControllerSuite) TestUnderpaidSubmissionLeavesNoTrace() {
	record := s.record("game-1", "alice.test", 3, true)
	_, err := s.controller.StoreGameRecord(s.ctx, record, 0)
	s.ErrorIs(err, model.ErrInsufficientPayment)

	stored, err := s.controller.GetGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Nil(stored)

	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Nil(stats)

	bytes, err := s.storage.StorageBytes(s.ctx)
	s.Require().NoError(err)
	s.Zero(bytes)

	s.Empty(s.recorder.Events())
}

func (s *ControllerSuite) TestConfiguredPriceScalesCharge() {
	err := s.metering.SetPricePerByte(s.ctx, testOwner, 3)
	s.Require().NoError(err)

	receipt := s.store(s.record("game-1", "alice.test", 3, true))
	s.Equal(uint64(receipt.StorageDelta)*3, receipt.Required)
}

// Stats update tests

func (s *ControllerSuite) TestStatsRunningMean() {
	s.store(s.record("game-1", "alice.test", 3, true))
	s.store(s.record("game-2", "alice.test", 10, false))

	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Equal(2, stats.TotalGames)
	s.Equal(1, stats.TotalWins)
	s.InDelta(6.5, stats.AverageAttempts, 0.0001)
	s.InDelta(50.0, stats.WinRate, 0.0001)
	s.Equal(int64(200), stats.TotalScore)
	s.Equal(int64(120), stats.TotalTime)
}

func (s *ControllerSuite) TestFirstWinSetsBestScoreSilently() {
	s.store(s.record("game-1", "alice.test", 5, true))

	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Equal(5, stats.BestScore)
	s.Empty(s.recorder.OfType(model.EventNewBestScore))
}

func (s *ControllerSuite) TestImprovedBestScoreEmitsEvent() {
	s.store(s.record("game-1", "alice.test", 5, true))
	s.store(s.record("game-2", "alice.test", 3, true))

	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Equal(3, stats.BestScore)

	bests := s.recorder.OfType(model.EventNewBestScore)
	s.Require().Len(bests, 1)
	payload := bests[0].Payload.(model.NewBestScorePayload)
	s.Equal(3, payload.NewBest)
	s.Equal(5, payload.PreviousBest)
}

func (s *ControllerSuite) TestLossLeavesBestScoreUnset() {
	s.store(s.record("game-1", "alice.test", 3, false))

	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.False(stats.HasBestScore())
}

func (s *ControllerSuite) TestEventOrderOnImprovedWin() {
	s.store(s.record("game-1", "alice.test", 5, true))
	s.recorder.Reset()

	s.store(s.record("game-2", "alice.test", 3, true))

	emitted := s.recorder.Events()
	s.Require().Len(emitted, 3)
	s.Equal(model.EventNewBestScore, emitted[0].Type)
	s.Equal(model.EventStatsUpdated, emitted[1].Type)
	s.Equal(model.EventRecordAccepted, emitted[2].Type)
}

// Query tests

func (s *ControllerSuite) TestGetGameRecordMissingReturnsNil() {
	record, err := s.controller.GetGameRecord(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Nil(record)
}

func (s *ControllerSuite) TestGetGameRecordsPreservesPositions() {
	s.store(s.record("game-1", "alice.test", 3, true))

	records, err := s.controller.GetGameRecords(s.ctx, []model.GameID{"game-1", "missing", "game-1"})
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.NotNil(records[0])
	s.Nil(records[1])
	s.NotNil(records[2])
}

func (s *ControllerSuite) TestGetPlayerGamesNewestInsertedFirst() {
	s.store(s.record("game-1", "alice.test", 3, true))
	s.store(s.record("game-2", "alice.test", 4, false))
	s.store(s.record("game-3", "alice.test", 5, true))

	records, err := s.controller.GetPlayerGames(s.ctx, "alice.test", 0, 2)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.GameID("game-3"), records[0].GameID)
	s.Equal(model.GameID("game-2"), records[1].GameID)

	records, err = s.controller.GetPlayerGames(s.ctx, "alice.test", 1, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.GameID("game-2"), records[0].GameID)
	s.Equal(model.GameID("game-1"), records[1].GameID)
}

func (s *ControllerSuite) TestGetPlayerGamesUnknownPlayerIsEmpty() {
	records, err := s.controller.GetPlayerGames(s.ctx, "nonexistent", 0, 10)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ControllerSuite) TestGetRecentGamesOrdersByTimestamp() {
	older := s.record("game-1", "alice.test", 3, true)
	older.Timestamp = 1700000000
	newer := s.record("game-2", "bob.test", 4, false)
	newer.Timestamp = 1700005000
	s.store(older)
	s.store(newer)

	records, err := s.controller.GetRecentGames(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.GameID("game-2"), records[0].GameID)
	s.Equal(model.GameID("game-1"), records[1].GameID)
}

func (s *ControllerSuite) TestSearchPlayersCaseInsensitive() {
	s.store(s.record("game-1", "Alice.Near", 3, true))
	s.store(s.record("game-2", "bob.near", 4, false))

	results, err := s.controller.SearchPlayers(s.ctx, "ALICE")
	s.Require().NoError(err)
	s.Equal([]model.AccountID{"Alice.Near"}, results)

	results, err = s.controller.SearchPlayers(s.ctx, "near")
	s.Require().NoError(err)
	s.Len(results, 2)
}

func (s *ControllerSuite) TestGetContractStats() {
	s.store(s.record("game-1", "alice.test", 3, true))
	s.store(s.record("game-2", "bob.test", 4, false))

	stats, err := s.controller.GetContractStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), stats.TotalGames)
	s.Equal(int64(2), stats.TotalPlayers)
	s.Equal(int64(120), stats.TotalPlayTime)
	s.Equal(Version, stats.Version)
	s.Equal(testOwner, stats.Owner)
	s.Positive(stats.StorageBytes)
}

// Cleanup tests

func (s *ControllerSuite) TestCleanupRequiresAdmin() {
	_, err := s.controller.CleanupOldRecords(s.ctx, "alice.test", 1800000000, 10)
	s.ErrorIs(err, model.ErrNotAdmin)
}

func (s *ControllerSuite) TestCleanupRemovesOnlyOlderRecords() {
	older := s.record("game-1", "alice.test", 3, true)
	older.Timestamp = 1600000000
	newer := s.record("game-2", "alice.test", 4, false)
	newer.Timestamp = 1700000000
	s.store(older)
	s.store(newer)

	removed, err := s.controller.CleanupOldRecords(s.ctx, testOwner, 1650000000, 10)
	s.Require().NoError(err)
	s.Equal(1, removed)

	gone, err := s.controller.GetGameRecord(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Nil(gone)

	kept, err := s.controller.GetGameRecord(s.ctx, "game-2")
	s.Require().NoError(err)
	s.NotNil(kept)

	// Derived state intentionally survives cleanup
	stats, err := s.controller.GetPlayerStats(s.ctx, "alice.test")
	s.Require().NoError(err)
	s.Equal(2, stats.TotalGames)
}

func (s *ControllerSuite) TestCleanupHonorsLimit() {
	for i, id := range []model.GameID{"game-1", "game-2", "game-3"} {
		record := s.record(id, "alice.test", 3, true)
		record.Timestamp = int64(1600000000 + i)
		s.store(record)
	}

	removed, err := s.controller.CleanupOldRecords(s.ctx, testOwner, 1700000000, 2)
	s.Require().NoError(err)
	s.Equal(2, removed)

	records, err := s.storage.ListGameRecords(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *ControllerSuite) TestCleanupZeroLimitIsNoop() {
	s.store(s.record("game-1", "alice.test", 3, true))

	removed, err := s.controller.CleanupOldRecords(s.ctx, testOwner, 1800000000, 0)
	s.Require().NoError(err)
	s.Zero(removed)
}
