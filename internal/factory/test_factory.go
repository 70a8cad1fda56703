package factory

import (
	"time"

	"gameledger/internal/dependencies/mocks"
	"gameledger/internal/events"
	"gameledger/internal/model"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/metering"
	"gameledger/internal/storage/memory"
	"gameledger/internal/testutil"
)

// TestOwner is the owner account used by test apps
const TestOwner = model.AccountID("owner.test")

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Recorder  *events.Recorder
}

// NewTestApp creates an App configured for testing with mocked
// dependencies: in-memory storage, a controllable clock, a recording
// event emitter, and a price of one token unit per byte.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	recorder := events.NewRecorder()

	app := newWithDependencies(
		store,
		mockClock,
		metering.NewStorageMeter(store),
		recorder,
		TestOwner,
		1,
		leaderboard.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Recorder:  recorder,
	}
}
