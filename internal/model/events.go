package model

// EventType identifies the type of event
type EventType string

const (
	// EventRecordAccepted fires after a record submission commits
	EventRecordAccepted EventType = "record_accepted"
	// EventNewBestScore fires when a win improves on an existing best score.
	// A player's first win sets the best score without firing this event.
	EventNewBestScore EventType = "new_best_score"
	// EventStatsUpdated fires after every stats update
	EventStatsUpdated EventType = "stats_updated"
)

// Event is the base structure for all ledger events.
// Events are outbound notifications for off-chain indexers and dashboards;
// the ledger never consumes its own events.
type Event struct {
	Type      EventType
	Timestamp int64
	PlayerID  AccountID
	GameID    GameID // Empty for events not tied to a single record
	Payload   any    // Type-specific data
}

// RecordAcceptedPayload contains data for record accepted events
type RecordAcceptedPayload struct {
	Success    bool       `json:"success"`
	Attempts   int        `json:"attempts"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewBestScorePayload contains data for new best score events
type NewBestScorePayload struct {
	NewBest      int `json:"new_best"`
	PreviousBest int `json:"previous_best"`
}

// StatsUpdatedPayload contains data for stats updated events
type StatsUpdatedPayload struct {
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}
