package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"gameledger/internal/model"
)

// Emitter delivers structured ledger events to off-chain consumers.
// Emission is fire-and-forget: a failing sink must not affect the call
// that produced the event.
type Emitter interface {
	Emit(ctx context.Context, event model.Event)
}

// LogEmitter writes events as structured log lines, one per event.
// Indexers tail the log stream and filter on the "ledger event" message.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter creates an emitter backed by the given logger
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

var _ Emitter = (*LogEmitter)(nil)

// Emit logs the event with its payload serialized as JSON
func (e *LogEmitter) Emit(ctx context.Context, event model.Event) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		e.logger.Error("failed to serialize event payload",
			slog.String("event", string(event.Type)),
			slog.String("error", err.Error()),
		)
		return
	}

	e.logger.Info("ledger event",
		slog.String("event", string(event.Type)),
		slog.String("player_id", string(event.PlayerID)),
		slog.String("game_id", string(event.GameID)),
		slog.Int64("timestamp", event.Timestamp),
		slog.String("data", string(payload)),
	)
}

// Recorder captures emitted events in memory for tests
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

var _ Emitter = (*Recorder)(nil)

// Emit appends the event to the recorded list
func (r *Recorder) Emit(ctx context.Context, event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of all recorded events
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]model.Event, len(r.events))
	copy(events, r.events)
	return events
}

// OfType returns the recorded events matching the given type
func (r *Recorder) OfType(t model.EventType) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []model.Event
	for _, event := range r.events {
		if event.Type == t {
			matched = append(matched, event)
		}
	}
	return matched
}

// Reset discards all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
