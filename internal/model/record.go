package model

// GameID uniquely identifies a completed game record.
// IDs are generated by the submitting client; the ledger never derives them.
type GameID string

// AccountID identifies a caller or player account.
// Identity is authenticated by the host environment, not by the ledger.
type AccountID string

// Difficulty is the difficulty level a game was played at
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is one of the recognized levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// Guess bounds for a game record. The target and every guess must fall
// within [MinGuess, MaxGuess].
const (
	MinGuess = 1
	MaxGuess = 1000
)

// MaxAttempts is the upper bound on attempts in a single game
const MaxAttempts = 50

// GameRecord is an immutable record of one completed game.
// Once stored, a record is never modified and its GameID is never reused.
type GameRecord struct {
	GameID          GameID     `json:"game_id"`
	PlayerID        AccountID  `json:"player_id"`
	TargetNumber    int        `json:"target_number"`
	Attempts        int        `json:"attempts"`
	Guesses         []int      `json:"guesses"`
	DurationSeconds int64      `json:"duration_seconds"`
	Timestamp       int64      `json:"timestamp"`
	Success         bool       `json:"success"`
	Difficulty      Difficulty `json:"difficulty"`
	Score           int64      `json:"score"`
}

// Validate checks the structural bounds of a record.
// Checks run in a fixed order and the first failure wins; gameplay
// correctness beyond these bounds is not the ledger's concern.
func (r *GameRecord) Validate() error {
	if r.GameID == "" {
		return ErrEmptyGameID
	}
	if r.Attempts < 1 || r.Attempts > MaxAttempts {
		return ErrInvalidAttempts
	}
	if len(r.Guesses) != r.Attempts {
		return ErrGuessCountMismatch
	}
	if r.TargetNumber < MinGuess || r.TargetNumber > MaxGuess {
		return ErrTargetOutOfRange
	}
	for _, g := range r.Guesses {
		if g < MinGuess || g > MaxGuess {
			return ErrGuessOutOfRange
		}
	}
	if !r.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	return nil
}

// Receipt summarizes the settlement of an accepted record submission
type Receipt struct {
	GameID       GameID `json:"game_id"`
	StorageDelta int64  `json:"storage_delta"`
	Required     uint64 `json:"required"`
	Refund       uint64 `json:"refund"`
}
