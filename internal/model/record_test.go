package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecord() *GameRecord {
	return &GameRecord{
		GameID:          "game-1",
		PlayerID:        "alice.test",
		TargetNumber:    42,
		Attempts:        3,
		Guesses:         []int{10, 50, 42},
		DurationSeconds: 60,
		Timestamp:       1700000000,
		Success:         true,
		Difficulty:      DifficultyNormal,
		Score:           150,
	}
}

func TestValidateAcceptsValidRecord(t *testing.T) {
	assert.NoError(t, validRecord().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameRecord)
		want   error
	}{
		{"empty game id", func(r *GameRecord) { r.GameID = "" }, ErrEmptyGameID},
		{"zero attempts", func(r *GameRecord) { r.Attempts = 0; r.Guesses = nil }, ErrInvalidAttempts},
		{"too many attempts", func(r *GameRecord) {
			r.Attempts = MaxAttempts + 1
			r.Guesses = make([]int, MaxAttempts+1)
			for i := range r.Guesses {
				r.Guesses[i] = 1
			}
		}, ErrInvalidAttempts},
		{"guess count mismatch", func(r *GameRecord) { r.Guesses = []int{10, 50} }, ErrGuessCountMismatch},
		{"target too low", func(r *GameRecord) { r.TargetNumber = MinGuess - 1 }, ErrTargetOutOfRange},
		{"target too high", func(r *GameRecord) { r.TargetNumber = MaxGuess + 1 }, ErrTargetOutOfRange},
		{"guess out of range", func(r *GameRecord) { r.Guesses[1] = MaxGuess + 1 }, ErrGuessOutOfRange},
		{"unknown difficulty", func(r *GameRecord) { r.Difficulty = "brutal" }, ErrInvalidDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)
			assert.ErrorIs(t, record.Validate(), tt.want)
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	// Attempt bounds are checked before the guess list
	record := validRecord()
	record.Attempts = 0
	record.Guesses = []int{MaxGuess + 1}
	assert.ErrorIs(t, record.Validate(), ErrInvalidAttempts)
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyNormal.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("").Valid())
	assert.False(t, Difficulty("brutal").Valid())
}

func TestHasBestScore(t *testing.T) {
	stats := &PlayerStats{}
	assert.False(t, stats.HasBestScore())

	stats.BestScore = 1
	assert.True(t, stats.HasBestScore())
}
