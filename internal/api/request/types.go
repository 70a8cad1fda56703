package request

import "gameledger/internal/model"

// StoreRecordRequest is the payload for storing a completed game record.
// Payment is the token amount attached to cover the storage charge.
type StoreRecordRequest struct {
	GameID          string           `json:"game_id"`
	PlayerID        string           `json:"player_id"`
	TargetNumber    int              `json:"target_number"`
	Attempts        int              `json:"attempts"`
	Guesses         []int            `json:"guesses"`
	DurationSeconds int64            `json:"duration_seconds"`
	Timestamp       int64            `json:"timestamp"`
	Success         bool             `json:"success"`
	Difficulty      model.Difficulty `json:"difficulty"`
	Score           int64            `json:"score"`
	Payment         uint64           `json:"payment"`
}

// ToModel converts the request into a game record
func (r *StoreRecordRequest) ToModel() *model.GameRecord {
	return &model.GameRecord{
		GameID:          model.GameID(r.GameID),
		PlayerID:        model.AccountID(r.PlayerID),
		TargetNumber:    r.TargetNumber,
		Attempts:        r.Attempts,
		Guesses:         r.Guesses,
		DurationSeconds: r.DurationSeconds,
		Timestamp:       r.Timestamp,
		Success:         r.Success,
		Difficulty:      r.Difficulty,
		Score:           r.Score,
	}
}

// AddAdminRequest is the payload for granting admin rights
type AddAdminRequest struct {
	AccountID string `json:"account_id"`
}

// SetPriceRequest is the payload for configuring the storage price
type SetPriceRequest struct {
	PricePerByte uint64 `json:"price_per_byte"`
}

// CleanupRequest is the payload for removing old game records
type CleanupRequest struct {
	OlderThan int64 `json:"older_than"`
	Limit     int   `json:"limit"`
}
