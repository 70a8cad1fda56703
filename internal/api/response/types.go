package response

import "gameledger/internal/model"

// Receipt is the response for an accepted game record
type Receipt struct {
	GameID       string `json:"game_id"`
	StorageDelta int64  `json:"storage_delta"`
	Required     uint64 `json:"required"`
	Refund       uint64 `json:"refund"`
}

// ReceiptFromModel converts a model receipt to a response
func ReceiptFromModel(receipt *model.Receipt) Receipt {
	return Receipt{
		GameID:       string(receipt.GameID),
		StorageDelta: receipt.StorageDelta,
		Required:     receipt.Required,
		Refund:       receipt.Refund,
	}
}

// Records wraps a list of game records
type Records struct {
	Records []*model.GameRecord `json:"records"`
}

// Players wraps a list of matched player accounts
type Players struct {
	Players []model.AccountID `json:"players"`
}

// Leaderboard wraps the ranked entries
type Leaderboard struct {
	Entries []model.LeaderboardEntry `json:"entries"`
}

// Admins wraps the admin roster
type Admins struct {
	Admins []model.AccountID `json:"admins"`
}

// Price is the response for the configured storage price
type Price struct {
	PricePerByte uint64 `json:"price_per_byte"`
}

// Cleanup is the response for a cleanup run
type Cleanup struct {
	Removed int `json:"removed"`
}
