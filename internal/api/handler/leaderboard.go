package handler

import (
	"net/http"

	"gameledger/internal/api/response"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/ledger"
)

// LeaderboardHandler handles leaderboard and contract stats endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
	ledgerController   *ledger.Controller
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service, ledgerController *ledger.Controller) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		ledgerController:   ledgerController,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	entries, err := h.leaderboardService.Get(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Leaderboard{Entries: entries})
}

// ContractStats handles GET /api/v1/stats
func (h *LeaderboardHandler) ContractStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledgerController.GetContractStats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
