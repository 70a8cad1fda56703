package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"gameledger/internal/api/response"
	"gameledger/internal/model"
	"gameledger/internal/services/ledger"
)

// PlayerHandler handles player stats and history endpoints
type PlayerHandler struct {
	ledgerController *ledger.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(ledgerController *ledger.Controller) *PlayerHandler {
	return &PlayerHandler{
		ledgerController: ledgerController,
	}
}

// Stats handles GET /api/v1/players/{player_id}/stats
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	playerID := model.AccountID(mux.Vars(r)["player_id"])

	stats, err := h.ledgerController.GetPlayerStats(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if stats == nil {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// Games handles GET /api/v1/players/{player_id}/games
func (h *PlayerHandler) Games(w http.ResponseWriter, r *http.Request) {
	playerID := model.AccountID(mux.Vars(r)["player_id"])

	fromIndex, err := queryInt(r, "from", 0)
	if err != nil {
		WriteError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	records, err := h.ledgerController.GetPlayerGames(r.Context(), playerID, fromIndex, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Records{Records: records})
}

// Search handles GET /api/v1/players/search?q=
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, NewInvalidRequestError("q query parameter is required"))
		return
	}

	players, err := h.ledgerController.SearchPlayers(r.Context(), query)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Players{Players: players})
}
