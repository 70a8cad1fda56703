package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"gameledger/internal/api/request"
	"gameledger/internal/api/response"
	"gameledger/internal/model"
	"gameledger/internal/services/ledger"
)

// RecordHandler handles game record endpoints
type RecordHandler struct {
	ledgerController *ledger.Controller
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(ledgerController *ledger.Controller) *RecordHandler {
	return &RecordHandler{
		ledgerController: ledgerController,
	}
}

// Store handles POST /api/v1/records
func (h *RecordHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req request.StoreRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	receipt, err := h.ledgerController.StoreGameRecord(r.Context(), req.ToModel(), req.Payment)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ReceiptFromModel(receipt))
}

// Get handles GET /api/v1/records/{game_id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["game_id"])

	record, err := h.ledgerController.GetGameRecord(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if record == nil {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

// GetBatch handles GET /api/v1/records?ids=a,b,c
// Missing ids yield null entries at their positions
func (h *RecordHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		WriteError(w, NewInvalidRequestError("ids query parameter is required"))
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]model.GameID, 0, len(parts))
	for _, part := range parts {
		ids = append(ids, model.GameID(strings.TrimSpace(part)))
	}

	records, err := h.ledgerController.GetGameRecords(r.Context(), ids)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Records{Records: records})
}

// Recent handles GET /api/v1/records/recent
func (h *RecordHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	records, err := h.ledgerController.GetRecentGames(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Records{Records: records})
}
