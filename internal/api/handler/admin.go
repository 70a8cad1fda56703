package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gameledger/internal/api/middleware"
	"gameledger/internal/api/request"
	"gameledger/internal/api/response"
	"gameledger/internal/model"
	"gameledger/internal/services/access"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/ledger"
	"gameledger/internal/services/metering"
)

// AdminHandler handles owner and admin management endpoints
type AdminHandler struct {
	accessService      *access.Service
	meteringService    *metering.Service
	leaderboardService *leaderboard.Service
	ledgerController   *ledger.Controller
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	accessService *access.Service,
	meteringService *metering.Service,
	leaderboardService *leaderboard.Service,
	ledgerController *ledger.Controller,
) *AdminHandler {
	return &AdminHandler{
		accessService:      accessService,
		meteringService:    meteringService,
		leaderboardService: leaderboardService,
		ledgerController:   ledgerController,
	}
}

// AddAdmin handles POST /api/v1/admin/admins
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.AddAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.AccountID == "" {
		WriteError(w, NewInvalidRequestError("account_id is required"))
		return
	}

	if err := h.accessService.AddAdmin(r.Context(), caller, model.AccountID(req.AccountID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// RemoveAdmin handles DELETE /api/v1/admin/admins/{account_id}
func (h *AdminHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())
	admin := model.AccountID(mux.Vars(r)["account_id"])

	if err := h.accessService.RemoveAdmin(r.Context(), caller, admin); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListAdmins handles GET /api/v1/admin/admins
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.accessService.ListAdmins(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Admins{Admins: admins})
}

// SetPrice handles PUT /api/v1/admin/price
func (h *AdminHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.SetPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.meteringService.SetPricePerByte(r.Context(), caller, req.PricePerByte); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetPrice handles GET /api/v1/admin/price
func (h *AdminHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.meteringService.PricePerByte(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Price{PricePerByte: price})
}

// RebuildLeaderboard handles POST /api/v1/admin/leaderboard/rebuild
func (h *AdminHandler) RebuildLeaderboard(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	if err := h.leaderboardService.ForceRebuild(r.Context(), caller); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Cleanup handles POST /api/v1/admin/cleanup
func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.CleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	removed, err := h.ledgerController.CleanupOldRecords(r.Context(), caller, req.OlderThan, req.Limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Cleanup{Removed: removed})
}
