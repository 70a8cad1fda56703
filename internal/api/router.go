package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"gameledger/internal/api/handler"
	"gameledger/internal/api/middleware"
	"gameledger/internal/services/access"
	"gameledger/internal/services/leaderboard"
	"gameledger/internal/services/ledger"
	"gameledger/internal/services/metering"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	LedgerController   *ledger.Controller
	AccessService      *access.Service
	MeteringService    *metering.Service
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	recordHandler := handler.NewRecordHandler(cfg.LedgerController)
	playerHandler := handler.NewPlayerHandler(cfg.LedgerController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.LedgerController)
	adminHandler := handler.NewAdminHandler(cfg.AccessService, cfg.MeteringService, cfg.LeaderboardService, cfg.LedgerController)

	// Create middleware
	callerMiddleware := middleware.Caller()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Record routes; /records/recent must register before /records/{game_id}
	api.Handle("/records", callerMiddleware(http.HandlerFunc(recordHandler.Store))).Methods(http.MethodPost)
	api.HandleFunc("/records", recordHandler.GetBatch).Methods(http.MethodGet)
	api.HandleFunc("/records/recent", recordHandler.Recent).Methods(http.MethodGet)
	api.HandleFunc("/records/{game_id}", recordHandler.Get).Methods(http.MethodGet)

	// Player routes (read-only, no caller required)
	api.HandleFunc("/players/search", playerHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/stats", playerHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/games", playerHandler.Games).Methods(http.MethodGet)

	// Leaderboard and aggregate stats
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/stats", leaderboardHandler.ContractStats).Methods(http.MethodGet)

	// Admin routes (all require a caller identity)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(callerMiddleware)
	admin.HandleFunc("/admins", adminHandler.AddAdmin).Methods(http.MethodPost)
	admin.HandleFunc("/admins", adminHandler.ListAdmins).Methods(http.MethodGet)
	admin.HandleFunc("/admins/{account_id}", adminHandler.RemoveAdmin).Methods(http.MethodDelete)
	admin.HandleFunc("/price", adminHandler.SetPrice).Methods(http.MethodPut)
	admin.HandleFunc("/price", adminHandler.GetPrice).Methods(http.MethodGet)
	admin.HandleFunc("/leaderboard/rebuild", adminHandler.RebuildLeaderboard).Methods(http.MethodPost)
	admin.HandleFunc("/cleanup", adminHandler.Cleanup).Methods(http.MethodPost)

	// Health check endpoint (no caller)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
