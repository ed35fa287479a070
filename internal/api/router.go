package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/squadup/squadup/internal/api/handler"
	"github.com/squadup/squadup/internal/api/middleware"
	logmw "github.com/squadup/squadup/internal/middleware"
	"github.com/squadup/squadup/internal/services/auth"
	"github.com/squadup/squadup/internal/services/catalog"
	"github.com/squadup/squadup/internal/services/lfg"
	"github.com/squadup/squadup/internal/services/matchledger"
	"github.com/squadup/squadup/internal/services/matchmaking"
	"github.com/squadup/squadup/internal/services/message"
	"github.com/squadup/squadup/internal/services/profile"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	ProfileService     *profile.Service
	CatalogService     *catalog.Service
	MatchmakingService *matchmaking.Service
	LedgerService      *matchledger.Service
	LFGService         *lfg.Service
	MessageService     *message.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)
	matchHandler := handler.NewMatchHandler(cfg.MatchmakingService, cfg.LedgerService, cfg.MessageService)
	lfgHandler := handler.NewLFGHandler(cfg.LFGService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := logmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required for registering/logging in)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	usersProtected := api.PathPrefix("/users").Subrouter()
	usersProtected.Use(authMiddleware)
	usersProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	usersProtected.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)

	// Profile routes (all require auth)
	profileRoutes := api.PathPrefix("/profile").Subrouter()
	profileRoutes.Use(authMiddleware)
	profileRoutes.HandleFunc("", profileHandler.Create).Methods(http.MethodPost)
	profileRoutes.HandleFunc("", profileHandler.Update).Methods(http.MethodPatch)
	profileRoutes.HandleFunc("", profileHandler.GetMe).Methods(http.MethodGet)
	profileRoutes.HandleFunc("/games", profileHandler.AddGame).Methods(http.MethodPost)
	profileRoutes.HandleFunc("/games/{game_id}", profileHandler.RemoveGame).Methods(http.MethodDelete)
	profileRoutes.HandleFunc("/availability", profileHandler.SetAvailability).Methods(http.MethodPut)

	profiles := api.PathPrefix("/profiles").Subrouter()
	profiles.Use(authMiddleware)
	profiles.HandleFunc("/{user_id}", profileHandler.Get).Methods(http.MethodGet)

	// Game catalog routes (reads require auth like everything else;
	// creation is open to any signed-in user, matching the shared catalog)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", catalogHandler.List).Methods(http.MethodGet)
	games.HandleFunc("", catalogHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/categories", catalogHandler.Categories).Methods(http.MethodGet)
	games.HandleFunc("/seed", catalogHandler.Seed).Methods(http.MethodPost)

	// Matchmaking routes
	matchmakingRoutes := api.PathPrefix("/matchmaking").Subrouter()
	matchmakingRoutes.Use(authMiddleware)
	matchmakingRoutes.HandleFunc("/suggestions", matchHandler.Suggestions).Methods(http.MethodGet)

	// Match routes
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("", matchHandler.List).Methods(http.MethodGet)
	matches.HandleFunc("/{match_id}/respond", matchHandler.Respond).Methods(http.MethodPost)
	matches.HandleFunc("/{match_id}/messages", matchHandler.SendMessage).Methods(http.MethodPost)
	matches.HandleFunc("/{match_id}/messages", matchHandler.ListMessages).Methods(http.MethodGet)

	// LFG board routes
	lfgRoutes := api.PathPrefix("/lfg").Subrouter()
	lfgRoutes.Use(authMiddleware)
	lfgRoutes.HandleFunc("", lfgHandler.List).Methods(http.MethodGet)
	lfgRoutes.HandleFunc("", lfgHandler.Create).Methods(http.MethodPost)
	lfgRoutes.HandleFunc("/mine", lfgHandler.Mine).Methods(http.MethodGet)
	lfgRoutes.HandleFunc("/{post_id}", lfgHandler.Update).Methods(http.MethodPatch)
	lfgRoutes.HandleFunc("/{post_id}", lfgHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
