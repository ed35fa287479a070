package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/squadup/squadup/internal/api/middleware"
	"github.com/squadup/squadup/internal/api/request"
	"github.com/squadup/squadup/internal/api/response"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/matchledger"
	"github.com/squadup/squadup/internal/services/matchmaking"
	"github.com/squadup/squadup/internal/services/message"
)

// MatchHandler handles matchmaking suggestion, match, and chat endpoints
type MatchHandler struct {
	matchmakingService *matchmaking.Service
	ledgerService      *matchledger.Service
	messageService     *message.Service
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(mm *matchmaking.Service, ledger *matchledger.Service, messages *message.Service) *MatchHandler {
	return &MatchHandler{
		matchmakingService: mm,
		ledgerService:      ledger,
		messageService:     messages,
	}
}

// Suggestions handles GET /api/v1/matchmaking/suggestions?limit=10
func (h *MatchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	suggestions, err := h.matchmakingService.FindMatches(r.Context(), middleware.UserID(r.Context()), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SuggestionsFromService(suggestions))
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TargetUserID == "" {
		WriteError(w, NewInvalidRequestError("target_user_id is required"))
		return
	}

	match, err := h.ledgerService.Create(r.Context(), middleware.UserID(r.Context()), model.UserID(req.TargetUserID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MatchFromModel(match))
}

// Respond handles POST /api/v1/matches/{match_id}/respond
func (h *MatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	var req request.RespondMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	match, err := h.ledgerService.Respond(r.Context(), middleware.UserID(r.Context()), matchID, model.MatchStatus(req.Decision))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(match))
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.ledgerService.ListForUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EnrichedMatchesFromService(matches))
}

// SendMessage handles POST /api/v1/matches/{match_id}/messages
func (h *MatchHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	msg, err := h.messageService.Send(r.Context(), middleware.UserID(r.Context()), matchID, req.Content)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MessageFromModel(msg))
}

// ListMessages handles GET /api/v1/matches/{match_id}/messages
func (h *MatchHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	matchID := model.MatchID(mux.Vars(r)["match_id"])

	msgs, err := h.messageService.ListForMatch(r.Context(), middleware.UserID(r.Context()), matchID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MessagesFromModels(msgs))
}
