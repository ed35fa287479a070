package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/squadup/squadup/internal/api/middleware"
	"github.com/squadup/squadup/internal/api/request"
	"github.com/squadup/squadup/internal/api/response"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/lfg"
)

// LFGHandler handles looking-for-group board endpoints
type LFGHandler struct {
	lfgService *lfg.Service
}

// NewLFGHandler creates a new LFG handler
func NewLFGHandler(lfgService *lfg.Service) *LFGHandler {
	return &LFGHandler{
		lfgService: lfgService,
	}
}

// List handles GET /api/v1/lfg?game_id=...&region=...&limit=20
func (h *LFGHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := lfg.Filter{
		GameID: model.GameID(q.Get("game_id")),
		Region: q.Get("region"),
	}
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		filter.Limit = parsed
	}

	posts, err := h.lfgService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EnrichedLFGPostsFromService(posts))
}

// Create handles POST /api/v1/lfg
func (h *LFGHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateLFGPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	post, err := h.lfgService.Create(r.Context(), middleware.UserID(r.Context()), lfg.CreateInput{
		GameID:        model.GameID(req.GameID),
		Title:         req.Title,
		Description:   req.Description,
		SkillLevel:    req.SkillLevel,
		PlayersNeeded: req.PlayersNeeded,
		ScheduledTime: req.ScheduledTime,
		Tags:          req.Tags,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.LFGPostFromModel(post))
}

// Update handles PATCH /api/v1/lfg/{post_id}
func (h *LFGHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID := model.LFGPostID(mux.Vars(r)["post_id"])

	var req request.UpdateLFGPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	update := model.LFGPostUpdate{
		Title:         req.Title,
		Description:   req.Description,
		SkillLevel:    req.SkillLevel,
		PlayersNeeded: req.PlayersNeeded,
		Tags:          req.Tags,
		IsActive:      req.IsActive,
	}
	if req.ScheduledTime != nil {
		t := time.UnixMilli(*req.ScheduledTime)
		update.ScheduledTime = &t
	}

	post, err := h.lfgService.Update(r.Context(), middleware.UserID(r.Context()), postID, update)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.LFGPostFromModel(post))
}

// Delete handles DELETE /api/v1/lfg/{post_id}
func (h *LFGHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID := model.LFGPostID(mux.Vars(r)["post_id"])

	if err := h.lfgService.Delete(r.Context(), middleware.UserID(r.Context()), postID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Mine handles GET /api/v1/lfg/mine
func (h *LFGHandler) Mine(w http.ResponseWriter, r *http.Request) {
	posts, err := h.lfgService.GetMyPosts(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EnrichedLFGPostsFromService(posts))
}
