package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/squadup/squadup/internal/api/middleware"
	"github.com/squadup/squadup/internal/api/request"
	"github.com/squadup/squadup/internal/api/response"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/profile"
)

// ProfileHandler handles profile, game link, and availability endpoints
type ProfileHandler struct {
	profileService *profile.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Create handles POST /api/v1/profile
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.profileService.Create(r.Context(), middleware.UserID(r.Context()), profile.CreateInput{
		DisplayName:        req.DisplayName,
		Bio:                req.Bio,
		Region:             req.Region,
		CommunicationStyle: req.CommunicationStyle,
		DiscordTag:         req.DiscordTag,
		SteamID:            req.SteamID,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ProfileFromModel(created))
}

// Update handles PATCH /api/v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.profileService.Update(r.Context(), middleware.UserID(r.Context()), model.ProfileUpdate{
		DisplayName:        req.DisplayName,
		Bio:                req.Bio,
		Region:             req.Region,
		CommunicationStyle: req.CommunicationStyle,
		DiscordTag:         req.DiscordTag,
		SteamID:            req.SteamID,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(updated))
}

// GetMe handles GET /api/v1/profile
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	h.writeEnriched(w, r, middleware.UserID(r.Context()))
}

// Get handles GET /api/v1/profiles/{user_id}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])
	h.writeEnriched(w, r, userID)
}

func (h *ProfileHandler) writeEnriched(w http.ResponseWriter, r *http.Request, userID model.UserID) {
	enriched, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EnrichedProfileFromService(enriched))
}

// AddGame handles POST /api/v1/profile/games
func (h *ProfileHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	var req request.AddGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	link, err := h.profileService.AddGame(r.Context(), middleware.UserID(r.Context()), profile.GameInput{
		GameID:        model.GameID(req.GameID),
		SkillLevel:    req.SkillLevel,
		HoursPlayed:   req.HoursPlayed,
		PreferredRole: req.PreferredRole,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserGameFromModel(link))
}

// RemoveGame handles DELETE /api/v1/profile/games/{game_id}
func (h *ProfileHandler) RemoveGame(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	if err := h.profileService.RemoveGame(r.Context(), middleware.UserID(r.Context()), gameID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// SetAvailability handles PUT /api/v1/profile/availability
func (h *ProfileHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	slots := make([]model.AvailabilitySlot, len(req.Slots))
	for i, s := range req.Slots {
		slots[i] = model.AvailabilitySlot{
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Timezone:  s.Timezone,
		}
	}

	if err := h.profileService.SetAvailability(r.Context(), middleware.UserID(r.Context()), slots); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
