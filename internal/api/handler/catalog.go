package handler

import (
	"encoding/json"
	"net/http"

	"github.com/squadup/squadup/internal/api/request"
	"github.com/squadup/squadup/internal/api/response"
	"github.com/squadup/squadup/internal/services/catalog"
)

// CatalogHandler handles game catalog endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List handles GET /api/v1/games?category=FPS
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalogService.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesFromModels(games))
}

// Categories handles GET /api/v1/games/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	response.JSON(w, http.StatusOK, categories)
}

// Create handles POST /api/v1/games
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.catalogService.Create(r.Context(), req.Name, req.Category, req.Icon)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// Seed handles POST /api/v1/games/seed
func (h *CatalogHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.Seed(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.catalogService.List(r.Context(), "")
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesFromModels(games))
}
