// Package catalog manages the shared game catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/squadup/squadup/internal/dependencies/ident"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage"
)

// Service provides game catalog operations
type Service struct {
	storage storage.Storage
	ids     ident.Generator
}

// New creates a new catalog service
func New(storage storage.Storage, ids ident.Generator) *Service {
	return &Service{
		storage: storage,
		ids:     ids,
	}
}

// List returns catalog games, optionally restricted to one category
func (s *Service) List(ctx context.Context, category string) ([]*model.Game, error) {
	if category != "" {
		return s.storage.ListGamesByCategory(ctx, category)
	}
	return s.storage.ListGames(ctx)
}

// Get retrieves a single catalog game
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// Categories returns the distinct categories in the catalog, sorted
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, g := range games {
		if g.Category == "" || seen[g.Category] {
			continue
		}
		seen[g.Category] = true
		categories = append(categories, g.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Create adds a game to the catalog. Names are unique: creating a name
// that already exists returns the existing game instead of a new one.
func (s *Service) Create(ctx context.Context, name, category, icon string) (*model.Game, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: game name is required", model.ErrValidation)
	}

	existing, err := s.storage.GetGameByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	game := &model.Game{
		ID:       model.GameID(s.ids.NewID("g_")),
		Name:     name,
		Category: category,
		Icon:     icon,
	}
	if err := s.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Seed inserts the built-in set of popular games, skipping any whose
// names are already present. Safe to call repeatedly.
func (s *Service) Seed(ctx context.Context) error {
	seed := []struct {
		name     string
		category string
	}{
		{"Counter-Strike 2", "FPS"},
		{"Valorant", "FPS"},
		{"Apex Legends", "Battle Royale"},
		{"Fortnite", "Battle Royale"},
		{"League of Legends", "MOBA"},
		{"Dota 2", "MOBA"},
		{"Overwatch 2", "FPS"},
		{"Rocket League", "Sports"},
		{"World of Warcraft", "MMO"},
		{"Destiny 2", "FPS"},
		{"Call of Duty: Warzone", "Battle Royale"},
		{"Rainbow Six Siege", "FPS"},
		{"Minecraft", "Sandbox"},
		{"Among Us", "Social"},
		{"Fall Guys", "Party"},
	}

	for _, g := range seed {
		if _, err := s.Create(ctx, g.name, g.category, ""); err != nil {
			return err
		}
	}
	return nil
}
