package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/squadup/squadup/internal/dependencies/clock"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage"
)

// Service provides profile, game link, and availability operations
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new profile service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// EnrichedProfile is a profile with the owner's game links and
// availability attached.
type EnrichedProfile struct {
	Profile      *model.Profile
	Games        []*model.UserGame
	Availability []model.AvailabilitySlot
}

// CreateInput holds the fields a user sets when creating their profile
type CreateInput struct {
	DisplayName        string
	Bio                string
	Region             string
	CommunicationStyle string
	DiscordTag         string
	SteamID            string
}

// Create creates the caller's profile. Creating a profile that already
// exists is not an error: the existing profile is returned untouched.
func (s *Service) Create(ctx context.Context, userID model.UserID, in CreateInput) (*model.Profile, error) {
	if userID == "" {
		return nil, model.ErrNotAuthenticated
	}
	if in.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name is required", model.ErrValidation)
	}
	if in.Region == "" {
		return nil, fmt.Errorf("%w: region is required", model.ErrValidation)
	}

	existing, err := s.storage.GetProfile(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	profile := &model.Profile{
		UserID:             userID,
		DisplayName:        in.DisplayName,
		Bio:                in.Bio,
		Region:             in.Region,
		CommunicationStyle: in.CommunicationStyle,
		DiscordTag:         in.DiscordTag,
		SteamID:            in.SteamID,
		CreatedAt:          s.clock.Now(),
	}
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update applies a partial edit to the caller's own profile
func (s *Service) Update(ctx context.Context, userID model.UserID, update model.ProfileUpdate) (*model.Profile, error) {
	if userID == "" {
		return nil, model.ErrNotAuthenticated
	}
	if update.Region != nil && *update.Region == "" {
		return nil, fmt.Errorf("%w: region cannot be cleared", model.ErrValidation)
	}
	if update.DisplayName != nil && *update.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name cannot be cleared", model.ErrValidation)
	}

	profile, err := s.storage.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	update.Apply(profile)
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get retrieves any user's profile with games and availability attached
func (s *Service) Get(ctx context.Context, userID model.UserID) (*EnrichedProfile, error) {
	profile, err := s.storage.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	games, err := s.storage.GetUserGames(ctx, userID)
	if err != nil {
		return nil, err
	}

	slots, err := s.storage.GetAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &EnrichedProfile{
		Profile:      profile,
		Games:        games,
		Availability: slots,
	}, nil
}

// GameInput holds the fields of a user-to-game link
type GameInput struct {
	GameID        model.GameID
	SkillLevel    string
	HoursPlayed   *int
	PreferredRole string
}

// AddGame links a game to the caller's profile. Linking a game that is
// already linked overwrites the link; the link is always active after
// this call.
func (s *Service) AddGame(ctx context.Context, userID model.UserID, in GameInput) (*model.UserGame, error) {
	if userID == "" {
		return nil, model.ErrNotAuthenticated
	}

	// The game must exist in the catalog.
	if _, err := s.storage.GetGame(ctx, in.GameID); err != nil {
		return nil, err
	}

	link := &model.UserGame{
		UserID:        userID,
		GameID:        in.GameID,
		SkillLevel:    in.SkillLevel,
		HoursPlayed:   in.HoursPlayed,
		PreferredRole: in.PreferredRole,
		IsActive:      true,
	}
	if err := s.storage.SaveUserGame(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// RemoveGame unlinks a game from the caller's profile
func (s *Service) RemoveGame(ctx context.Context, userID model.UserID, gameID model.GameID) error {
	if userID == "" {
		return model.ErrNotAuthenticated
	}
	if _, err := s.storage.GetUserGame(ctx, userID, gameID); err != nil {
		return err
	}
	return s.storage.DeleteUserGame(ctx, userID, gameID)
}

// SetAvailability replaces the caller's weekly availability wholesale
func (s *Service) SetAvailability(ctx context.Context, userID model.UserID, slots []model.AvailabilitySlot) error {
	if userID == "" {
		return model.ErrNotAuthenticated
	}
	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return fmt.Errorf("%w: day of week must be 0-6", model.ErrValidation)
		}
	}
	return s.storage.SaveAvailability(ctx, userID, slots)
}
