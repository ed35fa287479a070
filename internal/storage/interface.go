package storage

import (
	"context"

	"github.com/squadup/squadup/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must provide stable iteration order for the indexed scans:
// region scans return profiles in insertion order, and every post/match scan
// returns records in descending creation order. A limit of 0 means no cap.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// Registered user operations
	SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error
	GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error)
	GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error)

	// Profile operations
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, userID model.UserID) (*model.Profile, error)
	GetProfilesByRegion(ctx context.Context, region string, limit int) ([]*model.Profile, error)

	// Game catalog operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByName(ctx context.Context, name string) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	ListGamesByCategory(ctx context.Context, category string) ([]*model.Game, error)

	// User game link operations
	SaveUserGame(ctx context.Context, link *model.UserGame) error
	GetUserGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.UserGame, error)
	GetUserGames(ctx context.Context, userID model.UserID) ([]*model.UserGame, error)
	DeleteUserGame(ctx context.Context, userID model.UserID, gameID model.GameID) error

	// Availability operations
	SaveAvailability(ctx context.Context, userID model.UserID, slots []model.AvailabilitySlot) error
	GetAvailability(ctx context.Context, userID model.UserID) ([]model.AvailabilitySlot, error)

	// LFG post operations
	SaveLFGPost(ctx context.Context, post *model.LFGPost) error
	GetLFGPost(ctx context.Context, id model.LFGPostID) (*model.LFGPost, error)
	DeleteLFGPost(ctx context.Context, id model.LFGPostID) error
	GetActiveLFGPosts(ctx context.Context, limit int) ([]*model.LFGPost, error)
	GetLFGPostsByGame(ctx context.Context, gameID model.GameID, limit int) ([]*model.LFGPost, error)
	GetLFGPostsByRegion(ctx context.Context, region string, limit int) ([]*model.LFGPost, error)
	GetLFGPostsByAuthor(ctx context.Context, authorID model.UserID) ([]*model.LFGPost, error)

	// Match operations
	//
	// InsertMatch enforces uniqueness on the unordered user pair atomically:
	// when a match between the pair already exists (in either orientation),
	// the existing match is returned with created=false and nothing is
	// written. This closes the check-then-insert race that a caller-side
	// pre-check alone would leave open.
	InsertMatch(ctx context.Context, match *model.Match) (existing *model.Match, created bool, err error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	GetMatchByPair(ctx context.Context, a, b model.UserID) (*model.Match, error)
	UpdateMatchStatus(ctx context.Context, id model.MatchID, status model.MatchStatus) error
	GetMatchesForUser(ctx context.Context, userID model.UserID) ([]*model.Match, error)

	// Message operations
	SaveMessage(ctx context.Context, msg *model.Message) error
	GetMessagesForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Message, error)
}
