// Package lfg manages the looking-for-group post board.
package lfg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/squadup/squadup/internal/dependencies/clock"
	"github.com/squadup/squadup/internal/dependencies/ident"
	"github.com/squadup/squadup/internal/fanout"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage"
)

const (
	// DefaultLimit caps how many posts a board listing returns when
	// the caller does not ask for a specific count.
	DefaultLimit = 20

	enrichWorkers = 8
)

// Service provides LFG board operations
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ident.Generator
}

// New creates a new LFG service
func New(storage storage.Storage, clock clock.Clock, ids ident.Generator) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
	}
}

// EnrichedPost is a post with author profile and game record attached
type EnrichedPost struct {
	Post   *model.LFGPost
	Author *model.Profile // nil when the author has no profile
	Game   *model.Game    // nil when the game has left the catalog
}

// Filter narrows a board listing. Zero values mean no constraint.
type Filter struct {
	GameID model.GameID
	Region string
	Limit  int
}

// List returns active posts matching the filter, newest first. The
// most selective available index drives the scan: game first, then
// region, then the plain active set; remaining constraints are applied
// to the scanned rows.
func (s *Service) List(ctx context.Context, filter Filter) ([]*EnrichedPost, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var (
		posts []*model.LFGPost
		err   error
	)
	switch {
	case filter.GameID != "":
		posts, err = s.storage.GetLFGPostsByGame(ctx, filter.GameID, 0)
	case filter.Region != "":
		posts, err = s.storage.GetLFGPostsByRegion(ctx, filter.Region, 0)
	default:
		posts, err = s.storage.GetActiveLFGPosts(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	filtered := make([]*model.LFGPost, 0, len(posts))
	for _, p := range posts {
		if !p.IsActive {
			continue
		}
		if filter.GameID != "" && filter.Region != "" && p.Region != filter.Region {
			continue
		}
		filtered = append(filtered, p)
		if len(filtered) == limit {
			break
		}
	}

	return s.enrich(ctx, filtered, true)
}

// CreateInput holds the fields an author sets when posting
type CreateInput struct {
	GameID        model.GameID
	Title         string
	Description   string
	SkillLevel    string
	PlayersNeeded int
	ScheduledTime *int64 // unix millis, optional
	Tags          []string
}

// Create posts a new active LFG request. The author must have a
// profile; the post's region is copied from it at creation and never
// re-derived afterwards.
func (s *Service) Create(ctx context.Context, authorID model.UserID, in CreateInput) (*model.LFGPost, error) {
	if authorID == "" {
		return nil, model.ErrNotAuthenticated
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if in.SkillLevel == "" {
		return nil, fmt.Errorf("%w: skill level is required", model.ErrValidation)
	}
	if in.PlayersNeeded < 1 {
		return nil, fmt.Errorf("%w: players needed must be at least 1", model.ErrValidation)
	}

	profile, err := s.storage.GetProfile(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.GetGame(ctx, in.GameID); err != nil {
		return nil, err
	}

	post := &model.LFGPost{
		ID:            model.LFGPostID(s.ids.NewID("lfg_")),
		AuthorID:      authorID,
		GameID:        in.GameID,
		Title:         in.Title,
		Description:   in.Description,
		SkillLevel:    in.SkillLevel,
		Region:        profile.Region,
		PlayersNeeded: in.PlayersNeeded,
		ScheduledTime: millisToTime(in.ScheduledTime),
		IsActive:      true,
		Tags:          in.Tags,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.storage.SaveLFGPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies a partial edit to the author's own post. Region is
// not editable: it stays whatever it was at creation.
func (s *Service) Update(ctx context.Context, authorID model.UserID, postID model.LFGPostID, update model.LFGPostUpdate) (*model.LFGPost, error) {
	post, err := s.ownedPost(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil && *update.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be cleared", model.ErrValidation)
	}
	if update.PlayersNeeded != nil && *update.PlayersNeeded < 1 {
		return nil, fmt.Errorf("%w: players needed must be at least 1", model.ErrValidation)
	}

	update.Apply(post)
	if err := s.storage.SaveLFGPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the author's own post entirely
func (s *Service) Delete(ctx context.Context, authorID model.UserID, postID model.LFGPostID) error {
	if _, err := s.ownedPost(ctx, authorID, postID); err != nil {
		return err
	}
	return s.storage.DeleteLFGPost(ctx, postID)
}

// GetMyPosts returns all of the author's posts, newest first,
// including inactive ones.
func (s *Service) GetMyPosts(ctx context.Context, authorID model.UserID) ([]*EnrichedPost, error) {
	if authorID == "" {
		return nil, model.ErrNotAuthenticated
	}

	posts, err := s.storage.GetLFGPostsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts, false)
}

// ownedPost fetches a post and checks the caller is its author
func (s *Service) ownedPost(ctx context.Context, authorID model.UserID, postID model.LFGPostID) (*model.LFGPost, error) {
	if authorID == "" {
		return nil, model.ErrNotAuthenticated
	}

	post, err := s.storage.GetLFGPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, model.ErrNotPostAuthor
	}
	return post, nil
}

// enrich attaches game records, and optionally author profiles, to posts
func (s *Service) enrich(ctx context.Context, posts []*model.LFGPost, withAuthor bool) ([]*EnrichedPost, error) {
	return fanout.Map(ctx, enrichWorkers, posts, func(ctx context.Context, post *model.LFGPost) (*EnrichedPost, error) {
		out := &EnrichedPost{Post: post}

		game, err := s.storage.GetGame(ctx, post.GameID)
		if err != nil && !errors.Is(err, model.ErrGameNotFound) {
			return nil, err
		}
		out.Game = game

		if withAuthor {
			author, err := s.storage.GetProfile(ctx, post.AuthorID)
			if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
				return nil, err
			}
			out.Author = author
		}
		return out, nil
	})
}

func millisToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}
