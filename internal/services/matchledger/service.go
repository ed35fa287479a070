// Package matchledger owns the match lifecycle: creation, response,
// and listing. A match is a persistent pairwise relationship, not a
// game session.
package matchledger

import (
	"context"
	"errors"

	"github.com/squadup/squadup/internal/dependencies/clock"
	"github.com/squadup/squadup/internal/dependencies/ident"
	"github.com/squadup/squadup/internal/fanout"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/scoring"
	"github.com/squadup/squadup/internal/storage"
)

const enrichWorkers = 8

// Service provides match lifecycle operations
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ident.Generator
}

// New creates a new match ledger service
func New(storage storage.Storage, clock clock.Clock, ids ident.Generator) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
	}
}

// EnrichedMatch is a match with display data for one party's view
type EnrichedMatch struct {
	Match        *model.Match
	OtherProfile *model.Profile // nil when the other party has no profile
	MutualGames  []*model.Game
	IsInitiator  bool
}

// Create records a pending match from initiator to target. At most one
// match exists per user pair: creating against an existing pair returns
// the existing match regardless of orientation or status, with no new
// write. The compatibility score is fixed at creation from active game
// overlap alone.
func (s *Service) Create(ctx context.Context, initiatorID, targetID model.UserID) (*model.Match, error) {
	if initiatorID == "" {
		return nil, model.ErrNotAuthenticated
	}
	if targetID == "" {
		return nil, model.ErrValidation
	}
	if initiatorID == targetID {
		return nil, model.ErrSelfMatch
	}

	if _, err := s.storage.GetUser(ctx, targetID); err != nil {
		return nil, err
	}

	myGames, err := s.storage.GetUserGames(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	theirGames, err := s.storage.GetUserGames(ctx, targetID)
	if err != nil {
		return nil, err
	}

	score, mutual := scoring.PairScore(myGames, theirGames)

	match := &model.Match{
		ID:                 model.MatchID(s.ids.NewID("m_")),
		UserA:              initiatorID,
		UserB:              targetID,
		CompatibilityScore: score,
		MutualGames:        mutual,
		Status:             model.MatchStatusPending,
		CreatedAt:          s.clock.Now(),
	}

	existing, _, err := s.storage.InsertMatch(ctx, match)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// Respond applies the invited user's decision to a match. Only UserB
// may respond; repeated responses are allowed and the last decision
// wins.
func (s *Service) Respond(ctx context.Context, responderID model.UserID, matchID model.MatchID, decision model.MatchStatus) (*model.Match, error) {
	if responderID == "" {
		return nil, model.ErrNotAuthenticated
	}

	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if match.UserB != responderID {
		return nil, model.ErrNotMatchTarget
	}
	if !decision.ValidResponse() {
		return nil, model.ErrInvalidDecision
	}

	if err := s.storage.UpdateMatchStatus(ctx, matchID, decision); err != nil {
		return nil, err
	}

	// The fetched record may be shared with the store; return a copy
	// rather than writing to it outside the store.
	updated := *match
	updated.Status = decision
	return &updated, nil
}

// ListForUser returns all matches the user is party to, newest first,
// enriched with the other party's profile and the mutual game records.
func (s *Service) ListForUser(ctx context.Context, userID model.UserID) ([]*EnrichedMatch, error) {
	if userID == "" {
		return nil, model.ErrNotAuthenticated
	}

	matches, err := s.storage.GetMatchesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return fanout.Map(ctx, enrichWorkers, matches, func(ctx context.Context, match *model.Match) (*EnrichedMatch, error) {
		otherID := match.Other(userID)

		otherProfile, err := s.storage.GetProfile(ctx, otherID)
		if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
			return nil, err
		}

		games := make([]*model.Game, 0, len(match.MutualGames))
		for _, gid := range match.MutualGames {
			game, err := s.storage.GetGame(ctx, gid)
			if err != nil {
				if errors.Is(err, model.ErrGameNotFound) {
					continue
				}
				return nil, err
			}
			games = append(games, game)
		}

		return &EnrichedMatch{
			Match:        match,
			OtherProfile: otherProfile,
			MutualGames:  games,
			IsInitiator:  match.UserA == userID,
		}, nil
	})
}
