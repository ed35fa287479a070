// Package matchmaking produces ranked squadmate suggestions.
package matchmaking

import (
	"context"
	"errors"
	"sort"

	"github.com/squadup/squadup/internal/fanout"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/scoring"
	"github.com/squadup/squadup/internal/storage"
)

const (
	// DefaultPoolCap bounds how many same-region profiles are scored
	// per request.
	DefaultPoolCap = 50
	// DefaultLimit is how many suggestions are returned when the
	// caller does not ask for a specific count.
	DefaultLimit = 10

	enrichWorkers = 8
)

// Service provides matchmaking suggestion operations
type Service struct {
	storage storage.Storage
}

// New creates a new matchmaking service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// MutualGameDetail is one shared game in a suggestion, with both
// parties' skill and role attached for display.
type MutualGameDetail struct {
	Game       *model.Game
	MySkill    string
	MyRole     string
	TheirSkill string
	TheirRole  string
}

// Suggestion is one ranked candidate
type Suggestion struct {
	Profile     *model.Profile
	Score       int
	MutualGames []MutualGameDetail
}

// SelectCandidates returns up to poolCap same-region profiles,
// excluding the requester. A requester without a profile gets an empty
// pool: not yet onboarded is a normal state, not an error.
func (s *Service) SelectCandidates(ctx context.Context, requesterID model.UserID, poolCap int) ([]*model.Profile, error) {
	if poolCap <= 0 {
		poolCap = DefaultPoolCap
	}

	requester, err := s.storage.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// Fetch one extra so excluding the requester still fills the cap.
	pool, err := s.storage.GetProfilesByRegion(ctx, requester.Region, poolCap+1)
	if err != nil {
		return nil, err
	}

	candidates := make([]*model.Profile, 0, len(pool))
	for _, p := range pool {
		if p.UserID == requesterID {
			continue
		}
		candidates = append(candidates, p)
		if len(candidates) == poolCap {
			break
		}
	}
	return candidates, nil
}

// FindMatches scores the candidate pool against the requester and
// returns the top limit suggestions, highest score first. Candidates
// sharing no active games are dropped entirely. Equal scores keep
// their pool order.
func (s *Service) FindMatches(ctx context.Context, requesterID model.UserID, limit int) ([]*Suggestion, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	requester, err := s.storage.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	myGames, err := s.storage.GetUserGames(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.SelectCandidates(ctx, requesterID, DefaultPoolCap)
	if err != nil {
		return nil, err
	}

	type scored struct {
		profile *model.Profile
		score   int
		overlap []scoring.GameOverlap
	}

	results, err := fanout.Map(ctx, enrichWorkers, candidates, func(ctx context.Context, candidate *model.Profile) (*scored, error) {
		theirGames, err := s.storage.GetUserGames(ctx, candidate.UserID)
		if err != nil {
			return nil, err
		}

		overlap := scoring.Overlap(myGames, theirGames)
		if len(overlap) == 0 {
			return nil, nil
		}

		return &scored{
			profile: candidate,
			score:   scoring.RankScore(requester, candidate, myGames, theirGames),
			overlap: overlap,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]*scored, 0, len(results))
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]*Suggestion, 0, len(ranked))
	for _, r := range ranked {
		details, err := s.gameDetails(ctx, r.overlap)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, &Suggestion{
			Profile:     r.profile,
			Score:       r.score,
			MutualGames: details,
		})
	}
	return suggestions, nil
}

// gameDetails joins catalog records onto a game overlap
func (s *Service) gameDetails(ctx context.Context, overlap []scoring.GameOverlap) ([]MutualGameDetail, error) {
	return fanout.Map(ctx, enrichWorkers, overlap, func(ctx context.Context, o scoring.GameOverlap) (MutualGameDetail, error) {
		game, err := s.storage.GetGame(ctx, o.GameID)
		if err != nil {
			return MutualGameDetail{}, err
		}
		return MutualGameDetail{
			Game:       game,
			MySkill:    o.MySkill,
			MyRole:     o.MyRole,
			TheirSkill: o.TheirSkill,
			TheirRole:  o.TheirRole,
		}, nil
	})
}
