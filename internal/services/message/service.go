// Package message stores chat messages between matched users. Plain
// persistence only; delivery and presence live elsewhere.
package message

import (
	"context"
	"fmt"

	"github.com/squadup/squadup/internal/dependencies/clock"
	"github.com/squadup/squadup/internal/dependencies/ident"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage"
)

// Service provides match chat operations
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ident.Generator
}

// New creates a new message service
func New(storage storage.Storage, clock clock.Clock, ids ident.Generator) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
	}
}

// Send appends a message to a match's conversation. Only the two match
// parties may send.
func (s *Service) Send(ctx context.Context, senderID model.UserID, matchID model.MatchID, content string) (*model.Message, error) {
	if senderID == "" {
		return nil, model.ErrNotAuthenticated
	}
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", model.ErrValidation)
	}

	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(senderID) {
		return nil, model.ErrNotMatchParty
	}

	msg := &model.Message{
		ID:       model.MessageID(s.ids.NewID("msg_")),
		MatchID:  matchID,
		SenderID: senderID,
		Content:  content,
		SentAt:   s.clock.Now(),
	}
	if err := s.storage.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListForMatch returns a match's conversation in send order. Only the
// two match parties may read it.
func (s *Service) ListForMatch(ctx context.Context, callerID model.UserID, matchID model.MatchID) ([]*model.Message, error) {
	if callerID == "" {
		return nil, model.ErrNotAuthenticated
	}

	match, err := s.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(callerID) {
		return nil, model.ErrNotMatchParty
	}

	return s.storage.GetMessagesForMatch(ctx, matchID)
}
