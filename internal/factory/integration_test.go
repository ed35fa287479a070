package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/lfg"
	"github.com/squadup/squadup/internal/services/matchmaking"
	"github.com/squadup/squadup/internal/services/profile"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// signUp registers an account and returns its user ID.
func (s *IntegrationSuite) signUp(username string) model.UserID {
	sess, err := s.app.AuthService.Register(s.ctx, username, "hunter2hunter2")
	s.Require().NoError(err)
	return sess.UserID
}

// onboard registers an account and creates its profile.
func (s *IntegrationSuite) onboard(username, region, style string) model.UserID {
	userID := s.signUp(username)
	_, err := s.app.ProfileService.Create(s.ctx, userID, profile.CreateInput{
		DisplayName:        username,
		Region:             region,
		CommunicationStyle: style,
	})
	s.Require().NoError(err)
	return userID
}

func (s *IntegrationSuite) addGame(userID model.UserID, gameID model.GameID, skill string) {
	_, err := s.app.ProfileService.AddGame(s.ctx, userID, profile.GameInput{
		GameID:     gameID,
		SkillLevel: skill,
	})
	s.Require().NoError(err)
}

func (s *IntegrationSuite) seedGame(name, category string) model.GameID {
	game, err := s.app.CatalogService.Create(s.ctx, name, category, "")
	s.Require().NoError(err)
	return game.ID
}

// Test: registration through login and session validation
func (s *IntegrationSuite) TestAccountLifecycle() {
	sess, err := s.app.AuthService.Register(s.ctx, "riven", "correct horse battery")
	s.Require().NoError(err)
	s.NotEmpty(sess.Token)

	validated, err := s.app.AuthService.ValidateSession(sess.Token)
	s.Require().NoError(err)
	s.Equal(sess.UserID, validated.UserID)

	s.app.AuthService.InvalidateSession(sess.Token)
	_, err = s.app.AuthService.ValidateSession(sess.Token)
	s.Error(err)

	loginSess, err := s.app.AuthService.Login(s.ctx, "riven", "correct horse battery")
	s.Require().NoError(err)
	s.Equal(sess.UserID, loginSess.UserID)
}

// Test: find compatible players and confirm the score breakdown
func (s *IntegrationSuite) TestMatchmakingFlow() {
	cs2 := s.seedGame("Counter-Strike 2", "FPS")
	valorant := s.seedGame("Valorant", "FPS")
	dota := s.seedGame("Dota 2", "MOBA")

	me := s.onboard("alice", "na-east", "chill")
	them := s.onboard("bob", "na-east", "chill")

	s.addGame(me, cs2, "gold")
	s.addGame(me, valorant, "silver")
	s.addGame(them, cs2, "platinum")
	s.addGame(them, valorant, "gold")
	s.addGame(them, dota, "herald")

	suggestions, err := s.app.MatchmakingService.FindMatches(s.ctx, me, matchmaking.DefaultLimit)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)

	// 2 mutual of max(2, 3) active games, matching style, same region.
	s.Equal(them, suggestions[0].Profile.UserID)
	s.Equal(87, suggestions[0].Score)
	s.Len(suggestions[0].MutualGames, 2)
}

// Test: full match lifecycle from suggestion to accepted, with messages
func (s *IntegrationSuite) TestMatchAndMessageFlow() {
	cs2 := s.seedGame("Counter-Strike 2", "FPS")

	alice := s.onboard("alice", "eu-west", "competitive")
	bob := s.onboard("bob", "eu-west", "competitive")
	s.addGame(alice, cs2, "gold")
	s.addGame(bob, cs2, "gold")

	match, err := s.app.LedgerService.Create(s.ctx, alice, bob)
	s.Require().NoError(err)
	s.Equal(model.MatchStatusPending, match.Status)
	s.Equal([]model.GameID{cs2}, match.MutualGames)

	// Creating again from either side returns the same match.
	again, err := s.app.LedgerService.Create(s.ctx, bob, alice)
	s.Require().NoError(err)
	s.Equal(match.ID, again.ID)

	// Only the target may respond.
	_, err = s.app.LedgerService.Respond(s.ctx, alice, match.ID, model.MatchStatusAccepted)
	s.ErrorIs(err, model.ErrNotMatchTarget)

	responded, err := s.app.LedgerService.Respond(s.ctx, bob, match.ID, model.MatchStatusAccepted)
	s.Require().NoError(err)
	s.Equal(model.MatchStatusAccepted, responded.Status)

	// Both parties can message; outsiders cannot.
	_, err = s.app.MessageService.Send(s.ctx, alice, match.ID, "ready for comp tonight?")
	s.Require().NoError(err)
	_, err = s.app.MessageService.Send(s.ctx, bob, match.ID, "yeah, queue at 8")
	s.Require().NoError(err)

	stranger := s.onboard("mallory", "eu-west", "competitive")
	_, err = s.app.MessageService.Send(s.ctx, stranger, match.ID, "let me in")
	s.ErrorIs(err, model.ErrNotMatchParty)

	msgs, err := s.app.MessageService.ListForMatch(s.ctx, alice, match.ID)
	s.Require().NoError(err)
	s.Require().Len(msgs, 2)
	s.Equal("ready for comp tonight?", msgs[0].Content)
	s.Equal("yeah, queue at 8", msgs[1].Content)

	// Both sides see the match with the other party enriched.
	bobMatches, err := s.app.LedgerService.ListForUser(s.ctx, bob)
	s.Require().NoError(err)
	s.Require().Len(bobMatches, 1)
	s.False(bobMatches[0].IsInitiator)
	s.Require().NotNil(bobMatches[0].OtherProfile)
	s.Equal(alice, bobMatches[0].OtherProfile.UserID)
}

// Test: posting to the board and filtering by game and region
func (s *IntegrationSuite) TestLFGBoardFlow() {
	cs2 := s.seedGame("Counter-Strike 2", "FPS")
	dota := s.seedGame("Dota 2", "MOBA")

	alice := s.onboard("alice", "na-east", "chill")
	bob := s.onboard("bob", "eu-west", "chill")

	_, err := s.app.LFGService.Create(s.ctx, alice, lfg.CreateInput{
		GameID:        cs2,
		Title:         "Premier stack, need 2",
		SkillLevel:    "gold",
		PlayersNeeded: 2,
	})
	s.Require().NoError(err)
	_, err = s.app.LFGService.Create(s.ctx, bob, lfg.CreateInput{
		GameID:        dota,
		Title:         "Ranked grind",
		SkillLevel:    "herald",
		PlayersNeeded: 4,
	})
	s.Require().NoError(err)

	all, err := s.app.LFGService.List(s.ctx, lfg.Filter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	byGame, err := s.app.LFGService.List(s.ctx, lfg.Filter{GameID: cs2})
	s.Require().NoError(err)
	s.Require().Len(byGame, 1)
	s.Equal("Premier stack, need 2", byGame[0].Post.Title)
	s.Require().NotNil(byGame[0].Author)
	s.Equal(alice, byGame[0].Author.UserID)
	s.Equal("na-east", byGame[0].Post.Region)

	byRegion, err := s.app.LFGService.List(s.ctx, lfg.Filter{Region: "eu-west"})
	s.Require().NoError(err)
	s.Require().Len(byRegion, 1)
	s.Equal("Ranked grind", byRegion[0].Post.Title)

	// Only the author may delete.
	_, err = s.app.LFGService.List(s.ctx, lfg.Filter{GameID: cs2, Region: "eu-west"})
	s.Require().NoError(err)

	err = s.app.LFGService.Delete(s.ctx, bob, byGame[0].Post.ID)
	s.ErrorIs(err, model.ErrNotPostAuthor)
	err = s.app.LFGService.Delete(s.ctx, alice, byGame[0].Post.ID)
	s.Require().NoError(err)

	all, err = s.app.LFGService.List(s.ctx, lfg.Filter{})
	s.Require().NoError(err)
	s.Len(all, 1)
}

// Test: seeded catalog is queryable by category
func (s *IntegrationSuite) TestCatalogSeed() {
	s.Require().NoError(s.app.CatalogService.Seed(s.ctx))

	games, err := s.app.CatalogService.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(games, 15)

	fps, err := s.app.CatalogService.List(s.ctx, "FPS")
	s.Require().NoError(err)
	s.NotEmpty(fps)
	for _, g := range fps {
		s.Equal("FPS", g.Category)
	}

	// Seeding again does not duplicate.
	s.Require().NoError(s.app.CatalogService.Seed(s.ctx))
	games, err = s.app.CatalogService.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(games, 15)
}
