package matchmaking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) addProfile(userID model.UserID, region, style string, verified bool) {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{
		UserID:             userID,
		DisplayName:        string(userID),
		Region:             region,
		CommunicationStyle: style,
		IsVerified:         verified,
		CreatedAt:          s.now,
	}))
}

func (s *ServiceSuite) addGames(userID model.UserID, gameIDs ...model.GameID) {
	for _, gid := range gameIDs {
		s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: gid, Name: string(gid)}))
		s.Require().NoError(s.storage.SaveUserGame(s.ctx, &model.UserGame{
			UserID:   userID,
			GameID:   gid,
			IsActive: true,
		}))
	}
}

// SelectCandidates tests

func (s *ServiceSuite) TestSelectCandidatesWithoutProfileReturnsEmpty() {
	candidates, err := s.service.SelectCandidates(s.ctx, "nobody", 0)
	s.Require().NoError(err)
	s.Empty(candidates)
}

func (s *ServiceSuite) TestSelectCandidatesFiltersRegionAndSelf() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", false)
	s.addProfile("u3", "eu-west", "voice", false)
	s.addProfile("u4", "na-east", "voice", false)

	candidates, err := s.service.SelectCandidates(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(candidates, 2)
	s.Equal(model.UserID("u2"), candidates[0].UserID)
	s.Equal(model.UserID("u4"), candidates[1].UserID)
}

func (s *ServiceSuite) TestSelectCandidatesHonorsPoolCap() {
	s.addProfile("u1", "na-east", "voice", false)
	for i := 0; i < 10; i++ {
		s.addProfile(model.UserID(fmt.Sprintf("c%02d", i)), "na-east", "voice", false)
	}

	candidates, err := s.service.SelectCandidates(s.ctx, "u1", 3)
	s.Require().NoError(err)
	s.Require().Len(candidates, 3)
	s.Equal(model.UserID("c00"), candidates[0].UserID)
	s.Equal(model.UserID("c02"), candidates[2].UserID)
}

func (s *ServiceSuite) TestSelectCandidatesFillsCapAroundSelf() {
	// The requester's own profile sits inside the cap window; it must
	// not eat one of the candidate slots.
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", false)
	s.addProfile("u3", "na-east", "voice", false)

	candidates, err := s.service.SelectCandidates(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Require().Len(candidates, 2)
}

// FindMatches tests

func (s *ServiceSuite) TestFindMatchesWithoutProfileReturnsEmpty() {
	suggestions, err := s.service.FindMatches(s.ctx, "nobody", 0)
	s.Require().NoError(err)
	s.Empty(suggestions)
}

func (s *ServiceSuite) TestFindMatchesDropsZeroMutualCandidates() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", false)
	s.addProfile("u3", "na-east", "voice", false)
	s.addGames("u1", "g1")
	s.addGames("u2", "g1")
	s.addGames("u3", "g2")

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)
	s.Equal(model.UserID("u2"), suggestions[0].Profile.UserID)
}

func (s *ServiceSuite) TestFindMatchesSortsByScoreDescending() {
	s.addProfile("u1", "na-east", "voice", false)
	// u2 mismatched style, u3 matching style and verified.
	s.addProfile("u2", "na-east", "text", false)
	s.addProfile("u3", "na-east", "voice", true)
	s.addGames("u1", "g1")
	s.addGames("u2", "g1")
	s.addGames("u3", "g1")

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 2)
	s.Equal(model.UserID("u3"), suggestions[0].Profile.UserID)
	s.Equal(model.UserID("u2"), suggestions[1].Profile.UserID)
	s.Greater(suggestions[0].Score, suggestions[1].Score)
}

func (s *ServiceSuite) TestFindMatchesEqualScoresKeepPoolOrder() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", false)
	s.addProfile("u3", "na-east", "voice", false)
	s.addGames("u1", "g1")
	s.addGames("u2", "g1")
	s.addGames("u3", "g1")

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 2)
	s.Equal(suggestions[0].Score, suggestions[1].Score)
	s.Equal(model.UserID("u2"), suggestions[0].Profile.UserID)
	s.Equal(model.UserID("u3"), suggestions[1].Profile.UserID)
}

func (s *ServiceSuite) TestFindMatchesHonorsLimit() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addGames("u1", "g1")
	for i := 0; i < 5; i++ {
		id := model.UserID(fmt.Sprintf("c%02d", i))
		s.addProfile(id, "na-east", "voice", false)
		s.addGames(id, "g1")
	}

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Len(suggestions, 2)
}

func (s *ServiceSuite) TestFindMatchesComputesExpectedScore() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", true)
	s.addGames("u1", "g1", "g2")
	s.addGames("u2", "g1", "g2", "g3")

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)

	// 40*2/3 + 30 + 20 + 10 rounds to 87.
	s.Equal(87, suggestions[0].Score)
}

func (s *ServiceSuite) TestFindMatchesAttachesMutualGameDetails() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", false)
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1", Name: "Valorant", Category: "FPS"}))
	s.Require().NoError(s.storage.SaveUserGame(s.ctx, &model.UserGame{
		UserID: "u1", GameID: "g1", SkillLevel: "advanced", PreferredRole: "duelist", IsActive: true,
	}))
	s.Require().NoError(s.storage.SaveUserGame(s.ctx, &model.UserGame{
		UserID: "u2", GameID: "g1", SkillLevel: "beginner", PreferredRole: "controller", IsActive: true,
	}))

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)
	s.Require().Len(suggestions[0].MutualGames, 1)

	detail := suggestions[0].MutualGames[0]
	s.Equal("Valorant", detail.Game.Name)
	s.Equal("advanced", detail.MySkill)
	s.Equal("duelist", detail.MyRole)
	s.Equal("beginner", detail.TheirSkill)
	s.Equal("controller", detail.TheirRole)
}

func (s *ServiceSuite) TestFindMatchesIgnoresInactiveLinks() {
	s.addProfile("u1", "na-east", "voice", false)
	s.addProfile("u2", "na-east", "voice", false)
	s.addGames("u1", "g1")
	s.Require().NoError(s.storage.SaveUserGame(s.ctx, &model.UserGame{
		UserID: "u2", GameID: "g1", IsActive: false,
	}))

	suggestions, err := s.service.FindMatches(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Empty(suggestions)
}
