package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/squadup/squadup/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "u1", CreatedAt: s.now}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	got, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetRegisteredUserByUsername() {
	ru := &model.RegisteredUser{UserID: "u1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveRegisteredUser(s.ctx, ru))

	got, err := s.storage.GetRegisteredUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), got.UserID)

	_, err = s.storage.GetRegisteredUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Profile tests

func (s *StorageSuite) TestGetProfilesByRegionInsertionOrder() {
	for i, region := range []string{"na", "eu", "na", "na"} {
		s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{
			UserID: model.UserID(fmt.Sprintf("u%d", i)),
			Region: region,
		}))
	}

	profiles, err := s.storage.GetProfilesByRegion(s.ctx, "na", 0)
	s.Require().NoError(err)
	s.Require().Len(profiles, 3)
	s.Equal(model.UserID("u0"), profiles[0].UserID)
	s.Equal(model.UserID("u2"), profiles[1].UserID)
	s.Equal(model.UserID("u3"), profiles[2].UserID)
}

func (s *StorageSuite) TestGetProfilesByRegionLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{
			UserID: model.UserID(fmt.Sprintf("u%d", i)),
			Region: "na",
		}))
	}

	profiles, err := s.storage.GetProfilesByRegion(s.ctx, "na", 2)
	s.Require().NoError(err)
	s.Len(profiles, 2)
}

func (s *StorageSuite) TestResaveProfileKeepsIndexPosition() {
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{UserID: "u1", Region: "na"}))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{UserID: "u2", Region: "na"}))
	s.Require().NoError(s.storage.SaveProfile(s.ctx, &model.Profile{UserID: "u1", Region: "na", Bio: "edited"}))

	profiles, err := s.storage.GetProfilesByRegion(s.ctx, "na", 0)
	s.Require().NoError(err)
	s.Require().Len(profiles, 2)
	s.Equal(model.UserID("u1"), profiles[0].UserID)
	s.Equal("edited", profiles[0].Bio)
}

// Game catalog tests

func (s *StorageSuite) TestListGamesInsertionOrder() {
	for _, id := range []model.GameID{"g1", "g2", "g3"} {
		s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: id, Name: string(id)}))
	}

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("g1"), games[0].ID)
	s.Equal(model.GameID("g3"), games[2].ID)
}

func (s *StorageSuite) TestGetGameByName() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1", Name: "Valorant"}))

	got, err := s.storage.GetGameByName(s.ctx, "Valorant")
	s.Require().NoError(err)
	s.Equal(model.GameID("g1"), got.ID)

	_, err = s.storage.GetGameByName(s.ctx, "Unknown")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// User game link tests

func (s *StorageSuite) TestUserGameLinkLifecycle() {
	link := &model.UserGame{UserID: "u1", GameID: "g1", SkillLevel: "beginner", IsActive: true}
	s.Require().NoError(s.storage.SaveUserGame(s.ctx, link))

	// Re-saving the same pair overwrites rather than duplicating.
	link2 := &model.UserGame{UserID: "u1", GameID: "g1", SkillLevel: "advanced", IsActive: true}
	s.Require().NoError(s.storage.SaveUserGame(s.ctx, link2))

	links, err := s.storage.GetUserGames(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Equal("advanced", links[0].SkillLevel)

	s.Require().NoError(s.storage.DeleteUserGame(s.ctx, "u1", "g1"))
	_, err = s.storage.GetUserGame(s.ctx, "u1", "g1")
	s.ErrorIs(err, model.ErrUserGameNotFound)
}

// LFG post tests

func (s *StorageSuite) addPost(id model.LFGPostID, author model.UserID, game model.GameID, region string, active bool) {
	s.Require().NoError(s.storage.SaveLFGPost(s.ctx, &model.LFGPost{
		ID:        id,
		AuthorID:  author,
		GameID:    game,
		Region:    region,
		IsActive:  active,
		CreatedAt: s.now,
	}))
	s.now = s.now.Add(time.Second)
}

func (s *StorageSuite) TestActivePostsNewestFirst() {
	s.addPost("p1", "u1", "g1", "na", true)
	s.addPost("p2", "u1", "g1", "na", false)
	s.addPost("p3", "u1", "g1", "na", true)

	posts, err := s.storage.GetActiveLFGPosts(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(posts, 2)
	s.Equal(model.LFGPostID("p3"), posts[0].ID)
	s.Equal(model.LFGPostID("p1"), posts[1].ID)
}

func (s *StorageSuite) TestPostsByGameIncludeInactive() {
	s.addPost("p1", "u1", "g1", "na", true)
	s.addPost("p2", "u1", "g2", "na", true)
	s.addPost("p3", "u1", "g1", "na", false)

	posts, err := s.storage.GetLFGPostsByGame(s.ctx, "g1", 0)
	s.Require().NoError(err)
	s.Require().Len(posts, 2)
	s.Equal(model.LFGPostID("p3"), posts[0].ID)
	s.Equal(model.LFGPostID("p1"), posts[1].ID)
}

func (s *StorageSuite) TestPostsByRegion() {
	s.addPost("p1", "u1", "g1", "na", true)
	s.addPost("p2", "u1", "g1", "eu", true)

	posts, err := s.storage.GetLFGPostsByRegion(s.ctx, "eu", 0)
	s.Require().NoError(err)
	s.Require().Len(posts, 1)
	s.Equal(model.LFGPostID("p2"), posts[0].ID)
}

func (s *StorageSuite) TestPostsByAuthorNewestFirst() {
	s.addPost("p1", "u1", "g1", "na", true)
	s.addPost("p2", "u2", "g1", "na", true)
	s.addPost("p3", "u1", "g1", "na", false)

	posts, err := s.storage.GetLFGPostsByAuthor(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(posts, 2)
	s.Equal(model.LFGPostID("p3"), posts[0].ID)
	s.Equal(model.LFGPostID("p1"), posts[1].ID)
}

func (s *StorageSuite) TestDeleteLFGPostRemovesFromScans() {
	s.addPost("p1", "u1", "g1", "na", true)
	s.Require().NoError(s.storage.DeleteLFGPost(s.ctx, "p1"))

	_, err := s.storage.GetLFGPost(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPostNotFound)

	posts, err := s.storage.GetActiveLFGPosts(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(posts)
}

// Match tests

func (s *StorageSuite) TestInsertMatchCreates() {
	match := &model.Match{ID: "m1", UserA: "u1", UserB: "u2", Status: model.MatchStatusPending, CreatedAt: s.now}

	got, created, err := s.storage.InsertMatch(s.ctx, match)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(model.MatchID("m1"), got.ID)
}

func (s *StorageSuite) TestInsertMatchReversedPairReturnsExisting() {
	first := &model.Match{ID: "m1", UserA: "u1", UserB: "u2", Status: model.MatchStatusPending, CreatedAt: s.now}
	_, _, err := s.storage.InsertMatch(s.ctx, first)
	s.Require().NoError(err)

	second := &model.Match{ID: "m2", UserA: "u2", UserB: "u1", Status: model.MatchStatusPending, CreatedAt: s.now}
	got, created, err := s.storage.InsertMatch(s.ctx, second)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(model.MatchID("m1"), got.ID)

	_, err = s.storage.GetMatch(s.ctx, "m2")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestInsertMatchConcurrentSamePair() {
	const attempts = 20

	var wg sync.WaitGroup
	results := make([]model.MatchID, attempts)
	createdCount := make([]bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := model.UserID("u1"), model.UserID("u2")
			if i%2 == 1 {
				a, b = b, a
			}
			match := &model.Match{
				ID:        model.MatchID(fmt.Sprintf("m%d", i)),
				UserA:     a,
				UserB:     b,
				Status:    model.MatchStatusPending,
				CreatedAt: s.now,
			}
			got, created, err := s.storage.InsertMatch(s.ctx, match)
			s.NoError(err)
			results[i] = got.ID
			createdCount[i] = created
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, c := range createdCount {
		if c {
			winners++
		}
	}
	s.Equal(1, winners)

	for _, id := range results {
		s.Equal(results[0], id)
	}
}

func (s *StorageSuite) TestGetMatchByPairEitherOrientation() {
	match := &model.Match{ID: "m1", UserA: "u1", UserB: "u2", Status: model.MatchStatusPending, CreatedAt: s.now}
	_, _, err := s.storage.InsertMatch(s.ctx, match)
	s.Require().NoError(err)

	got, err := s.storage.GetMatchByPair(s.ctx, "u2", "u1")
	s.Require().NoError(err)
	s.Equal(model.MatchID("m1"), got.ID)
}

func (s *StorageSuite) TestUpdateMatchStatus() {
	match := &model.Match{ID: "m1", UserA: "u1", UserB: "u2", Status: model.MatchStatusPending, CreatedAt: s.now}
	_, _, err := s.storage.InsertMatch(s.ctx, match)
	s.Require().NoError(err)

	s.Require().NoError(s.storage.UpdateMatchStatus(s.ctx, "m1", model.MatchStatusAccepted))

	got, err := s.storage.GetMatch(s.ctx, "m1")
	s.Require().NoError(err)
	s.Equal(model.MatchStatusAccepted, got.Status)

	s.ErrorIs(s.storage.UpdateMatchStatus(s.ctx, "missing", model.MatchStatusAccepted), model.ErrMatchNotFound)
}

func (s *StorageSuite) TestGetMatchesForUserNewestFirst() {
	for i, pair := range [][2]model.UserID{{"u1", "u2"}, {"u1", "u3"}, {"u2", "u3"}} {
		match := &model.Match{
			ID:        model.MatchID(fmt.Sprintf("m%d", i)),
			UserA:     pair[0],
			UserB:     pair[1],
			Status:    model.MatchStatusPending,
			CreatedAt: s.now.Add(time.Duration(i) * time.Second),
		}
		_, _, err := s.storage.InsertMatch(s.ctx, match)
		s.Require().NoError(err)
	}

	matches, err := s.storage.GetMatchesForUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal(model.MatchID("m1"), matches[0].ID)
	s.Equal(model.MatchID("m0"), matches[1].ID)
}

// Message tests

func (s *StorageSuite) TestMessagesKeepSendOrder() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.storage.SaveMessage(s.ctx, &model.Message{
			ID:       model.MessageID(fmt.Sprintf("msg%d", i)),
			MatchID:  "m1",
			SenderID: "u1",
			Content:  fmt.Sprintf("message %d", i),
			SentAt:   s.now.Add(time.Duration(i) * time.Second),
		}))
	}

	msgs, err := s.storage.GetMessagesForMatch(s.ctx, "m1")
	s.Require().NoError(err)
	s.Require().Len(msgs, 3)
	s.Equal("message 0", msgs[0].Content)
	s.Equal("message 2", msgs[2].Content)
}

// Availability tests

func (s *StorageSuite) TestAvailabilityRoundTrip() {
	slots := []model.AvailabilitySlot{{DayOfWeek: 5, StartTime: "18:00", EndTime: "23:00", Timezone: "UTC-5"}}
	s.Require().NoError(s.storage.SaveAvailability(s.ctx, "u1", slots))

	got, err := s.storage.GetAvailability(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(slots, got)

	empty, err := s.storage.GetAvailability(s.ctx, "u2")
	s.Require().NoError(err)
	s.Empty(empty)
}
