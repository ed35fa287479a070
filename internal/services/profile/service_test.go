package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/squadup/squadup/internal/dependencies/mocks"
	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedGame(id model.GameID) {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: id, Name: string(id)}))
}

// Create tests

func (s *ServiceSuite) TestCreateSucceeds() {
	profile, err := s.service.Create(s.ctx, "u1", CreateInput{
		DisplayName:        "Alice",
		Region:             "na-east",
		CommunicationStyle: "voice",
	})
	s.Require().NoError(err)

	s.Equal(model.UserID("u1"), profile.UserID)
	s.Equal("Alice", profile.DisplayName)
	s.Equal(s.clock.Now(), profile.CreatedAt)
	s.False(profile.IsVerified)
}

func (s *ServiceSuite) TestCreateIsIdempotent() {
	first, err := s.service.Create(s.ctx, "u1", CreateInput{DisplayName: "Alice", Region: "na-east"})
	s.Require().NoError(err)

	second, err := s.service.Create(s.ctx, "u1", CreateInput{DisplayName: "Someone Else", Region: "eu-west"})
	s.Require().NoError(err)

	// The second create returns the original, untouched.
	s.Equal(first.DisplayName, second.DisplayName)
	s.Equal(first.Region, second.Region)
}

func (s *ServiceSuite) TestCreateRequiresAuthentication() {
	_, err := s.service.Create(s.ctx, "", CreateInput{DisplayName: "Alice", Region: "na-east"})
	s.ErrorIs(err, model.ErrNotAuthenticated)
}

func (s *ServiceSuite) TestCreateValidatesRequiredFields() {
	_, err := s.service.Create(s.ctx, "u1", CreateInput{Region: "na-east"})
	s.ErrorIs(err, model.ErrValidation)

	_, err = s.service.Create(s.ctx, "u1", CreateInput{DisplayName: "Alice"})
	s.ErrorIs(err, model.ErrValidation)
}

// Update tests

func (s *ServiceSuite) TestUpdateAppliesPartialEdit() {
	_, err := s.service.Create(s.ctx, "u1", CreateInput{DisplayName: "Alice", Region: "na-east", Bio: "hi"})
	s.Require().NoError(err)

	bio := "new bio"
	updated, err := s.service.Update(s.ctx, "u1", model.ProfileUpdate{Bio: &bio})
	s.Require().NoError(err)

	s.Equal("new bio", updated.Bio)
	s.Equal("Alice", updated.DisplayName)
	s.Equal("na-east", updated.Region)
}

func (s *ServiceSuite) TestUpdateMissingProfileFails() {
	bio := "x"
	_, err := s.service.Update(s.ctx, "u1", model.ProfileUpdate{Bio: &bio})
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *ServiceSuite) TestUpdateCannotClearRegion() {
	_, err := s.service.Create(s.ctx, "u1", CreateInput{DisplayName: "Alice", Region: "na-east"})
	s.Require().NoError(err)

	empty := ""
	_, err = s.service.Update(s.ctx, "u1", model.ProfileUpdate{Region: &empty})
	s.ErrorIs(err, model.ErrValidation)
}

// Get tests

func (s *ServiceSuite) TestGetReturnsGamesAndAvailability() {
	s.seedGame("g1")
	_, err := s.service.Create(s.ctx, "u1", CreateInput{DisplayName: "Alice", Region: "na-east"})
	s.Require().NoError(err)

	_, err = s.service.AddGame(s.ctx, "u1", GameInput{GameID: "g1", SkillLevel: "advanced"})
	s.Require().NoError(err)

	slots := []model.AvailabilitySlot{{DayOfWeek: 5, StartTime: "18:00", EndTime: "23:00", Timezone: "UTC-5"}}
	s.Require().NoError(s.service.SetAvailability(s.ctx, "u1", slots))

	enriched, err := s.service.Get(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal("Alice", enriched.Profile.DisplayName)
	s.Require().Len(enriched.Games, 1)
	s.Equal(model.GameID("g1"), enriched.Games[0].GameID)
	s.Equal(slots, enriched.Availability)
}

func (s *ServiceSuite) TestGetUnknownUserFails() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrProfileNotFound)
}

// AddGame tests

func (s *ServiceSuite) TestAddGameLinksActive() {
	s.seedGame("g1")

	hours := 120
	link, err := s.service.AddGame(s.ctx, "u1", GameInput{
		GameID:        "g1",
		SkillLevel:    "intermediate",
		HoursPlayed:   &hours,
		PreferredRole: "support",
	})
	s.Require().NoError(err)

	s.True(link.IsActive)
	s.Equal("intermediate", link.SkillLevel)
	s.Equal(&hours, link.HoursPlayed)
}

func (s *ServiceSuite) TestAddGameOverwritesExistingLink() {
	s.seedGame("g1")

	_, err := s.service.AddGame(s.ctx, "u1", GameInput{GameID: "g1", SkillLevel: "beginner"})
	s.Require().NoError(err)

	_, err = s.service.AddGame(s.ctx, "u1", GameInput{GameID: "g1", SkillLevel: "advanced"})
	s.Require().NoError(err)

	links, err := s.storage.GetUserGames(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Equal("advanced", links[0].SkillLevel)
}

func (s *ServiceSuite) TestAddGameUnknownGameFails() {
	_, err := s.service.AddGame(s.ctx, "u1", GameInput{GameID: "missing"})
	s.ErrorIs(err, model.ErrGameNotFound)
}

// RemoveGame tests

func (s *ServiceSuite) TestRemoveGameDeletesLink() {
	s.seedGame("g1")
	_, err := s.service.AddGame(s.ctx, "u1", GameInput{GameID: "g1"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveGame(s.ctx, "u1", "g1"))

	links, err := s.storage.GetUserGames(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(links)
}

func (s *ServiceSuite) TestRemoveGameMissingLinkFails() {
	err := s.service.RemoveGame(s.ctx, "u1", "g1")
	s.ErrorIs(err, model.ErrUserGameNotFound)
}

// SetAvailability tests

func (s *ServiceSuite) TestSetAvailabilityReplacesWholesale() {
	first := []model.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "18:00", EndTime: "20:00", Timezone: "UTC"},
		{DayOfWeek: 2, StartTime: "18:00", EndTime: "20:00", Timezone: "UTC"},
	}
	s.Require().NoError(s.service.SetAvailability(s.ctx, "u1", first))

	second := []model.AvailabilitySlot{{DayOfWeek: 6, StartTime: "10:00", EndTime: "12:00", Timezone: "UTC"}}
	s.Require().NoError(s.service.SetAvailability(s.ctx, "u1", second))

	got, err := s.storage.GetAvailability(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(second, got)
}

func (s *ServiceSuite) TestSetAvailabilityValidatesDayOfWeek() {
	err := s.service.SetAvailability(s.ctx, "u1", []model.AvailabilitySlot{{DayOfWeek: 7}})
	s.ErrorIs(err, model.ErrValidation)
}
