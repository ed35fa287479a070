package response

import (
	"time"

	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/auth"
	"github.com/squadup/squadup/internal/services/lfg"
	"github.com/squadup/squadup/internal/services/matchledger"
	"github.com/squadup/squadup/internal/services/matchmaking"
	"github.com/squadup/squadup/internal/services/profile"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		UserID:       string(s.UserID),
		Username:     s.Username,
		SessionToken: s.Token,
	}
}

// Profile represents a matchmaking profile in API responses
type Profile struct {
	UserID             string    `json:"user_id"`
	DisplayName        string    `json:"display_name"`
	Bio                string    `json:"bio,omitempty"`
	Region             string    `json:"region"`
	CommunicationStyle string    `json:"communication_style,omitempty"`
	DiscordTag         string    `json:"discord_tag,omitempty"`
	SteamID            string    `json:"steam_id,omitempty"`
	IsVerified         bool      `json:"is_verified"`
	CreatedAt          time.Time `json:"created_at"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		UserID:             string(p.UserID),
		DisplayName:        p.DisplayName,
		Bio:                p.Bio,
		Region:             p.Region,
		CommunicationStyle: p.CommunicationStyle,
		DiscordTag:         p.DiscordTag,
		SteamID:            p.SteamID,
		IsVerified:         p.IsVerified,
		CreatedAt:          p.CreatedAt,
	}
}

// optionalProfile converts a possibly-absent profile
func optionalProfile(p *model.Profile) *Profile {
	if p == nil {
		return nil
	}
	out := ProfileFromModel(p)
	return &out
}

// Game represents a catalog game
type Game struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:       string(g.ID),
		Name:     g.Name,
		Category: g.Category,
		Icon:     g.Icon,
	}
}

// GamesFromModels converts a slice of catalog games
func GamesFromModels(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

func optionalGame(g *model.Game) *Game {
	if g == nil {
		return nil
	}
	out := GameFromModel(g)
	return &out
}

// UserGame represents a profile's game link
type UserGame struct {
	GameID        string `json:"game_id"`
	SkillLevel    string `json:"skill_level,omitempty"`
	HoursPlayed   *int   `json:"hours_played,omitempty"`
	PreferredRole string `json:"preferred_role,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// UserGameFromModel converts a model.UserGame
func UserGameFromModel(ug *model.UserGame) UserGame {
	return UserGame{
		GameID:        string(ug.GameID),
		SkillLevel:    ug.SkillLevel,
		HoursPlayed:   ug.HoursPlayed,
		PreferredRole: ug.PreferredRole,
		IsActive:      ug.IsActive,
	}
}

// AvailabilitySlot is one weekly availability window
type AvailabilitySlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// SlotFromModel converts a model.AvailabilitySlot
func SlotFromModel(s model.AvailabilitySlot) AvailabilitySlot {
	return AvailabilitySlot{
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Timezone:  s.Timezone,
	}
}

// EnrichedProfile is a profile with games and availability attached
type EnrichedProfile struct {
	Profile      Profile            `json:"profile"`
	Games        []UserGame         `json:"games"`
	Availability []AvailabilitySlot `json:"availability"`
}

// EnrichedProfileFromService converts a profile.EnrichedProfile
func EnrichedProfileFromService(ep *profile.EnrichedProfile) EnrichedProfile {
	games := make([]UserGame, len(ep.Games))
	for i, g := range ep.Games {
		games[i] = UserGameFromModel(g)
	}
	slots := make([]AvailabilitySlot, len(ep.Availability))
	for i, s := range ep.Availability {
		slots[i] = SlotFromModel(s)
	}
	return EnrichedProfile{
		Profile:      ProfileFromModel(ep.Profile),
		Games:        games,
		Availability: slots,
	}
}

// MutualGameDetail is one shared game in a suggestion
type MutualGameDetail struct {
	Game       *Game  `json:"game"`
	MySkill    string `json:"my_skill,omitempty"`
	MyRole     string `json:"my_role,omitempty"`
	TheirSkill string `json:"their_skill,omitempty"`
	TheirRole  string `json:"their_role,omitempty"`
}

// Suggestion is one ranked matchmaking candidate
type Suggestion struct {
	Profile            Profile            `json:"profile"`
	CompatibilityScore int                `json:"compatibility_score"`
	MutualGames        []MutualGameDetail `json:"mutual_games"`
}

// SuggestionsFromService converts matchmaking suggestions
func SuggestionsFromService(suggestions []*matchmaking.Suggestion) []Suggestion {
	out := make([]Suggestion, len(suggestions))
	for i, s := range suggestions {
		details := make([]MutualGameDetail, len(s.MutualGames))
		for j, d := range s.MutualGames {
			details[j] = MutualGameDetail{
				Game:       optionalGame(d.Game),
				MySkill:    d.MySkill,
				MyRole:     d.MyRole,
				TheirSkill: d.TheirSkill,
				TheirRole:  d.TheirRole,
			}
		}
		out[i] = Suggestion{
			Profile:            ProfileFromModel(s.Profile),
			CompatibilityScore: s.Score,
			MutualGames:        details,
		}
	}
	return out
}

// Match represents a match in API responses
type Match struct {
	ID                 string    `json:"id"`
	UserA              string    `json:"user_a"`
	UserB              string    `json:"user_b"`
	CompatibilityScore int       `json:"compatibility_score"`
	MutualGameIDs      []string  `json:"mutual_game_ids"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// MatchFromModel converts a model.Match
func MatchFromModel(m *model.Match) Match {
	ids := make([]string, len(m.MutualGames))
	for i, gid := range m.MutualGames {
		ids[i] = string(gid)
	}
	return Match{
		ID:                 string(m.ID),
		UserA:              string(m.UserA),
		UserB:              string(m.UserB),
		CompatibilityScore: m.CompatibilityScore,
		MutualGameIDs:      ids,
		Status:             string(m.Status),
		CreatedAt:          m.CreatedAt,
	}
}

// EnrichedMatch is a match with display data for the caller's view
type EnrichedMatch struct {
	Match
	OtherProfile *Profile `json:"other_profile"`
	MutualGames  []Game   `json:"mutual_games"`
	IsInitiator  bool     `json:"is_initiator"`
}

// EnrichedMatchesFromService converts the match ledger's listing
func EnrichedMatchesFromService(matches []*matchledger.EnrichedMatch) []EnrichedMatch {
	out := make([]EnrichedMatch, len(matches))
	for i, em := range matches {
		out[i] = EnrichedMatch{
			Match:        MatchFromModel(em.Match),
			OtherProfile: optionalProfile(em.OtherProfile),
			MutualGames:  GamesFromModels(em.MutualGames),
			IsInitiator:  em.IsInitiator,
		}
	}
	return out
}

// Message represents a match chat message
type Message struct {
	ID       string    `json:"id"`
	MatchID  string    `json:"match_id"`
	SenderID string    `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

// MessageFromModel converts a model.Message
func MessageFromModel(m *model.Message) Message {
	return Message{
		ID:       string(m.ID),
		MatchID:  string(m.MatchID),
		SenderID: string(m.SenderID),
		Content:  m.Content,
		SentAt:   m.SentAt,
	}
}

// MessagesFromModels converts a conversation
func MessagesFromModels(msgs []*model.Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = MessageFromModel(m)
	}
	return out
}

// LFGPost represents a board post
type LFGPost struct {
	ID            string     `json:"id"`
	AuthorID      string     `json:"author_id"`
	GameID        string     `json:"game_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	SkillLevel    string     `json:"skill_level,omitempty"`
	Region        string     `json:"region"`
	PlayersNeeded int        `json:"players_needed"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	IsActive      bool       `json:"is_active"`
	Tags          []string   `json:"tags,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// LFGPostFromModel converts a model.LFGPost
func LFGPostFromModel(p *model.LFGPost) LFGPost {
	return LFGPost{
		ID:            string(p.ID),
		AuthorID:      string(p.AuthorID),
		GameID:        string(p.GameID),
		Title:         p.Title,
		Description:   p.Description,
		SkillLevel:    p.SkillLevel,
		Region:        p.Region,
		PlayersNeeded: p.PlayersNeeded,
		ScheduledTime: p.ScheduledTime,
		IsActive:      p.IsActive,
		Tags:          p.Tags,
		CreatedAt:     p.CreatedAt,
	}
}

// EnrichedLFGPost is a post with author and game attached
type EnrichedLFGPost struct {
	LFGPost
	Author *Profile `json:"author,omitempty"`
	Game   *Game    `json:"game,omitempty"`
}

// EnrichedLFGPostsFromService converts the LFG service's listing
func EnrichedLFGPostsFromService(posts []*lfg.EnrichedPost) []EnrichedLFGPost {
	out := make([]EnrichedLFGPost, len(posts))
	for i, ep := range posts {
		out[i] = EnrichedLFGPost{
			LFGPost: LFGPostFromModel(ep.Post),
			Author:  optionalProfile(ep.Author),
			Game:    optionalGame(ep.Game),
		}
	}
	return out
}
