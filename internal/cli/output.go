package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Profile:
		o.printProfile(v)
	case EnrichedProfile:
		o.printEnrichedProfile(v)
	case Game:
		o.printGame(v)
	case []Game:
		for _, g := range v {
			o.printGame(g)
		}
	case []Suggestion:
		o.printSuggestions(v)
	case Match:
		o.printMatch(v)
	case []EnrichedMatch:
		o.printEnrichedMatches(v)
	case Message:
		o.printMessage(v)
	case []Message:
		for _, m := range v {
			o.printMessage(m)
		}
	case LFGPost:
		o.printLFGPost(v)
	case []EnrichedLFGPost:
		o.printLFGPosts(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// AuthResult response type (matches API)
type AuthResult struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	SessionToken string `json:"session_token"`
}

// Profile response type
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

// UserGame response type
type UserGame struct {
	GameID        string `json:"game_id"`
	SkillLevel    string `json:"skill_level,omitempty"`
	HoursPlayed   *int   `json:"hours_played,omitempty"`
	PreferredRole string `json:"preferred_role,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// AvailabilitySlot response type
type AvailabilitySlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// EnrichedProfile response type
type EnrichedProfile struct {
	Profile      Profile            `json:"profile"`
	Games        []UserGame         `json:"games"`
	Availability []AvailabilitySlot `json:"availability"`
}

// Game response type
type Game struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// MutualGameDetail response type
type MutualGameDetail struct {
	Game       *Game  `json:"game"`
	MySkill    string `json:"my_skill,omitempty"`
	MyRole     string `json:"my_role,omitempty"`
	TheirSkill string `json:"their_skill,omitempty"`
	TheirRole  string `json:"their_role,omitempty"`
}

// Suggestion response type
type Suggestion struct {
	Profile            Profile            `json:"profile"`
	CompatibilityScore int                `json:"compatibility_score"`
	MutualGames        []MutualGameDetail `json:"mutual_games"`
}

// Match response type
type Match struct {
	ID                 string    `json:"id"`
	UserA              string    `json:"user_a"`
	UserB              string    `json:"user_b"`
	CompatibilityScore int       `json:"compatibility_score"`
	MutualGameIDs      []string  `json:"mutual_game_ids"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// EnrichedMatch response type
type EnrichedMatch struct {
	Match
	OtherProfile *Profile `json:"other_profile"`
	MutualGames  []Game   `json:"mutual_games"`
	IsInitiator  bool     `json:"is_initiator"`
}

// Message response type
type Message struct {
	ID       string    `json:"id"`
	MatchID  string    `json:"match_id"`
	SenderID string    `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

// LFGPost response type
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

// EnrichedLFGPost response type
type EnrichedLFGPost struct {
	LFGPost
	Author *Profile `json:"author,omitempty"`
	Game   *Game    `json:"game,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("User: %s (%s)\n", a.Username, a.UserID)
	if a.SessionToken != "" {
		fmt.Printf("Token: %s\n", a.SessionToken)
	}
}

func (o *Output) printProfile(p Profile) {
	verifiedStr := ""
	if p.IsVerified {
		verifiedStr = " [verified]"
	}
	fmt.Printf("Profile: %s (%s)%s\n", p.DisplayName, p.UserID, verifiedStr)
	fmt.Printf("Region: %s\n", p.Region)
	if p.CommunicationStyle != "" {
		fmt.Printf("Style: %s\n", p.CommunicationStyle)
	}
	if p.Bio != "" {
		fmt.Printf("Bio: %s\n", p.Bio)
	}
	if p.DiscordTag != "" {
		fmt.Printf("Discord: %s\n", p.DiscordTag)
	}
}

func (o *Output) printEnrichedProfile(e EnrichedProfile) {
	o.printProfile(e.Profile)

	if len(e.Games) > 0 {
		fmt.Printf("Games (%d):\n", len(e.Games))
		for _, g := range e.Games {
			detail := []string{}
			if g.SkillLevel != "" {
				detail = append(detail, g.SkillLevel)
			}
			if g.PreferredRole != "" {
				detail = append(detail, g.PreferredRole)
			}
			if !g.IsActive {
				detail = append(detail, "inactive")
			}
			suffix := ""
			if len(detail) > 0 {
				suffix = " (" + strings.Join(detail, ", ") + ")"
			}
			fmt.Printf("  - %s%s\n", g.GameID, suffix)
		}
	}

	if len(e.Availability) > 0 {
		days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		fmt.Printf("Availability (%d):\n", len(e.Availability))
		for _, s := range e.Availability {
			day := fmt.Sprintf("day %d", s.DayOfWeek)
			if s.DayOfWeek >= 0 && s.DayOfWeek < len(days) {
				day = days[s.DayOfWeek]
			}
			fmt.Printf("  - %s %s-%s (%s)\n", day, s.StartTime, s.EndTime, s.Timezone)
		}
	}
}

func (o *Output) printGame(g Game) {
	if g.Category != "" {
		fmt.Printf("%s - %s [%s]\n", g.ID, g.Name, g.Category)
	} else {
		fmt.Printf("%s - %s\n", g.ID, g.Name)
	}
}

func (o *Output) printSuggestions(suggestions []Suggestion) {
	if len(suggestions) == 0 {
		fmt.Println("No suggestions found")
		return
	}

	for i, s := range suggestions {
		fmt.Printf("%d. %s (%s) - score %d\n", i+1, s.Profile.DisplayName, s.Profile.UserID, s.CompatibilityScore)
		for _, mg := range s.MutualGames {
			name := "?"
			if mg.Game != nil {
				name = mg.Game.Name
			}
			fmt.Printf("   %s: you %s, them %s\n", name, orDash(mg.MySkill), orDash(mg.TheirSkill))
		}
	}
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s\n", m.ID)
	fmt.Printf("Status: %s\n", m.Status)
	fmt.Printf("Score: %d\n", m.CompatibilityScore)
	fmt.Printf("Between: %s and %s\n", m.UserA, m.UserB)
}

func (o *Output) printEnrichedMatches(matches []EnrichedMatch) {
	if len(matches) == 0 {
		fmt.Println("No matches found")
		return
	}

	for _, m := range matches {
		other := m.UserB
		if !m.IsInitiator {
			other = m.UserA
		}
		if m.OtherProfile != nil {
			other = fmt.Sprintf("%s (%s)", m.OtherProfile.DisplayName, m.OtherProfile.UserID)
		}
		direction := "sent"
		if !m.IsInitiator {
			direction = "received"
		}
		fmt.Printf("%s [%s, %s] with %s - score %d\n", m.ID, m.Status, direction, other, m.CompatibilityScore)
		if len(m.MutualGames) > 0 {
			names := make([]string, len(m.MutualGames))
			for i, g := range m.MutualGames {
				names[i] = g.Name
			}
			fmt.Printf("  Mutual games: %s\n", strings.Join(names, ", "))
		}
	}
}

func (o *Output) printMessage(m Message) {
	fmt.Printf("[%s] %s: %s\n", m.SentAt.Format("2006-01-02 15:04"), m.SenderID, m.Content)
}

func (o *Output) printLFGPost(p LFGPost) {
	activeStr := ""
	if !p.IsActive {
		activeStr = " [inactive]"
	}
	fmt.Printf("Post: %s%s\n", p.ID, activeStr)
	fmt.Printf("Title: %s\n", p.Title)
	fmt.Printf("Game: %s\n", p.GameID)
	fmt.Printf("Region: %s\n", p.Region)
	fmt.Printf("Players needed: %d\n", p.PlayersNeeded)
	if p.SkillLevel != "" {
		fmt.Printf("Skill: %s\n", p.SkillLevel)
	}
	if p.ScheduledTime != nil {
		fmt.Printf("Scheduled: %s\n", p.ScheduledTime.Format(time.RFC1123))
	}
	if len(p.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
}

func (o *Output) printLFGPosts(posts []EnrichedLFGPost) {
	if len(posts) == 0 {
		fmt.Println("No posts found")
		return
	}

	for _, p := range posts {
		author := p.AuthorID
		if p.Author != nil {
			author = p.Author.DisplayName
		}
		game := p.GameID
		if p.Game != nil {
			game = p.Game.Name
		}
		activeStr := ""
		if !p.IsActive {
			activeStr = " [inactive]"
		}
		fmt.Printf("%s%s - %s\n", p.ID, activeStr, p.Title)
		fmt.Printf("  %s | %s | need %d | by %s\n", game, p.Region, p.PlayersNeeded, author)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
