package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateProfileRequest is the request body for creating a profile
type CreateProfileRequest struct {
	DisplayName        string `json:"display_name"`
	Bio                string `json:"bio,omitempty"`
	Region             string `json:"region"`
	CommunicationStyle string `json:"communication_style,omitempty"`
	DiscordTag         string `json:"discord_tag,omitempty"`
	SteamID            string `json:"steam_id,omitempty"`
}

// UpdateProfileRequest is the request body for a partial profile edit.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName        *string `json:"display_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	Region             *string `json:"region,omitempty"`
	CommunicationStyle *string `json:"communication_style,omitempty"`
	DiscordTag         *string `json:"discord_tag,omitempty"`
	SteamID            *string `json:"steam_id,omitempty"`
}

// AddGameRequest is the request body for linking a game to a profile
type AddGameRequest struct {
	GameID        string `json:"game_id"`
	SkillLevel    string `json:"skill_level,omitempty"`
	HoursPlayed   *int   `json:"hours_played,omitempty"`
	PreferredRole string `json:"preferred_role,omitempty"`
}

// AvailabilitySlot is one weekly availability window
type AvailabilitySlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

// SetAvailabilityRequest replaces a user's weekly availability
type SetAvailabilityRequest struct {
	Slots []AvailabilitySlot `json:"slots"`
}

// CreateGameRequest is the request body for adding a catalog game
type CreateGameRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// CreateMatchRequest is the request body for initiating a match
type CreateMatchRequest struct {
	TargetUserID string `json:"target_user_id"`
}

// RespondMatchRequest is the request body for answering a match invite
type RespondMatchRequest struct {
	Decision string `json:"decision"`
}

// SendMessageRequest is the request body for a match chat message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// CreateLFGPostRequest is the request body for posting to the LFG board
type CreateLFGPostRequest struct {
	GameID        string   `json:"game_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	SkillLevel    string   `json:"skill_level,omitempty"`
	PlayersNeeded int      `json:"players_needed"`
	ScheduledTime *int64   `json:"scheduled_time,omitempty"` // unix millis
	Tags          []string `json:"tags,omitempty"`
}

// UpdateLFGPostRequest is the request body for a partial post edit.
// Absent fields are left untouched.
type UpdateLFGPostRequest struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	SkillLevel    *string   `json:"skill_level,omitempty"`
	PlayersNeeded *int      `json:"players_needed,omitempty"`
	ScheduledTime *int64    `json:"scheduled_time,omitempty"` // unix millis
	Tags          *[]string `json:"tags,omitempty"`
	IsActive      *bool     `json:"is_active,omitempty"`
}
