package model

import "time"

// Profile is a user's public matchmaking profile. At most one per user;
// mutated only by its owner, never deleted.
type Profile struct {
	UserID             UserID
	DisplayName        string
	Bio                string
	Region             string // coarse geographic/server tag, e.g. "NA-East"
	CommunicationStyle string // free-form tag, e.g. "Casual", "Competitive"
	DiscordTag         string
	SteamID            string
	IsVerified         bool
	CreatedAt          time.Time
}

// ProfileUpdate carries an owner's partial profile edit. Nil fields are
// left untouched.
type ProfileUpdate struct {
	DisplayName        *string
	Bio                *string
	Region             *string
	CommunicationStyle *string
	DiscordTag         *string
	SteamID            *string
}

// Apply copies the set fields onto the profile.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Region != nil {
		p.Region = *u.Region
	}
	if u.CommunicationStyle != nil {
		p.CommunicationStyle = *u.CommunicationStyle
	}
	if u.DiscordTag != nil {
		p.DiscordTag = *u.DiscordTag
	}
	if u.SteamID != nil {
		p.SteamID = *u.SteamID
	}
}

// AvailabilitySlot is one recurring weekly window a user is free to play.
// Stored per user, replaced wholesale on write; matchmaking does not read it.
type AvailabilitySlot struct {
	DayOfWeek int    // 0-6 (Sunday-Saturday)
	StartTime string // "18:00"
	EndTime   string // "23:00"
	Timezone  string // "UTC-5", "UTC+1", ...
}
