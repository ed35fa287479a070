package model

// GameID uniquely identifies a catalog game
type GameID string

// Game is a catalog entry. Names are unique; the matchmaking core treats
// the catalog as read-only.
type Game struct {
	ID       GameID
	Name     string
	Category string // "FPS", "MOBA", "Battle Royale", "MMO", ...
	Icon     string
}

// UserGame links a user to a catalog game with their skill and preferences.
// At most one link per (user, game); re-adding a game updates the link.
type UserGame struct {
	UserID        UserID
	GameID        GameID
	SkillLevel    string // "Beginner", "Intermediate", "Advanced", "Pro"
	HoursPlayed   *int
	PreferredRole string // "Support", "DPS", "Tank", ...
	IsActive      bool   // currently playing this game
}
