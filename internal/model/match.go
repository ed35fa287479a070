package model

import "time"

// MatchID uniquely identifies a match relationship
type MatchID string

// MatchStatus is the match lifecycle state
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusDeclined MatchStatus = "declined"
)

// ValidResponse reports whether s is a decision the responding party may
// apply to a pending match.
func (s MatchStatus) ValidResponse() bool {
	return s == MatchStatusAccepted || s == MatchStatusDeclined
}

// Match is a persistent relationship between exactly two distinct users.
// UserA initiated; only UserB may respond. At most one match exists per
// unordered user pair.
type Match struct {
	ID                 MatchID
	UserA              UserID
	UserB              UserID
	CompatibilityScore int // 0-100, pair formula at creation time
	MutualGames        []GameID
	Status             MatchStatus
	CreatedAt          time.Time
}

// Other returns the match party that is not the given user.
func (m *Match) Other(userID UserID) UserID {
	if m.UserA == userID {
		return m.UserB
	}
	return m.UserA
}

// Involves reports whether the user is one of the two match parties.
func (m *Match) Involves(userID UserID) bool {
	return m.UserA == userID || m.UserB == userID
}

// MessageID uniquely identifies a message
type MessageID string

// Message is a chat message between matched users. Plain storage only:
// no delivery or presence semantics.
type Message struct {
	ID       MessageID
	MatchID  MatchID
	SenderID UserID
	Content  string
	SentAt   time.Time
}
