package model

import "time"

// LFGPostID uniquely identifies a looking-for-group post
type LFGPostID string

// LFGPost is an open request for additional players. Region is snapshotted
// from the author's profile at creation time and never re-derived.
type LFGPost struct {
	ID            LFGPostID
	AuthorID      UserID
	GameID        GameID
	Title         string
	Description   string
	SkillLevel    string
	Region        string
	PlayersNeeded int
	ScheduledTime *time.Time
	IsActive      bool
	Tags          []string
	CreatedAt     time.Time
}

// LFGPostUpdate carries an author's partial edit of a post. Nil fields are
// left untouched. Deactivation happens through IsActive.
type LFGPostUpdate struct {
	Title         *string
	Description   *string
	SkillLevel    *string
	PlayersNeeded *int
	ScheduledTime *time.Time
	Tags          *[]string
	IsActive      *bool
}

// Apply copies the set fields onto the post.
func (u LFGPostUpdate) Apply(p *LFGPost) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.SkillLevel != nil {
		p.SkillLevel = *u.SkillLevel
	}
	if u.PlayersNeeded != nil {
		p.PlayersNeeded = *u.PlayersNeeded
	}
	if u.ScheduledTime != nil {
		p.ScheduledTime = u.ScheduledTime
	}
	if u.Tags != nil {
		p.Tags = *u.Tags
	}
	if u.IsActive != nil {
		p.IsActive = *u.IsActive
	}
}
