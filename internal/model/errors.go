package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrUserNotFound     = errors.New("user not found")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Profile errors
	ErrProfileNotFound  = errors.New("profile not found")
	ErrNotProfileOwner  = errors.New("not the profile owner")
	ErrUserGameNotFound = errors.New("game link not found")

	// Catalog errors
	ErrGameNotFound = errors.New("game not found")

	// LFG errors
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("not the post author")

	// Match errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrNotMatchTarget  = errors.New("only the invited user may respond")
	ErrNotMatchParty   = errors.New("not a party to this match")
	ErrSelfMatch       = errors.New("cannot match a user with themselves")
	ErrInvalidDecision = errors.New("decision must be accepted or declined")

	// Validation
	ErrValidation = errors.New("validation failed")
)
