package redis

import (
	"fmt"

	"github.com/squadup/squadup/internal/model"
)

// Key prefix for all matchmaking data
const keyPrefix = "squadup"

// Key generation functions for each entity type

func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

func registeredUserKey(userID model.UserID) string {
	return fmt.Sprintf("%s:registered_user:%s", keyPrefix, userID)
}

// usernameIndexKey maps a login username to its user id
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:username:%s", keyPrefix, username)
}

func profileKey(userID model.UserID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, userID)
}

// regionIndexKey is a ZSET of user ids scored by profile creation time,
// giving region scans a stable order.
func regionIndexKey(region string) string {
	return fmt.Sprintf("%s:profiles:region:%s", keyPrefix, region)
}

func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameNameIndexKey maps a unique game name to its id
func gameNameIndexKey(name string) string {
	return fmt.Sprintf("%s:game_name:%s", keyPrefix, name)
}

// gamesIndexKey is a ZSET of all game ids scored by insertion sequence
func gamesIndexKey() string {
	return fmt.Sprintf("%s:games", keyPrefix)
}

// gamesSeqKey is the insertion sequence counter for the games index
func gamesSeqKey() string {
	return fmt.Sprintf("%s:games:seq", keyPrefix)
}

func userGameKey(userID model.UserID, gameID model.GameID) string {
	return fmt.Sprintf("%s:user_game:%s:%s", keyPrefix, userID, gameID)
}

// userGamesIndexKey is a SET of game ids linked to the user
func userGamesIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:user_games:%s", keyPrefix, userID)
}

func availabilityKey(userID model.UserID) string {
	return fmt.Sprintf("%s:availability:%s", keyPrefix, userID)
}

func postKey(id model.LFGPostID) string {
	return fmt.Sprintf("%s:lfg:%s", keyPrefix, id)
}

// Post index ZSETs, all scored by creation time so ZRevRange yields
// newest-first scans.

func activePostsIndexKey() string {
	return fmt.Sprintf("%s:lfg_active", keyPrefix)
}

func gamePostsIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:lfg_game:%s", keyPrefix, gameID)
}

func regionPostsIndexKey(region string) string {
	return fmt.Sprintf("%s:lfg_region:%s", keyPrefix, region)
}

func authorPostsIndexKey(authorID model.UserID) string {
	return fmt.Sprintf("%s:lfg_author:%s", keyPrefix, authorID)
}

func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchPairKey is the uniqueness key for the unordered user pair: the
// smaller id always comes first, so both orientations map to one key.
func matchPairKey(a, b model.UserID) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s:match_pair:%s:%s", keyPrefix, a, b)
}

// userMatchesIndexKey is a ZSET of match ids scored by creation time
func userMatchesIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:matches:%s", keyPrefix, userID)
}

// matchMessagesKey is a LIST of messages in send order
func matchMessagesKey(matchID model.MatchID) string {
	return fmt.Sprintf("%s:messages:%s", keyPrefix, matchID)
}
