package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON values; secondary indexes are ZSETs scored by
// creation time (stable ascending order for region scans, ZRevRange for the
// newest-first post and match scans).
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// getJSON fetches the key and unmarshals it into dest, mapping a missing
// key to notFound.
func (s *Storage) getJSON(ctx context.Context, key string, dest any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	var user model.User
	if err := s.getJSON(ctx, userKey(id), &user, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// Registered user operations

func (s *Storage) SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error {
	data, err := json.Marshal(ru)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + username index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredUserKey(ru.UserID), data, 0)
	pipe.Set(ctx, usernameIndexKey(ru.Username), string(ru.UserID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error) {
	var ru model.RegisteredUser
	if err := s.getJSON(ctx, registeredUserKey(userID), &ru, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &ru, nil
}

func (s *Storage) GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error) {
	userID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetRegisteredUser(ctx, model.UserID(userID))
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	// A profile's region may change; drop the old index entry first.
	if old, err := s.GetProfile(ctx, profile.UserID); err == nil && old.Region != profile.Region {
		if err := s.client.ZRem(ctx, regionIndexKey(old.Region), string(profile.UserID)).Err(); err != nil {
			return err
		}
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, profileKey(profile.UserID), data, 0)
	pipe.ZAdd(ctx, regionIndexKey(profile.Region), redis.Z{
		Score:  float64(profile.CreatedAt.UnixNano()),
		Member: string(profile.UserID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProfile(ctx context.Context, userID model.UserID) (*model.Profile, error) {
	var profile model.Profile
	if err := s.getJSON(ctx, profileKey(userID), &profile, model.ErrProfileNotFound); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Storage) GetProfilesByRegion(ctx context.Context, region string, limit int) ([]*model.Profile, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	userIDs, err := s.client.ZRange(ctx, regionIndexKey(region), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []*model.Profile{}, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = profileKey(model.UserID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	profiles := make([]*model.Profile, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index entry outlived the record
		}
		var p model.Profile
		if err := json.Unmarshal([]byte(val.(string)), &p); err != nil {
			continue
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// Game catalog operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Sequence counter keeps ListGames in insertion order; ZAddNX leaves
	// the original position on re-save.
	seq, err := s.client.Incr(ctx, gamesSeqKey()).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.Set(ctx, gameNameIndexKey(game.Name), string(game.ID), 0)
	pipe.ZAddNX(ctx, gamesIndexKey(), redis.Z{Score: float64(seq), Member: string(game.ID)})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, gameKey(id), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	id, err := s.client.Get(ctx, gameNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return s.GetGame(ctx, model.GameID(id))
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.ZRange(ctx, gamesIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchGames(ctx, ids)
}

func (s *Storage) ListGamesByCategory(ctx context.Context, category string) ([]*model.Game, error) {
	games, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	var result []*model.Game
	for _, g := range games {
		if g.Category == category {
			result = append(result, g)
		}
	}
	return result, nil
}

func (s *Storage) fetchGames(ctx context.Context, ids []string) ([]*model.Game, error) {
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var g model.Game
		if err := json.Unmarshal([]byte(val.(string)), &g); err != nil {
			continue
		}
		games = append(games, &g)
	}
	return games, nil
}

// User game link operations

func (s *Storage) SaveUserGame(ctx context.Context, link *model.UserGame) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userGameKey(link.UserID, link.GameID), data, 0)
	pipe.SAdd(ctx, userGamesIndexKey(link.UserID), string(link.GameID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUserGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.UserGame, error) {
	var link model.UserGame
	if err := s.getJSON(ctx, userGameKey(userID, gameID), &link, model.ErrUserGameNotFound); err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Storage) GetUserGames(ctx context.Context, userID model.UserID) ([]*model.UserGame, error) {
	gameIDs, err := s.client.SMembers(ctx, userGamesIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(gameIDs) == 0 {
		return []*model.UserGame{}, nil
	}
	sort.Strings(gameIDs) // SMembers order is arbitrary

	keys := make([]string, len(gameIDs))
	for i, id := range gameIDs {
		keys[i] = userGameKey(userID, model.GameID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	links := make([]*model.UserGame, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var link model.UserGame
		if err := json.Unmarshal([]byte(val.(string)), &link); err != nil {
			continue
		}
		links = append(links, &link)
	}
	return links, nil
}

func (s *Storage) DeleteUserGame(ctx context.Context, userID model.UserID, gameID model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, userGameKey(userID, gameID))
	pipe.SRem(ctx, userGamesIndexKey(userID), string(gameID))
	_, err := pipe.Exec(ctx)
	return err
}

// Availability operations

func (s *Storage) SaveAvailability(ctx context.Context, userID model.UserID, slots []model.AvailabilitySlot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, availabilityKey(userID), data, 0).Err()
}

func (s *Storage) GetAvailability(ctx context.Context, userID model.UserID) ([]model.AvailabilitySlot, error) {
	data, err := s.client.Get(ctx, availabilityKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.AvailabilitySlot{}, nil
		}
		return nil, err
	}
	var slots []model.AvailabilitySlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// LFG post operations

func (s *Storage) SaveLFGPost(ctx context.Context, post *model.LFGPost) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}

	score := float64(post.CreatedAt.UnixNano())
	member := string(post.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, postKey(post.ID), data, 0)
	pipe.ZAdd(ctx, gamePostsIndexKey(post.GameID), redis.Z{Score: score, Member: member})
	pipe.ZAdd(ctx, regionPostsIndexKey(post.Region), redis.Z{Score: score, Member: member})
	pipe.ZAdd(ctx, authorPostsIndexKey(post.AuthorID), redis.Z{Score: score, Member: member})
	if post.IsActive {
		pipe.ZAdd(ctx, activePostsIndexKey(), redis.Z{Score: score, Member: member})
	} else {
		pipe.ZRem(ctx, activePostsIndexKey(), member)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLFGPost(ctx context.Context, id model.LFGPostID) (*model.LFGPost, error) {
	var post model.LFGPost
	if err := s.getJSON(ctx, postKey(id), &post, model.ErrPostNotFound); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Storage) DeleteLFGPost(ctx context.Context, id model.LFGPostID) error {
	post, err := s.GetLFGPost(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil
		}
		return err
	}

	member := string(id)
	pipe := s.client.Pipeline()
	pipe.Del(ctx, postKey(id))
	pipe.ZRem(ctx, gamePostsIndexKey(post.GameID), member)
	pipe.ZRem(ctx, regionPostsIndexKey(post.Region), member)
	pipe.ZRem(ctx, authorPostsIndexKey(post.AuthorID), member)
	pipe.ZRem(ctx, activePostsIndexKey(), member)
	_, err = pipe.Exec(ctx)
	return err
}

// scanPostIndex reads a post index ZSET newest-first and fetches the posts.
func (s *Storage) scanPostIndex(ctx context.Context, indexKey string, limit int) ([]*model.LFGPost, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.LFGPost{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = postKey(model.LFGPostID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	posts := make([]*model.LFGPost, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var p model.LFGPost
		if err := json.Unmarshal([]byte(val.(string)), &p); err != nil {
			continue
		}
		posts = append(posts, &p)
	}
	return posts, nil
}

func (s *Storage) GetActiveLFGPosts(ctx context.Context, limit int) ([]*model.LFGPost, error) {
	return s.scanPostIndex(ctx, activePostsIndexKey(), limit)
}

func (s *Storage) GetLFGPostsByGame(ctx context.Context, gameID model.GameID, limit int) ([]*model.LFGPost, error) {
	return s.scanPostIndex(ctx, gamePostsIndexKey(gameID), limit)
}

func (s *Storage) GetLFGPostsByRegion(ctx context.Context, region string, limit int) ([]*model.LFGPost, error) {
	return s.scanPostIndex(ctx, regionPostsIndexKey(region), limit)
}

func (s *Storage) GetLFGPostsByAuthor(ctx context.Context, authorID model.UserID) ([]*model.LFGPost, error) {
	return s.scanPostIndex(ctx, authorPostsIndexKey(authorID), 0)
}

// Match operations

func (s *Storage) InsertMatch(ctx context.Context, match *model.Match) (*model.Match, bool, error) {
	data, err := json.Marshal(match)
	if err != nil {
		return nil, false, err
	}

	// The record is written before the pair key is claimed, so a loser
	// that observes the key can always resolve it to a full record.
	if err := s.client.Set(ctx, matchKey(match.ID), data, 0).Err(); err != nil {
		return nil, false, err
	}

	// SETNX on the canonical pair key is the uniqueness constraint: exactly
	// one of two racing inserts for the same pair claims it.
	claimed, err := s.client.SetNX(ctx, matchPairKey(match.UserA, match.UserB), string(match.ID), 0).Result()
	if err != nil {
		return nil, false, err
	}

	if !claimed {
		// Lost the claim; discard the speculative record.
		_ = s.client.Del(ctx, matchKey(match.ID)).Err()
		existing, err := s.GetMatchByPair(ctx, match.UserA, match.UserB)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	score := float64(match.CreatedAt.UnixNano())
	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, userMatchesIndexKey(match.UserA), redis.Z{Score: score, Member: string(match.ID)})
	pipe.ZAdd(ctx, userMatchesIndexKey(match.UserB), redis.Z{Score: score, Member: string(match.ID)})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, err
	}
	return match, true, nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	var match model.Match
	if err := s.getJSON(ctx, matchKey(id), &match, model.ErrMatchNotFound); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) GetMatchByPair(ctx context.Context, a, b model.UserID) (*model.Match, error) {
	id, err := s.client.Get(ctx, matchPairKey(a, b)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}
	return s.GetMatch(ctx, model.MatchID(id))
}

func (s *Storage) UpdateMatchStatus(ctx context.Context, id model.MatchID, status model.MatchStatus) error {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return err
	}
	match.Status = status

	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, matchKey(id), data, 0).Err()
}

func (s *Storage) GetMatchesForUser(ctx context.Context, userID model.UserID) ([]*model.Match, error) {
	ids, err := s.client.ZRevRange(ctx, userMatchesIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Match{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKey(model.MatchID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var m model.Match
		if err := json.Unmarshal([]byte(val.(string)), &m); err != nil {
			continue
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

// Message operations

func (s *Storage) SaveMessage(ctx context.Context, msg *model.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, matchMessagesKey(msg.MatchID), data).Err()
}

func (s *Storage) GetMessagesForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Message, error) {
	values, err := s.client.LRange(ctx, matchMessagesKey(matchID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	msgs := make([]*model.Message, 0, len(values))
	for _, val := range values {
		var m model.Message
		if err := json.Unmarshal([]byte(val), &m); err != nil {
			continue
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}
