package memory

import (
	"context"
	"sync"

	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
//
// Insertion-ordered slices double as the secondary indexes: scanning them
// forwards gives stable index order for region scans, and scanning them
// backwards gives descending creation order for posts and matches.
type Storage struct {
	mu sync.RWMutex

	users           map[model.UserID]*model.User
	registeredUsers map[model.UserID]*model.RegisteredUser
	usernameIndex   map[string]model.UserID

	profiles     map[model.UserID]*model.Profile
	profileOrder []model.UserID

	games     map[model.GameID]*model.Game
	gameOrder []model.GameID
	nameIndex map[string]model.GameID

	userGames     map[userGameKey]*model.UserGame
	userGameOrder []userGameKey

	availability map[model.UserID][]model.AvailabilitySlot

	posts     map[model.LFGPostID]*model.LFGPost
	postOrder []model.LFGPostID

	matches    map[model.MatchID]*model.Match
	matchOrder []model.MatchID
	pairIndex  map[pairKey]model.MatchID

	messages map[model.MatchID][]*model.Message
}

type userGameKey struct {
	userID model.UserID
	gameID model.GameID
}

// pairKey is the canonical unordered-pair key: lo is the smaller user id.
type pairKey struct {
	lo model.UserID
	hi model.UserID
}

func newPairKey(a, b model.UserID) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:           make(map[model.UserID]*model.User),
		registeredUsers: make(map[model.UserID]*model.RegisteredUser),
		usernameIndex:   make(map[string]model.UserID),
		profiles:        make(map[model.UserID]*model.Profile),
		games:           make(map[model.GameID]*model.Game),
		nameIndex:       make(map[string]model.GameID),
		userGames:       make(map[userGameKey]*model.UserGame),
		availability:    make(map[model.UserID][]model.AvailabilitySlot),
		posts:           make(map[model.LFGPostID]*model.LFGPost),
		matches:         make(map[model.MatchID]*model.Match),
		pairIndex:       make(map[pairKey]model.MatchID),
		messages:        make(map[model.MatchID][]*model.Message),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Registered user operations

func (s *Storage) SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredUsers[ru.UserID] = ru
	s.usernameIndex[ru.Username] = ru.UserID
	return nil
}

func (s *Storage) GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ru, ok := s.registeredUsers[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return ru, nil
}

func (s *Storage) GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	ru, ok := s.registeredUsers[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return ru, nil
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; !ok {
		s.profileOrder = append(s.profileOrder, profile.UserID)
	}
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, userID model.UserID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Storage) GetProfilesByRegion(ctx context.Context, region string, limit int) ([]*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Profile
	for _, userID := range s.profileOrder {
		p := s.profiles[userID]
		if p.Region != region {
			continue
		}
		result = append(result, p)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// Game catalog operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; !ok {
		s.gameOrder = append(s.gameOrder, game.ID)
	}
	s.games[game.ID] = game
	s.nameIndex[game.Name] = game.ID
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GetGameByName(ctx context.Context, name string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Game, 0, len(s.gameOrder))
	for _, id := range s.gameOrder {
		result = append(result, s.games[id])
	}
	return result, nil
}

func (s *Storage) ListGamesByCategory(ctx context.Context, category string) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Game
	for _, id := range s.gameOrder {
		if g := s.games[id]; g.Category == category {
			result = append(result, g)
		}
	}
	return result, nil
}

// User game link operations

func (s *Storage) SaveUserGame(ctx context.Context, link *model.UserGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userGameKey{userID: link.UserID, gameID: link.GameID}
	if _, ok := s.userGames[key]; !ok {
		s.userGameOrder = append(s.userGameOrder, key)
	}
	s.userGames[key] = link
	return nil
}

func (s *Storage) GetUserGame(ctx context.Context, userID model.UserID, gameID model.GameID) (*model.UserGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.userGames[userGameKey{userID: userID, gameID: gameID}]
	if !ok {
		return nil, model.ErrUserGameNotFound
	}
	return link, nil
}

func (s *Storage) GetUserGames(ctx context.Context, userID model.UserID) ([]*model.UserGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.UserGame
	for _, key := range s.userGameOrder {
		if key.userID != userID {
			continue
		}
		if link, ok := s.userGames[key]; ok {
			result = append(result, link)
		}
	}
	return result, nil
}

func (s *Storage) DeleteUserGame(ctx context.Context, userID model.UserID, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userGameKey{userID: userID, gameID: gameID}
	delete(s.userGames, key)
	for i, k := range s.userGameOrder {
		if k == key {
			s.userGameOrder = append(s.userGameOrder[:i], s.userGameOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Availability operations

func (s *Storage) SaveAvailability(ctx context.Context, userID model.UserID, slots []model.AvailabilitySlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]model.AvailabilitySlot, len(slots))
	copy(copied, slots)
	s.availability[userID] = copied
	return nil
}

func (s *Storage) GetAvailability(ctx context.Context, userID model.UserID) ([]model.AvailabilitySlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := s.availability[userID]
	result := make([]model.AvailabilitySlot, len(slots))
	copy(result, slots)
	return result, nil
}

// LFG post operations

func (s *Storage) SaveLFGPost(ctx context.Context, post *model.LFGPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		s.postOrder = append(s.postOrder, post.ID)
	}
	s.posts[post.ID] = post
	return nil
}

func (s *Storage) GetLFGPost(ctx context.Context, id model.LFGPostID) (*model.LFGPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

func (s *Storage) DeleteLFGPost(ctx context.Context, id model.LFGPostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	for i, pid := range s.postOrder {
		if pid == id {
			s.postOrder = append(s.postOrder[:i], s.postOrder[i+1:]...)
			break
		}
	}
	return nil
}

// scanPosts walks posts newest-first, collecting those that match, up to limit.
func (s *Storage) scanPosts(limit int, match func(*model.LFGPost) bool) []*model.LFGPost {
	var result []*model.LFGPost
	for i := len(s.postOrder) - 1; i >= 0; i-- {
		p, ok := s.posts[s.postOrder[i]]
		if !ok || !match(p) {
			continue
		}
		result = append(result, p)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}

func (s *Storage) GetActiveLFGPosts(ctx context.Context, limit int) ([]*model.LFGPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanPosts(limit, func(p *model.LFGPost) bool {
		return p.IsActive
	}), nil
}

func (s *Storage) GetLFGPostsByGame(ctx context.Context, gameID model.GameID, limit int) ([]*model.LFGPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanPosts(limit, func(p *model.LFGPost) bool {
		return p.GameID == gameID
	}), nil
}

func (s *Storage) GetLFGPostsByRegion(ctx context.Context, region string, limit int) ([]*model.LFGPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanPosts(limit, func(p *model.LFGPost) bool {
		return p.Region == region
	}), nil
}

func (s *Storage) GetLFGPostsByAuthor(ctx context.Context, authorID model.UserID) ([]*model.LFGPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanPosts(0, func(p *model.LFGPost) bool {
		return p.AuthorID == authorID
	}), nil
}

// Match operations

func (s *Storage) InsertMatch(ctx context.Context, match *model.Match) (*model.Match, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := newPairKey(match.UserA, match.UserB)
	if existingID, ok := s.pairIndex[key]; ok {
		if existing, ok := s.matches[existingID]; ok {
			return existing, false, nil
		}
	}

	s.matches[match.ID] = match
	s.matchOrder = append(s.matchOrder, match.ID)
	s.pairIndex[key] = match.ID
	return match, true, nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) GetMatchByPair(ctx context.Context, a, b model.UserID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.pairIndex[newPairKey(a, b)]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) UpdateMatchStatus(ctx context.Context, id model.MatchID, status model.MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return model.ErrMatchNotFound
	}
	match.Status = status
	return nil
}

func (s *Storage) GetMatchesForUser(ctx context.Context, userID model.UserID) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Match
	for i := len(s.matchOrder) - 1; i >= 0; i-- {
		m, ok := s.matches[s.matchOrder[i]]
		if ok && m.Involves(userID) {
			result = append(result, m)
		}
	}
	return result, nil
}

// Message operations

func (s *Storage) SaveMessage(ctx context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.MatchID] = append(s.messages[msg.MatchID], msg)
	return nil
}

func (s *Storage) GetMessagesForMatch(ctx context.Context, matchID model.MatchID) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[matchID]
	result := make([]*model.Message, len(msgs))
	copy(result, msgs)
	return result, nil
}
