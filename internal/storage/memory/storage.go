package memory

import (
	"context"
	"sync"

	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are stored whole and swapped under a lock, so readers never see
// a partially updated game.
type Storage struct {
	mu sync.RWMutex

	accounts           map[model.PlayerID]*model.Account
	registeredAccounts map[model.PlayerID]*model.RegisteredAccount
	usernameIndex      map[string]model.PlayerID
	games              map[model.GameID]*model.GameState
	dictionaryWords    []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:           make(map[model.PlayerID]*model.Account),
		registeredAccounts: make(map[model.PlayerID]*model.RegisteredAccount),
		usernameIndex:      make(map[string]model.PlayerID),
		games:              make(map[model.GameID]*model.GameState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
	return nil
}

// Registered account operations

func (s *Storage) SaveRegisteredAccount(ctx context.Context, ra *model.RegisteredAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredAccounts[ra.PlayerID] = ra
	s.usernameIndex[ra.Username] = ra.PlayerID
	return nil
}

func (s *Storage) GetRegisteredAccount(ctx context.Context, playerID model.PlayerID) (*model.RegisteredAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ra, ok := s.registeredAccounts[playerID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return ra, nil
}

func (s *Storage) GetRegisteredAccountByUsername(ctx context.Context, username string) (*model.RegisteredAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	ra, ok := s.registeredAccounts[playerID]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return ra, nil
}

// Game operations

// SaveGame stores a deep copy, so later mutation of the caller's record
// cannot reach the stored one
func (s *Storage) SaveGame(ctx context.Context, game *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

// GetGame hands out a deep copy; callers may mutate it freely without
// racing other readers of the stored record
func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	words := make([]string, len(s.dictionaryWords))
	copy(words, s.dictionaryWords)
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
