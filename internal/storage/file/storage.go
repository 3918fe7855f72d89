// Package file persists records as JSON files with crash-atomic writes:
// every save goes to a temp file in the same directory and is renamed over
// the target, so a reader or a crash never observes a half-written record.
package file

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/storage"
)

// Storage is a file-backed implementation of the storage interface
type Storage struct {
	dir string

	// Serializes writers per process; cross-process safety comes from the
	// rename-based swap
	mu sync.Mutex
}

// New creates a file storage rooted at dir, creating subdirectories as needed
func New(dir string) (*Storage, error) {
	for _, sub := range []string{"games", "accounts", "registered", "usernames"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) gamePath(id model.GameID) string {
	return filepath.Join(s.dir, "games", sanitize(string(id))+".json")
}

func (s *Storage) accountPath(id model.PlayerID) string {
	return filepath.Join(s.dir, "accounts", sanitize(string(id))+".json")
}

func (s *Storage) registeredPath(id model.PlayerID) string {
	return filepath.Join(s.dir, "registered", sanitize(string(id))+".json")
}

func (s *Storage) usernamePath(username string) string {
	// Usernames are arbitrary UTF-8, so the key must encode reversibly;
	// sanitize would collapse distinct Cyrillic names onto one file
	return filepath.Join(s.dir, "usernames", hex.EncodeToString([]byte(username))+".json")
}

func (s *Storage) dictionaryPath() string {
	return filepath.Join(s.dir, "dictionary.json")
}

// sanitize keeps IDs filesystem-safe
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

// writeAtomic marshals v and swaps it into place via temp file + rename
func (s *Storage) writeAtomic(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func readJSON(path string, v any, notFound error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAtomic(s.accountPath(account.ID), account)
}

func (s *Storage) GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error) {
	var account model.Account
	if err := readJSON(s.accountPath(id), &account, model.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.accountPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Registered account operations

func (s *Storage) SaveRegisteredAccount(ctx context.Context, ra *model.RegisteredAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeAtomic(s.registeredPath(ra.PlayerID), ra); err != nil {
		return err
	}
	return s.writeAtomic(s.usernamePath(ra.Username), string(ra.PlayerID))
}

func (s *Storage) GetRegisteredAccount(ctx context.Context, playerID model.PlayerID) (*model.RegisteredAccount, error) {
	var ra model.RegisteredAccount
	if err := readJSON(s.registeredPath(playerID), &ra, model.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return &ra, nil
}

func (s *Storage) GetRegisteredAccountByUsername(ctx context.Context, username string) (*model.RegisteredAccount, error) {
	var playerID string
	if err := readJSON(s.usernamePath(username), &playerID, model.ErrAccountNotFound); err != nil {
		return nil, err
	}
	return s.GetRegisteredAccount(ctx, model.PlayerID(playerID))
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAtomic(s.gamePath(game.ID), game)
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	var game model.GameState
	if err := readJSON(s.gamePath(id), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.gamePath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	var words []string
	if err := readJSON(s.dictionaryPath(), &words, model.ErrDictionaryNotLoaded); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAtomic(s.dictionaryPath(), words)
}
