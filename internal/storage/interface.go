package storage

import (
	"context"

	"github.com/eruditgame/erudit-server/internal/model"
)

// Storage defines the interface for data persistence.
//
// SaveGame must replace the stored record atomically: a concurrent reader or
// a crash mid-write must never observe a partially written game state.
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.PlayerID) (*model.Account, error)
	DeleteAccount(ctx context.Context, id model.PlayerID) error

	// Registered account operations
	SaveRegisteredAccount(ctx context.Context, ra *model.RegisteredAccount) error
	GetRegisteredAccount(ctx context.Context, playerID model.PlayerID) (*model.RegisteredAccount, error)
	GetRegisteredAccountByUsername(ctx context.Context, username string) (*model.RegisteredAccount, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.GameState) error
	GetGame(ctx context.Context, id model.GameID) (*model.GameState, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
