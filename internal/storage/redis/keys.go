package redis

import (
	"fmt"

	"github.com/eruditgame/erudit-server/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "erudit"

// accountKey returns the Redis key for an Account
func accountKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// registeredAccountKey returns the Redis key for a RegisteredAccount
func registeredAccountKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_account:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a GameState
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
