package redis

import (
	"fmt"

	"roomhub/internal/model"
)

// Key prefix for all stored data
const keyPrefix = "roomhub"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// saveGameKey returns the Redis key for a save blob
func saveGameKey(playerID model.PlayerID, slot string) string {
	return fmt.Sprintf("%s:save:%s:%s", keyPrefix, playerID, slot)
}

// saveSlotsIndexKey returns the Redis key for the SET of a player's save slots
func saveSlotsIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:save_slots:%s", keyPrefix, playerID)
}
