package storage

import (
	"context"

	"roomhub/internal/model"
)

// Storage defines the interface for data persistence.
//
// Rooms are intentionally absent: room state is owned by the in-memory
// registry and does not survive a restart.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Save game operations
	PutSaveGame(ctx context.Context, save *model.SaveGame) error
	GetSaveGame(ctx context.Context, playerID model.PlayerID, slot string) (*model.SaveGame, error)
	ListSaveGames(ctx context.Context, playerID model.PlayerID) ([]*model.SaveGame, error)
	DeleteSaveGame(ctx context.Context, playerID model.PlayerID, slot string) error
}
