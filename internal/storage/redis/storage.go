package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"roomhub/internal/model"
	"roomhub/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
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

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Guest records expire; registered players stay until deleted
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}
	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Pipeline the record and its username index together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Save game operations

func (s *Storage) PutSaveGame(ctx context.Context, save *model.SaveGame) error {
	data, err := json.Marshal(save)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, saveGameKey(save.PlayerID, save.Slot), data, 0)
	pipe.SAdd(ctx, saveSlotsIndexKey(save.PlayerID), save.Slot)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSaveGame(ctx context.Context, playerID model.PlayerID, slot string) (*model.SaveGame, error) {
	data, err := s.client.Get(ctx, saveGameKey(playerID, slot)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSaveNotFound
		}
		return nil, err
	}

	var save model.SaveGame
	if err := json.Unmarshal(data, &save); err != nil {
		return nil, err
	}
	return &save, nil
}

func (s *Storage) ListSaveGames(ctx context.Context, playerID model.PlayerID) ([]*model.SaveGame, error) {
	slots, err := s.client.SMembers(ctx, saveSlotsIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	var saves []*model.SaveGame
	for _, slot := range slots {
		save, err := s.GetSaveGame(ctx, playerID, slot)
		if errors.Is(err, model.ErrSaveNotFound) {
			// Index can lag a delete; drop the stale slot
			_ = s.client.SRem(ctx, saveSlotsIndexKey(playerID), slot).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		saves = append(saves, save)
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Slot < saves[j].Slot
	})
	return saves, nil
}

func (s *Storage) DeleteSaveGame(ctx context.Context, playerID model.PlayerID, slot string) error {
	pipe := s.client.Pipeline()
	del := pipe.Del(ctx, saveGameKey(playerID, slot))
	pipe.SRem(ctx, saveSlotsIndexKey(playerID), slot)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrSaveNotFound
	}
	return nil
}
