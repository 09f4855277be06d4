package memory

import (
	"context"
	"sort"
	"sync"

	"roomhub/internal/model"
	"roomhub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	saves             map[saveKey]*model.SaveGame
}

type saveKey struct {
	playerID model.PlayerID
	slot     string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		saves:             make(map[saveKey]*model.SaveGame),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Save game operations

func (s *Storage) PutSaveGame(ctx context.Context, save *model.SaveGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[saveKey{playerID: save.PlayerID, slot: save.Slot}] = save
	return nil
}

func (s *Storage) GetSaveGame(ctx context.Context, playerID model.PlayerID, slot string) (*model.SaveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	save, ok := s.saves[saveKey{playerID: playerID, slot: slot}]
	if !ok {
		return nil, model.ErrSaveNotFound
	}
	return save, nil
}

func (s *Storage) ListSaveGames(ctx context.Context, playerID model.PlayerID) ([]*model.SaveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var saves []*model.SaveGame
	for key, save := range s.saves {
		if key.playerID == playerID {
			saves = append(saves, save)
		}
	}
	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Slot < saves[j].Slot
	})
	return saves, nil
}

func (s *Storage) DeleteSaveGame(ctx context.Context, playerID model.PlayerID, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := saveKey{playerID: playerID, slot: slot}
	if _, ok := s.saves[key]; !ok {
		return model.ErrSaveNotFound
	}
	delete(s.saves, key)
	return nil
}
