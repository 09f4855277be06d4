package saves

import (
	"context"
	"log/slog"
	"regexp"

	"roomhub/internal/dependencies/clock"
	"roomhub/internal/model"
	"roomhub/internal/storage"
)

// MaxSaveSize is the maximum size of a single save-game blob
const MaxSaveSize = 1 << 20

var slotPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// Service stores and retrieves opaque save-game blobs keyed by player and
// slot. Blob contents are never inspected.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new saves Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "saves")),
	}
}

// Put writes a save-game blob, overwriting any existing blob in the slot
func (s *Service) Put(ctx context.Context, playerID model.PlayerID, slot string, data []byte) (*model.SaveGame, error) {
	if !slotPattern.MatchString(slot) {
		return nil, model.ErrInvalidSlot
	}
	if len(data) > MaxSaveSize {
		return nil, model.ErrSaveTooLarge
	}

	save := &model.SaveGame{
		PlayerID:  playerID,
		Slot:      slot,
		Data:      data,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.storage.PutSaveGame(ctx, save); err != nil {
		return nil, err
	}

	s.logger.Info("save written",
		slog.String("player_id", string(playerID)),
		slog.String("slot", slot),
		slog.Int("bytes", len(data)))
	return save, nil
}

// Get retrieves a save-game blob
func (s *Service) Get(ctx context.Context, playerID model.PlayerID, slot string) (*model.SaveGame, error) {
	if !slotPattern.MatchString(slot) {
		return nil, model.ErrInvalidSlot
	}
	return s.storage.GetSaveGame(ctx, playerID, slot)
}

// List returns all of a player's saves, sorted by slot
func (s *Service) List(ctx context.Context, playerID model.PlayerID) ([]*model.SaveGame, error) {
	return s.storage.ListSaveGames(ctx, playerID)
}

// Delete removes a save-game blob
func (s *Service) Delete(ctx context.Context, playerID model.PlayerID, slot string) error {
	if !slotPattern.MatchString(slot) {
		return model.ErrInvalidSlot
	}
	return s.storage.DeleteSaveGame(ctx, playerID, slot)
}
