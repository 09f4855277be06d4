package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"roomhub/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		CreatedAt:   time.Now().UTC(),
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
}

func (s *StorageSuite) TestGetMissingPlayer() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerExpires() {
	player := &model.Player{ID: "guest-1", DisplayName: "Ghost", IsGuest: true}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetPlayer(s.ctx, "guest-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRegisteredPlayerDoesNotExpire() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice", IsGuest: false}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.mini.FastForward(48 * time.Hour)

	_, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.NoError(err)
}

// Registered player tests

func (s *StorageSuite) TestRegisteredPlayerRoundTrip() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "bcrypt-hash",
	}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("bcrypt-hash", got.PasswordHash)

	byName, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byName.PlayerID)
}

func (s *StorageSuite) TestUnknownUsername() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Save game tests

func (s *StorageSuite) TestSaveGameRoundTrip() {
	save := &model.SaveGame{
		PlayerID:  "player-1",
		Slot:      "auto",
		Data:      []byte("opaque blob"),
		UpdatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.storage.PutSaveGame(s.ctx, save))

	got, err := s.storage.GetSaveGame(s.ctx, "player-1", "auto")
	s.Require().NoError(err)
	s.Equal([]byte("opaque blob"), got.Data)
}

func (s *StorageSuite) TestGetMissingSaveGame() {
	_, err := s.storage.GetSaveGame(s.ctx, "player-1", "missing")
	s.ErrorIs(err, model.ErrSaveNotFound)
}

func (s *StorageSuite) TestListSaveGames() {
	for _, slot := range []string{"beta", "alpha"} {
		s.Require().NoError(s.storage.PutSaveGame(s.ctx, &model.SaveGame{PlayerID: "player-1", Slot: slot, Data: []byte(slot)}))
	}

	saves, err := s.storage.ListSaveGames(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(saves, 2)
	s.Equal("alpha", saves[0].Slot)
	s.Equal("beta", saves[1].Slot)
}

func (s *StorageSuite) TestListSaveGamesEmpty() {
	saves, err := s.storage.ListSaveGames(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(saves)
}

func (s *StorageSuite) TestDeleteSaveGameRemovesSlotFromIndex() {
	s.Require().NoError(s.storage.PutSaveGame(s.ctx, &model.SaveGame{PlayerID: "player-1", Slot: "auto"}))
	s.Require().NoError(s.storage.DeleteSaveGame(s.ctx, "player-1", "auto"))

	_, err := s.storage.GetSaveGame(s.ctx, "player-1", "auto")
	s.ErrorIs(err, model.ErrSaveNotFound)

	saves, err := s.storage.ListSaveGames(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(saves)

	s.ErrorIs(s.storage.DeleteSaveGame(s.ctx, "player-1", "auto"), model.ErrSaveNotFound)
}
