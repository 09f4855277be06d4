package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomhub/internal/dependencies/clock"
	"roomhub/internal/dependencies/mocks"
	"roomhub/internal/model"
	"roomhub/internal/testutil"
)

func newConcurrencyRegistry(t *testing.T) (*Registry, *recordingPublisher, *mocks.MockRandom) {
	t.Helper()
	pub := &recordingPublisher{}
	random := mocks.NewMockRandom()
	// Real clock: joins race on wall time, and member ordering must not
	// depend on distinct timestamps
	reg := New(pub, clock.New(), random, testutil.NopLogger())
	return reg, pub, random
}

func TestConcurrentJoinsOneSlot(t *testing.T) {
	reg, _, random := newConcurrencyRegistry(t)

	random.QueueString("ROOM01")
	room, err := reg.CreateRoom(model.Player{ID: "host", DisplayName: "Host"}, RoomSettings{
		Name:       "Last Slot",
		MaxPlayers: 2,
	}, model.MemberProfile{})
	require.NoError(t, err)

	const contenders = 16
	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := model.Player{ID: model.PlayerID(fmt.Sprintf("p%d", i)), DisplayName: fmt.Sprintf("P%d", i)}
			_, errs[i] = reg.Join(room.ID, p, model.MemberProfile{}, "")
		}(i)
	}
	wg.Wait()

	wins, fulls := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, model.ErrRoomFull):
			fulls++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one contender should take the last slot")
	assert.Equal(t, contenders-1, fulls)

	got, err := reg.GetRoom(room.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, got.MaxPlayers)
}

func TestConcurrentLeavesCloseRoomOnce(t *testing.T) {
	reg, pub, random := newConcurrencyRegistry(t)

	random.QueueString("ROOM01")
	room, err := reg.CreateRoom(model.Player{ID: "p0", DisplayName: "P0"}, RoomSettings{
		Name:       "Exodus",
		MaxPlayers: 10,
	}, model.MemberProfile{})
	require.NoError(t, err)

	for i := 1; i < 10; i++ {
		p := model.Player{ID: model.PlayerID(fmt.Sprintf("p%d", i)), DisplayName: fmt.Sprintf("P%d", i)}
		_, err := reg.Join(room.ID, p, model.MemberProfile{}, "")
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Leave may find the room already gone; both outcomes are fine
			_, err := reg.Leave(room.ID, model.PlayerID(fmt.Sprintf("p%d", i)))
			if err != nil && !errors.Is(err, model.ErrRoomNotFound) {
				t.Errorf("unexpected leave error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, pub.byType(model.EventRoomClosed), 1, "room closure must be announced exactly once")
	_, err = reg.GetRoom(room.ID)
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestConcurrentOpsAcrossRoomsKeepInvariants(t *testing.T) {
	reg, _, random := newConcurrencyRegistry(t)

	const roomCount = 4
	roomIDs := make([]model.RoomID, roomCount)
	for i := 0; i < roomCount; i++ {
		random.QueueString(fmt.Sprintf("ROOM%02d", i))
		host := model.Player{ID: model.PlayerID(fmt.Sprintf("host%d", i)), DisplayName: "Host"}
		room, err := reg.CreateRoom(host, RoomSettings{Name: fmt.Sprintf("Arena %d", i), MaxPlayers: 4, Public: true}, model.MemberProfile{})
		require.NoError(t, err)
		roomIDs[i] = room.ID
	}

	const workers = 32
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			p := model.Player{ID: model.PlayerID(fmt.Sprintf("w%d", w)), DisplayName: "W"}
			for round := 0; round < 20; round++ {
				id := roomIDs[(w+round)%roomCount]
				if _, err := reg.Join(id, p, model.MemberProfile{}, ""); err != nil {
					continue
				}
				time.Sleep(time.Microsecond)
				_, _ = reg.Leave(id, p.ID)
			}
		}(w)
	}
	wg.Wait()

	// Hosts never left, so every room survives with its invariants intact
	for _, id := range roomIDs {
		room, err := reg.GetRoom(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(room.Members), 1)
		assert.LessOrEqual(t, len(room.Members), room.MaxPlayers)
		assert.NotNil(t, room.Member(room.HostID), "host must be a member")

		seen := make(map[model.PlayerID]bool)
		for _, m := range room.Members {
			assert.False(t, seen[m.PlayerID], "duplicate member %s", m.PlayerID)
			seen[m.PlayerID] = true
		}
	}
}
