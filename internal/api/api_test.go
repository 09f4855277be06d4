package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomhub/internal/api"
	"roomhub/internal/factory"
	"roomhub/internal/model"
)

type apiHarness struct {
	t      *testing.T
	app    *factory.TestApp
	server *httptest.Server
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	app := factory.NewTestApp()
	server := httptest.NewServer(app.Server.Handler())
	t.Cleanup(func() {
		server.Close()
		_ = app.Close()
	})
	return &apiHarness{t: t, app: app, server: server}
}

// do issues a JSON request, optionally authenticated
func (h *apiHarness) do(method, path, token string, body any) *http.Response {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, h.server.URL+"/api/v1"+path, reader)
	require.NoError(h.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (h *apiHarness) doRaw(method, path, token string, body []byte) *http.Response {
	h.t.Helper()
	req, err := http.NewRequest(method, h.server.URL+"/api/v1"+path, bytes.NewReader(body))
	require.NoError(h.t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (h *apiHarness) guest(name string) api.AuthResponse {
	h.t.Helper()
	resp := h.do(http.MethodPost, "/players/guest", "", api.GuestRequest{DisplayName: name})
	require.Equal(h.t, http.StatusOK, resp.StatusCode)
	return decode[api.AuthResponse](h.t, resp)
}

func (h *apiHarness) createRoom(token, code, name string, maxPlayers int, public bool, password string) model.RoomSnapshot {
	h.t.Helper()
	h.app.MockRandom.QueueString(code)
	resp := h.do(http.MethodPost, "/rooms", token, api.CreateRoomRequest{
		Name:       name,
		MaxPlayers: maxPlayers,
		IsPublic:   public,
		Password:   password,
	})
	require.Equal(h.t, http.StatusCreated, resp.StatusCode)
	return decode[model.RoomSnapshot](h.t, resp)
}

func TestHealth(t *testing.T) {
	h := newAPIHarness(t)
	resp := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuestFlow(t *testing.T) {
	h := newAPIHarness(t)

	auth := h.guest("Wanderer")
	assert.NotEmpty(t, auth.Token)
	assert.True(t, auth.Player.IsGuest)
	assert.Equal(t, "Wanderer", auth.Player.DisplayName)

	resp := h.do(http.MethodGet, "/players/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[api.PlayerResponse](t, resp)
	assert.Equal(t, auth.Player.ID, me.ID)
}

func TestGuestRequiresDisplayName(t *testing.T) {
	h := newAPIHarness(t)
	resp := h.do(http.MethodPost, "/players/guest", "", api.GuestRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterLoginLogout(t *testing.T) {
	h := newAPIHarness(t)

	resp := h.do(http.MethodPost, "/players/register", "", api.RegisterRequest{
		Username: "alice", Password: "s3cret", DisplayName: "Alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reg := decode[api.AuthResponse](t, resp)
	assert.False(t, reg.Player.IsGuest)

	resp = h.do(http.MethodPost, "/players/register", "", api.RegisterRequest{
		Username: "alice", Password: "other",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = h.do(http.MethodPost, "/players/login", "", api.LoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = h.do(http.MethodPost, "/players/login", "", api.LoginRequest{Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[api.AuthResponse](t, resp)

	resp = h.do(http.MethodPost, "/players/logout", login.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.do(http.MethodGet, "/players/me", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	h := newAPIHarness(t)

	for _, path := range []string{"/players/me", "/rooms", "/saves"} {
		resp := h.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}

	resp := h.do(http.MethodGet, "/players/me", "sess_bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoomLifecycle(t *testing.T) {
	h := newAPIHarness(t)
	host := h.guest("Alice")
	guest := h.guest("Bob")

	room := h.createRoom(host.Token, "ABC123", "Warriors", 4, true, "")
	assert.Equal(t, "ABC123", room.ID)
	assert.Equal(t, "waiting", room.Status)
	require.Len(t, room.Members, 1)

	resp := h.do(http.MethodGet, "/rooms", guest.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := decode[api.RoomListResponse](t, resp)
	require.Len(t, listing.Rooms, 1)

	resp = h.do(http.MethodPost, "/rooms/ABC123/join", guest.Token, api.JoinRoomRequest{
		Profile: model.MemberProfile{CharacterClass: "mage", Level: 5},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	joined := decode[model.RoomSnapshot](t, resp)
	require.Len(t, joined.Members, 2)
	assert.Equal(t, "mage", joined.Members[1].CharacterClass)

	resp = h.do(http.MethodPost, "/rooms/ABC123/start", guest.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(http.MethodPost, "/rooms/ABC123/start", host.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	started := decode[model.RoomSnapshot](t, resp)
	assert.Equal(t, "in-game", started.Status)

	resp = h.do(http.MethodPost, "/rooms/ABC123/end", host.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Host leaves; the guest inherits the room
	resp = h.do(http.MethodPost, "/rooms/ABC123/leave", host.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	after := decode[model.RoomSnapshot](t, resp)
	assert.Equal(t, string(guest.Player.ID), after.Host.Identity)

	// Last member leaves; the room is gone
	resp = h.do(http.MethodPost, "/rooms/ABC123/leave", guest.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.do(http.MethodGet, "/rooms/ABC123", guest.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJoinErrors(t *testing.T) {
	h := newAPIHarness(t)
	host := h.guest("Alice")
	guest := h.guest("Bob")
	third := h.guest("Cat")

	h.createRoom(host.Token, "LOCKED", "Private", 2, false, "hunter2")

	resp := h.do(http.MethodPost, "/rooms/NOROOM/join", guest.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(http.MethodPost, "/rooms/LOCKED/join", guest.Token, api.JoinRoomRequest{Password: "wrong"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(http.MethodPost, "/rooms/LOCKED/join", guest.Token, api.JoinRoomRequest{Password: "hunter2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(http.MethodPost, "/rooms/LOCKED/join", guest.Token, api.JoinRoomRequest{Password: "hunter2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = h.do(http.MethodPost, "/rooms/LOCKED/join", third.Token, api.JoinRoomRequest{Password: "hunter2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRoomSnapshotNeverLeaksPassword(t *testing.T) {
	h := newAPIHarness(t)
	host := h.guest("Alice")

	h.createRoom(host.Token, "LOCKED", "Private", 2, false, "hunter2")

	resp := h.do(http.MethodGet, "/rooms/LOCKED", host.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "hunter2")
}

func TestSaveRoundTrip(t *testing.T) {
	h := newAPIHarness(t)
	player := h.guest("Alice")

	blob := []byte(`{"level":3,"inventory":["sword"]}`)
	resp := h.doRaw(http.MethodPut, "/saves/slot-1", player.Token, blob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	meta := decode[api.SaveMetaResponse](t, resp)
	assert.Equal(t, "slot-1", meta.Slot)
	assert.Equal(t, len(blob), meta.Size)

	resp = h.doRaw(http.MethodGet, "/saves/slot-1", player.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	resp = h.do(http.MethodGet, "/saves", player.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := decode[api.SaveListResponse](t, resp)
	require.Len(t, listing.Saves, 1)

	resp = h.doRaw(http.MethodDelete, "/saves/slot-1", player.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.doRaw(http.MethodGet, "/saves/slot-1", player.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSavesAreScopedToPlayer(t *testing.T) {
	h := newAPIHarness(t)
	alice := h.guest("Alice")
	bob := h.guest("Bob")

	resp := h.doRaw(http.MethodPut, "/saves/slot-1", alice.Token, []byte("alice data"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.doRaw(http.MethodGet, "/saves/slot-1", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveValidation(t *testing.T) {
	h := newAPIHarness(t)
	player := h.guest("Alice")

	resp := h.doRaw(http.MethodPut, "/saves/Bad%20Slot", player.Token, []byte("x"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.doRaw(http.MethodPut, "/saves/slot-1", player.Token, make([]byte, 1<<20+1))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
