package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/realtime"
)

type wsFixture struct {
	server   *httptest.Server
	issuer   *auth.TokenIssuer
	sessions *realtime.SessionRegistry
	rooms    *realtime.RoomTracker
	router   *realtime.Router
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	sessions := realtime.NewSessionRegistry()
	rooms := realtime.NewRoomTracker()

	handler := NewHandler(log, issuer, sessions, rooms, 8, time.Second, "")
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &wsFixture{
		server:   server,
		issuer:   issuer,
		sessions: sessions,
		rooms:    rooms,
		router:   realtime.NewRouter(log, rooms),
	}
}

func (f *wsFixture) wsURL(token string) string {
	url := "ws" + strings.TrimPrefix(f.server.URL, "http")
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func (f *wsFixture) dial(t *testing.T, userID string) *websocket.Conn {
	t.Helper()
	token, err := f.issuer.GenerateToken(userID, nil)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// The handshake registers synchronously before the first read, but the
	// dialer can return before the server goroutine got there.
	require.Eventually(t, func() bool {
		return len(f.sessions.ConnectionsFor(userID)) > 0
	}, time.Second, 5*time.Millisecond)
	return conn
}

func readServerEvent(t *testing.T, conn *websocket.Conn) (string, domain.Message) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&envelope))

	var msg domain.Message
	require.NoError(t, json.Unmarshal(envelope.Data, &msg))
	return envelope.Event, msg
}

func TestHandler_RejectsMissingAndInvalidTokens(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	_, resp, err := websocket.DefaultDialer.Dial(fixture.wsURL(""), nil)
	req.Error(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(fixture.wsURL("garbage"), nil)
	req.Error(err)
	req.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_AutoJoinsPersonalRoom(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	fixture.dial(t, "u1")

	// Connected means subscribed: a direct message right after the
	// handshake already has a target
	subscribers := fixture.rooms.SubscribersOf(domain.PersonalRoom("u1"))
	req.Len(subscribers, 1)
	req.Equal("u1", subscribers[0].Identity())
}

func TestHandler_DirectMessageReachesBothClients(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	alice := fixture.dial(t, "u1")
	bob := fixture.dial(t, "u2")

	evt := testEvent() // author u1, recipient u2
	fixture.router.Deliver(context.Background(), evt)

	for _, conn := range []*websocket.Conn{alice, bob} {
		name, msg := readServerEvent(t, conn)
		req.Equal(EventReceiveMessage, name)
		req.Equal(evt.Message.ID, msg.ID)
		req.Equal("hello", msg.Content)
	}
}

func TestHandler_GroupJoinAndDelivery(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	member := fixture.dial(t, "u1")
	outsider := fixture.dial(t, "u2")

	// When the member opens the group conversation
	req.NoError(member.WriteJSON(map[string]any{
		"event": EventJoinGroupRoom,
		"data":  map[string]string{"groupId": "g1"},
	}))
	require.Eventually(t, func() bool {
		return len(fixture.rooms.SubscribersOf(domain.GroupRoom("g1"))) == 1
	}, time.Second, 5*time.Millisecond)

	// And a group message is published
	groupID := "g1"
	evt := testEvent()
	evt.Message.GroupID = &groupID
	evt.RecipientID = nil
	fixture.router.Deliver(context.Background(), evt)

	// Then the member receives it
	name, msg := readServerEvent(t, member)
	req.Equal(EventReceiveMessage, name)
	req.Equal(evt.Message.ID, msg.ID)

	// And the outsider, never subscribed, gets nothing
	req.NoError(outsider.SetReadDeadline(time.Now().Add(200 * time.Millisecond)))
	req.Error(outsider.ReadJSON(&struct{}{}))
}

func TestHandler_IgnoresForeignPersonalRoomJoin(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	intruder := fixture.dial(t, "u1")

	// Joining someone else's personal room is silently ignored
	req.NoError(intruder.WriteJSON(map[string]any{
		"event": EventJoinUserRoom,
		"data":  map[string]string{"userId": "u2"},
	}))

	// The join must never land; poll briefly then confirm the room is empty
	time.Sleep(100 * time.Millisecond)
	req.Empty(fixture.rooms.SubscribersOf(domain.PersonalRoom("u2")))
}

func TestHandler_DisconnectTearsDownAllState(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	conn := fixture.dial(t, "u1")
	req.NoError(conn.WriteJSON(map[string]any{
		"event": EventJoinGroupRoom,
		"data":  map[string]string{"groupId": "g1"},
	}))
	require.Eventually(t, func() bool {
		return len(fixture.rooms.SubscribersOf(domain.GroupRoom("g1"))) == 1
	}, time.Second, 5*time.Millisecond)

	// When the client drops
	req.NoError(conn.Close())

	// Then every registration and subscription disappears
	require.Eventually(t, func() bool {
		return len(fixture.sessions.ConnectionsFor("u1")) == 0 &&
			len(fixture.rooms.SubscribersOf(domain.PersonalRoom("u1"))) == 0 &&
			len(fixture.rooms.SubscribersOf(domain.GroupRoom("g1"))) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestHandler_MultipleTabsEachReceive(t *testing.T) {
	req := require.New(t)
	fixture := newWSFixture(t)

	tab1 := fixture.dial(t, "u2")
	tab2 := fixture.dial(t, "u2")
	req.Len(fixture.sessions.ConnectionsFor("u2"), 2)

	// A direct message to u2 lands on both connections
	fixture.router.Deliver(context.Background(), testEvent())

	for _, conn := range []*websocket.Conn{tab1, tab2} {
		name, msg := readServerEvent(t, conn)
		req.Equal(EventReceiveMessage, name)
		req.Equal("hello", msg.Content)
	}
}
