package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/contract"
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/domain/event"
	"github.com/RaminJll/ChatApp/realtime"
)

// Handler drives the connection lifecycle: authenticated handshake, session
// registration with personal-room auto-join, client-driven group joins, and
// one-shot teardown on any disconnect path.
type Handler struct {
	log          *slog.Logger
	tokens       *auth.TokenIssuer
	sessions     contract.ISessionRegistry
	rooms        contract.IRoomTracker
	upgrader     websocket.Upgrader
	bufferSize   int
	writeTimeout time.Duration
}

func NewHandler(log *slog.Logger, tokens *auth.TokenIssuer,
	sessions contract.ISessionRegistry, rooms contract.IRoomTracker,
	bufferSize int, writeTimeout time.Duration, allowedOrigin string) *Handler {
	return &Handler{
		log:      log,
		tokens:   tokens,
		sessions: sessions,
		rooms:    rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return allowedOrigin == "" || r.Header.Get("Origin") == allowedOrigin
			},
		},
		bufferSize:   bufferSize,
		writeTimeout: writeTimeout,
	}
}

// ServeHTTP performs the handshake. The credential is mandatory: an invalid
// or missing token refuses the connection before any registry state exists.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tokenStr := auth.BearerFromRequest(r)
	if tokenStr == "" {
		http.Error(w, "missing credential", http.StatusUnauthorized)
		return
	}
	claims, err := h.tokens.ValidateToken(tokenStr)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	sink := NewConnSink(h.bufferSize)
	conn := realtime.NewConn(claims.UserID, sink)

	// Registration and personal-room join happen at authentication, not
	// lazily: a direct message sent right after the handshake must already
	// find this connection subscribed.
	h.sessions.Register(conn)
	h.rooms.Join(conn, domain.PersonalRoom(conn.Identity()))
	h.log.Info("client connected", "user_id", conn.Identity(), "conn_id", conn.ID())

	done := make(chan struct{})
	var once sync.Once
	teardown := func() {
		once.Do(func() {
			h.rooms.LeaveAll(conn.ID())
			h.sessions.Remove(conn.ID())
			close(done)
			_ = socket.Close()
			h.log.Info("client disconnected", "user_id", conn.Identity(), "conn_id", conn.ID())
		})
	}
	defer teardown()

	go h.writePump(socket, sink, done, teardown)

	for {
		var evt ClientEvent
		if err := socket.ReadJSON(&evt); err != nil {
			// Graceful close and abrupt drop land here alike; teardown is
			// the same for both.
			return
		}
		h.handleClientEvent(conn, evt)
	}
}

// writePump is the single writer on the socket. It drains the connection's
// sink so a publish never blocks on the network.
func (h *Handler) writePump(socket *websocket.Conn, sink *ConnSink,
	done <-chan struct{}, teardown func()) {
	for {
		select {
		case <-done:
			return
		case e := <-sink.Events():
			msg, ok := e.(event.MessageReceived)
			if !ok {
				h.log.Debug(fmt.Sprintf("unhandled event type %T", e))
				continue
			}
			_ = socket.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := socket.WriteJSON(ServerEvent{
				Event: EventReceiveMessage,
				Data:  msg.Message,
			}); err != nil {
				h.log.Debug("write failed, dropping connection", "error", err)
				teardown()
				return
			}
		}
	}
}

func (h *Handler) handleClientEvent(conn *realtime.Conn, evt ClientEvent) {
	var payload roomPayload
	if len(evt.Data) > 0 {
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			h.log.Debug("malformed client event payload", "event", evt.Event, "error", err)
			return
		}
	}

	switch evt.Event {
	case EventJoinUserRoom:
		// The server-side auto-join is authoritative; the explicit client
		// event is a tolerated idempotent no-op. Joins naming a different
		// identity are ignored: a client never reads another user's
		// personal room.
		if payload.UserID == conn.Identity() {
			h.rooms.Join(conn, domain.PersonalRoom(payload.UserID))
		}
	case EventJoinGroupRoom:
		if payload.GroupID != "" {
			h.rooms.Join(conn, domain.GroupRoom(payload.GroupID))
		}
	case EventLeaveUserRoom:
		// Advisory (sent on logout); disconnect performs full cleanup anyway.
		if payload.UserID == conn.Identity() {
			h.rooms.Leave(conn.ID(), domain.PersonalRoom(payload.UserID))
		}
	default:
		h.log.Debug("unknown client event", "event", evt.Event)
	}
}
