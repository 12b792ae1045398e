// Package httpapi exposes the REST surface: auth, users, friends, groups,
// and message send/history. Message sends hand the stored record to the
// Delivery Router after persistence succeeds.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/contract"
	"github.com/RaminJll/ChatApp/services"
)

type Server struct {
	log             *slog.Logger
	tokens          *auth.TokenIssuer
	authService     services.IAuthService
	usersService    services.IUsersService
	friendsService  services.IFriendsService
	groupsService   services.IGroupsService
	messagesService services.IMessagesService
	deliverer       contract.IDeliverer
}

func NewServer(log *slog.Logger, tokens *auth.TokenIssuer,
	authService services.IAuthService,
	usersService services.IUsersService,
	friendsService services.IFriendsService,
	groupsService services.IGroupsService,
	messagesService services.IMessagesService,
	deliverer contract.IDeliverer) *Server {
	return &Server{
		log:             log,
		tokens:          tokens,
		authService:     authService,
		usersService:    usersService,
		friendsService:  friendsService,
		groupsService:   groupsService,
		messagesService: messagesService,
		deliverer:       deliverer,
	}
}

// Routes builds the router. The websocket handler performs its own
// handshake authentication, so it hangs off the unprotected router.
func (s *Server) Routes(wsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.Handle("/ws", wsHandler)

	api := r.NewRoute().Subrouter()
	api.Use(s.tokens.Middleware)

	api.HandleFunc("/users/all", s.handleAllUsers).Methods(http.MethodGet)

	api.HandleFunc("/friends/request", s.handleSendFriendRequest).Methods(http.MethodPost)
	api.HandleFunc("/friends/received", s.handleReceivedRequests).Methods(http.MethodGet)
	api.HandleFunc("/friends/request/{senderId}/accept", s.handleAcceptRequest).Methods(http.MethodPatch)
	api.HandleFunc("/friends/request/{senderId}/refuse", s.handleRefuseRequest).Methods(http.MethodDelete)
	api.HandleFunc("/friends/list", s.handleFriendsList).Methods(http.MethodGet)

	api.HandleFunc("/groups/create", s.handleCreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups/list", s.handleUserGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/add-member", s.handleAddMember).Methods(http.MethodPost)
	api.HandleFunc("/groups/members/{groupId}", s.handleGroupMembers).Methods(http.MethodGet)

	api.HandleFunc("/messages/direct", s.handleSendDirectMessage).Methods(http.MethodPost)
	api.HandleFunc("/messages/direct/{contactId}", s.handleDirectMessages).Methods(http.MethodGet)
	api.HandleFunc("/messages/group", s.handleSendGroupMessage).Methods(http.MethodPost)
	api.HandleFunc("/messages/group/{groupId}", s.handleGroupMessages).Methods(http.MethodGet)

	return r
}
