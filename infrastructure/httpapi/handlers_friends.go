package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/errors"
)

type friendRequestBody struct {
	ReceiverID string `json:"receiverId"`
}

func (s *Server) handleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	var req friendRequestBody
	if !s.decode(w, r, &req) {
		return
	}
	if req.ReceiverID == "" {
		s.writeError(w, errors.ErrValidation)
		return
	}

	friendship, err := s.friendsService.SendRequest(userID, req.ReceiverID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, friendship)
}

func (s *Server) handleReceivedRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}

	requests, err := s.friendsService.ReceivedRequests(userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Server) handleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	senderID := mux.Vars(r)["senderId"]

	friendship, err := s.friendsService.AcceptRequest(userID, senderID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, friendship)
}

func (s *Server) handleRefuseRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	senderID := mux.Vars(r)["senderId"]

	if err := s.friendsService.RefuseRequest(userID, senderID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFriendsList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}

	friends, err := s.friendsService.FriendsList(userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, friends)
}
