package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/errors"
)

type sendDirectMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type sendGroupMessageRequest struct {
	GroupID string `json:"groupId"`
	Content string `json:"content"`
}

// handleSendDirectMessage persists the message, then hands the event to the
// Delivery Router. Delivery runs after the store succeeded and cannot fail
// the request: the record is durable either way.
func (s *Server) handleSendDirectMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	var req sendDirectMessageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ReceiverID == "" || req.Content == "" {
		s.writeError(w, errors.ErrValidation)
		return
	}

	evt, err := s.messagesService.SendDirectMessage(userID, req.ReceiverID, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.deliverer.Deliver(r.Context(), evt)

	s.writeJSON(w, http.StatusCreated, evt.Message)
}

func (s *Server) handleDirectMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	contactID := mux.Vars(r)["contactId"]

	messages, err := s.messagesService.DirectMessages(userID, contactID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSendGroupMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	var req sendGroupMessageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.GroupID == "" || req.Content == "" {
		s.writeError(w, errors.ErrValidation)
		return
	}

	evt, err := s.messagesService.SendGroupMessage(userID, req.GroupID, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.deliverer.Deliver(r.Context(), evt)

	s.writeJSON(w, http.StatusCreated, evt.Message)
}

func (s *Server) handleGroupMessages(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	messages, err := s.messagesService.GroupMessages(groupID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}
