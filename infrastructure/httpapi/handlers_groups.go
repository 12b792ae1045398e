package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/errors"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}
	var req createGroupRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		s.writeError(w, errors.ErrValidation)
		return
	}

	group, err := s.groupsService.CreateGroup(req.Name, userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleUserGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		s.writeError(w, errors.ErrUnauthorized)
		return
	}

	groups, err := s.groupsService.UserGroups(userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.GroupID == "" || req.UserID == "" {
		s.writeError(w, errors.ErrValidation)
		return
	}

	member, err := s.groupsService.AddMember(req.GroupID, req.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	members, err := s.groupsService.GroupMembers(groupID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, members)
}
