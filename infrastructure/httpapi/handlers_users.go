package httpapi

import "net/http"

func (s *Server) handleAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.usersService.AllUsers()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}
