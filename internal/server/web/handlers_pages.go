package web

import (
	"errors"
	"net/http"

	"ecoscan/internal/common"
)

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "landing.html", nil)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "about.html", nil)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r.Context())

	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Stale cookie for a deleted account.
			s.handleLogout(w, r)
			return
		}
		s.logger.Error(r.Context(), "dashboard user lookup failed", "error", err, "user_id", userID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	trees, err := s.trees.ListTrees(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "dashboard tree listing failed", "error", err, "user_id", userID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "dashboard.html", &pageData{User: user, Trees: trees})
}
