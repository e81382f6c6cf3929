package web

import (
	"errors"
	"net/http"

	"ecoscan/internal/common"
	"ecoscan/internal/server/models"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r.Context()) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := s.users.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			setFlash(w, "Invalid email or password")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		setFlash(w, "Something went wrong. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.startBrowserSession(w, user.ID); err != nil {
		s.logger.Error(r.Context(), "token issue failed", "error", err, "user_id", user.ID)
		setFlash(w, "Something went wrong. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if currentUserID(r.Context()) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "signup.html", nil)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := s.users.Register(r.Context(), name, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorEmailTaken):
			setFlash(w, "Email already exists")
		case errors.Is(err, common.ErrorValidation):
			setFlash(w, "All fields are required")
		default:
			s.logger.Error(r.Context(), "signup failed", "error", err)
			setFlash(w, "Something went wrong. Please try again.")
		}
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	// Signing up also logs the account in.
	if err := s.startBrowserSession(w, user.ID); err != nil {
		s.logger.Error(r.Context(), "token issue failed", "error", err, "user_id", user.ID)
		setFlash(w, "Something went wrong. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startBrowserSession mints the session JWT and sets it as the cookie that
// withUser reads on subsequent requests.
func (s *Server) startBrowserSession(w http.ResponseWriter, userID string) error {
	token, err := s.users.IssueSessionToken(&models.User{ID: userID})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
