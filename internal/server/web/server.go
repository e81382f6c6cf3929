// Package web is the browser-facing HTTP layer. Handlers stay thin and
// delegate to the services package; pages render server-side templates and
// the interactive endpoints answer JSON.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ecoscan/internal/logging"
	"ecoscan/internal/server/models"
	"ecoscan/internal/server/services"
	"ecoscan/internal/server/sessions"
	"ecoscan/internal/server/storage"
)

// UserService is the slice of the account service the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	IssueSessionToken(user *models.User) (string, error)
	Authenticate(token string) (string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// TreeService covers the planting verification and deletion flows.
type TreeService interface {
	VerifyPlanting(ctx context.Context, userID, filename string, data []byte, mimeType string) (*services.VerificationResult, error)
	DeleteTree(ctx context.Context, userID, treeID string) (*services.DeletionResult, error)
	ListTrees(ctx context.Context, userID string) ([]*models.Tree, error)
}

// ChatService covers the recycling-tip upload and the image-bound chat.
type ChatService interface {
	StartFromUpload(ctx context.Context, filename string, data []byte, mimeType string) (*sessions.Session, error)
	Ask(ctx context.Context, sessionID, question string) (string, []models.ChatMessage, error)
	Transcript(sessionID string) (*sessions.Session, []models.ChatMessage, error)
}

// Server serves the EcoScan web application.
type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	trees   TreeService
	chat    ChatService
	storage storage.Storage
}

func NewServer(addr string, l logging.Logger, us UserService, ts TreeService, cs ChatService, st storage.Storage) *Server {
	return &Server{
		address: addr,
		logger:  l.With("module", "web_server"),
		users:   us,
		trees:   ts,
		chat:    cs,
		storage: st,
	}
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withUser)

	r.Get("/", s.handleLanding)
	r.Get("/about", s.handleAbout)

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/signup", s.handleSignupPage)
	r.Post("/signup", s.handleSignup)

	r.Get("/upload", s.handleUploadPage)
	r.Post("/upload", s.handleUpload)
	r.Get("/chat", s.handleChatPage)
	r.Post("/ask", s.handleAsk)
	r.Get("/uploads/{key}", s.handleImage)

	// Account-only routes.
	r.Group(func(r chi.Router) {
		r.Use(s.requirePageAuth)
		r.Get("/logout", s.handleLogout)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/plant-tree", s.handlePlantTreePage)
	})
	r.Group(func(r chi.Router) {
		r.Use(s.requireJSONAuth)
		r.Post("/plant-tree", s.handlePlantTree)
		r.Post("/delete-tree/{id}", s.handleDeleteTree)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
