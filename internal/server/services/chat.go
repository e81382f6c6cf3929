package services

import (
	"context"
	"fmt"
	"strings"

	"ecoscan/internal/common"
	"ecoscan/internal/logging"
	"ecoscan/internal/server/classifier"
	"ecoscan/internal/server/models"
	"ecoscan/internal/server/sessions"
	"ecoscan/internal/server/storage"
)

// ChatService runs the recycling-tip upload flow and the image-bound chat.
type ChatService struct {
	store      *sessions.Store
	storage    storage.Storage
	classifier classifier.Classifier
	logger     logging.Logger
}

func NewChatService(store *sessions.Store, st storage.Storage, cl classifier.Classifier, logger logging.Logger) *ChatService {
	return &ChatService{
		store:      store,
		storage:    st,
		classifier: cl,
		logger:     logger.With("component", "chat"),
	}
}

// StartFromUpload persists the image, asks the classifier for recycling
// tips, and opens a chat session seeded with the generated description.
// No session is created when the remote call fails.
func (s *ChatService) StartFromUpload(ctx context.Context, filename string, data []byte, mimeType string) (*sessions.Session, error) {
	if len(data) == 0 {
		return nil, common.ErrorValidation
	}

	key, err := s.storage.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("error storing upload: %w", err)
	}

	description, err := s.classifier.Classify(ctx, classifier.Image{Data: data, MIMEType: mimeType}, classifier.RecyclingTipPrompt)
	if err != nil {
		s.logger.Error(ctx, "description generation failed", "error", err)
		return nil, err
	}

	session := s.store.Create(key, mimeType, description)
	s.logger.Info(ctx, "chat session started", "session_id", session.ID, "image", key)
	return session, nil
}

// Ask sends the question about the session's bound image and appends the
// exchange to the transcript: user question first, assistant answer second.
// A transient placeholder entry is visible while the call is in flight and
// is removed on every path, success or failure.
func (s *ChatService) Ask(ctx context.Context, sessionID, question string) (string, []models.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil, common.ErrorValidation
	}

	session, err := s.store.Get(sessionID)
	if err != nil {
		return "", nil, err
	}

	image, err := s.storage.Open(ctx, session.ImagePath)
	if err != nil {
		return "", nil, fmt.Errorf("error reading session image: %w", err)
	}

	session.AppendPlaceholder()
	defer session.RemovePlaceholder()

	answer, err := s.classifier.Classify(ctx, classifier.Image{Data: image, MIMEType: session.MIMEType}, question)
	if err != nil {
		s.logger.Error(ctx, "chat answer failed", "session_id", sessionID, "error", err)
		return "", nil, err
	}

	// The deferred removal becomes a no-op once real messages follow.
	session.RemovePlaceholder()
	session.Append(models.SenderUser, question)
	session.Append(models.SenderAssistant, answer)

	return answer, session.Transcript(), nil
}

// Transcript returns the session's current transcript without mutating it.
func (s *ChatService) Transcript(sessionID string) (*sessions.Session, []models.ChatMessage, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, session.Transcript(), nil
}
