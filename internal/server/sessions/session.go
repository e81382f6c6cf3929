// Package sessions keeps ephemeral, per-browser chat state: one uploaded
// image plus the ordered transcript of the conversation about it. Sessions
// live in memory only and expire after a period of inactivity.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ecoscan/internal/server/models"
)

// placeholderMessage is the transient entry shown while the assistant reply
// is pending. It must never remain once the reply (or a failure) arrives.
const placeholderMessage = "assistant is thinking..."

// Session is one image-bound conversation. All transcript mutations go
// through its methods; the transcript is strictly insertion-ordered.
type Session struct {
	ID        string
	ImagePath string
	MIMEType  string
	// Description is the running tip text generated at upload time.
	Description string

	mu         sync.Mutex
	transcript []models.ChatMessage
	lastUsed   time.Time
}

func newSession(imagePath, mimeType, description string) *Session {
	s := &Session{
		ID:          uuid.New().String(),
		ImagePath:   imagePath,
		MIMEType:    mimeType,
		Description: description,
		lastUsed:    time.Now(),
	}
	if description != "" {
		s.transcript = append(s.transcript, models.ChatMessage{
			Sender:  models.SenderAssistant,
			Message: description,
		})
	}
	return s
}

// Append adds one entry to the end of the transcript.
func (s *Session) Append(sender, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, models.ChatMessage{Sender: sender, Message: message})
	s.lastUsed = time.Now()
}

// AppendPlaceholder adds the transient "thinking" entry.
func (s *Session) AppendPlaceholder() {
	s.Append(models.SenderSystem, placeholderMessage)
}

// RemovePlaceholder drops the trailing system placeholder if present.
// Safe to call when no placeholder exists.
func (s *Session) RemovePlaceholder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.transcript)
	if n > 0 && s.transcript[n-1].Sender == models.SenderSystem {
		s.transcript = s.transcript[:n-1]
	}
}

// Transcript returns a copy of the transcript in insertion order.
func (s *Session) Transcript() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed) > ttl
}
