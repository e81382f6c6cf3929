package web

import (
	"errors"
	"net/http"

	"ecoscan/internal/common"
	"ecoscan/internal/server/models"
)

// askResponse is the envelope the chat page's script consumes.
type askResponse struct {
	Response    string               `json:"response"`
	ChatHistory []models.ChatMessage `json:"chat_history"`
}

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	data := &pageData{}

	if c, err := r.Cookie(chatCookieName); err == nil && c.Value != "" {
		session, transcript, err := s.chat.Transcript(c.Value)
		if err == nil {
			data.ImageKey = session.ImagePath
			data.Chat = transcript
		}
	}

	s.render(w, r, "chat.html", data)
}

// handleAsk forwards the question to the chat service and returns the answer
// plus the full transcript.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(chatCookieName)
	if err != nil || c.Value == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Upload an image first"})
		return
	}

	question := r.PostFormValue("question")

	answer, transcript, err := s.chat.Ask(r.Context(), c.Value, question)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Question is required"})
		case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorSessionExpired):
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Chat session expired. Upload an image to start over."})
		default:
			s.logger.Error(r.Context(), "chat answer failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Could not get an answer. Please try again."})
		}
		return
	}

	writeJSON(w, http.StatusOK, askResponse{Response: answer, ChatHistory: transcript})
}
