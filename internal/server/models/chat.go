package models

// Chat message senders. SenderSystem marks the transient "assistant is
// thinking" placeholder; it never survives next to the assistant reply.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
	SenderSystem    = "system"
)

// ChatMessage is one transcript entry of an image-bound conversation.
type ChatMessage struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}
