package models

// Chat message roles accepted by the chat backend.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn in a chat-backend conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload the chat backend accepts. The rendered context
// prompt travels as the first message with role "system".
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Model    string        `json:"model"`
	Stream   bool          `json:"stream"`
}

// ChatResponse is the chat backend's reply.
type ChatResponse struct {
	Response string `json:"response"`
}
