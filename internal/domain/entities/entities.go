// Package entities contains core business entities.
// These are request-scoped values; nothing here outlives a single request.
package entities

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// ChatMessage represents a single {role, content} pair sent to the model.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message string `json:"message"`
}

// Reply is the payload returned to callers on success.
type Reply struct {
	Response string `json:"response"`
}

// Document is an uploaded file, held fully in memory while it is parsed.
type Document struct {
	Name string
	Data []byte
}

// Conversation is an ordered list of lines to export.
type Conversation struct {
	Lines []string
}
