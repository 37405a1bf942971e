package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage represents a single entry in the chat log.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"` // "user" | "assistant" | "system"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitRequest is the payload of the local send endpoint.
type SubmitRequest struct {
	Content string `json:"content"`
}

type ChatLogResponse struct {
	Messages  []ChatMessage `json:"messages"`
	Typing    string        `json:"typing"`
	Connected bool          `json:"connected"`
}
