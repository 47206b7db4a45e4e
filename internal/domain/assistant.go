package domain

import (
	"context"
	"errors"
)

// ErrAssistantNotConfigured signals a missing model API key.
var ErrAssistantNotConfigured = errors.New("assistant api key is not configured")

// Chat roles as exchanged with the model endpoint.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage is one turn of an assistant conversation.
// swagger:model ChatMessage
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// TextGenerator generates a model reply from a system instruction, prior
// turns, and the current prompt.
type TextGenerator interface {
	Generate(ctx context.Context, systemInstruction string, history []ChatMessage, prompt string) (string, error)
}

// AssistantService answers student questions using the live event list as
// context. It never fails the caller: model errors degrade to a fixed
// fallback reply.
type AssistantService interface {
	Ask(ctx context.Context, prompt string, history []ChatMessage) (string, error)
}
