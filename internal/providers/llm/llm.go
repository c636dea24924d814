package llm

import "context"

// Chat roles in provider wire format.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string // "user" | "assistant"
	Content string
}

// RoleConfig is the only thing that differentiates the agent roles: one
// capability, four configurations (prompt, sampling, budget, model).
type RoleConfig struct {
	Name         string
	Model        string // provider default when empty
	SystemPrompt string
	Temperature  float32
	MaxTokens    int32
}

type Provider interface {
	// Generate produces exactly one reply for the given role and history.
	// Blocking until the model responds; the caller owns the context deadline.
	Generate(ctx context.Context, role RoleConfig, history []ChatMessage) (string, error)
	Close() error
}
