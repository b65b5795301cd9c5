package llm

import "context"

// Role tags a prompt turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Turn is one role-tagged unit of prompt input.
type Turn struct {
	Role    Role
	Content string
}

// Client is a minimal text-generation interface to allow pluggable providers.
type Client interface {
	Generate(ctx context.Context, turns []Turn, maxTokens int64) (string, error)
}
