package models

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a session's conversation history. The sequence per
// session is append-only in memory and capped at a fixed window with FIFO
// eviction.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
