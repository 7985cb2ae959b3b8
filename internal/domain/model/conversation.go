package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one message exchanged in a conversation, tagged with its speaker
// role. Immutable once created.
type Turn struct {
	Role      string
	Content   string
	Timestamp time.Time
}

func NewTurn(role, content string) Turn {
	return Turn{Role: role, Content: content, Timestamp: time.Now()}
}
