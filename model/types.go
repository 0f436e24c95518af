// Package model provides domain types shared across packages.
package model

// Role identifies the author of a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Immutable once created.
type Turn struct {
	Role Role   `json:"role"`
	Body string `json:"body"`
}

// UserTurn creates a user Turn.
func UserTurn(body string) Turn {
	return Turn{Role: RoleUser, Body: body}
}

// AssistantTurn creates an assistant Turn.
func AssistantTurn(body string) Turn {
	return Turn{Role: RoleAssistant, Body: body}
}

// Conversation is an ordered sequence of Turns, oldest first.
// Values are passed around by cloning; a snapshot handed to a consumer
// is never mutated afterwards.
type Conversation []Turn

// Clone returns an independent copy of the conversation.
// Returns a non-nil empty Conversation for nil input so callers can
// append without a nil check.
func (c Conversation) Clone() Conversation {
	out := make(Conversation, len(c))
	copy(out, c)
	return out
}

// Last returns the most recent Turn and true, or a zero Turn and false
// when the conversation is empty.
func (c Conversation) Last() (Turn, bool) {
	if len(c) == 0 {
		return Turn{}, false
	}
	return c[len(c)-1], true
}
