// Package message defines the Message type exchanged with a chat endpoint.
package message

import (
	"github.com/germanamz/directive/pkg/chats/role"
)

// Message is a single chat message. It is a value type that copies cheaply.
type Message struct {
	Role    role.Role
	Content string
}

// New creates a message with the given role and text content.
func New(r role.Role, text string) Message {
	return Message{Role: r, Content: text}
}

// User creates a user-role message.
func User(text string) Message {
	return New(role.User, text)
}

// Assistant creates an assistant-role message.
func Assistant(text string) Message {
	return New(role.Assistant, text)
}
