// Package chat provides the ordered message container sent in one request.
package chat

import (
	"github.com/germanamz/directive/pkg/chats/message"
)

// Chat is an ordered list of messages. The zero value is ready to use.
// Chat is not safe for concurrent use.
type Chat struct {
	messages []message.Message
}

// New creates a Chat pre-populated with the given messages.
func New(msgs ...message.Message) *Chat {
	return &Chat{messages: msgs}
}

// SingleTurn creates a Chat holding exactly one user message.
func SingleTurn(prompt string) *Chat {
	c := &Chat{}
	c.Append(message.User(prompt))
	return c
}

// Append adds one or more messages.
func (c *Chat) Append(msgs ...message.Message) {
	c.messages = append(c.messages, msgs...)
}

// Len returns the number of messages.
func (c *Chat) Len() int {
	return len(c.messages)
}

// Messages returns a copy of all messages.
func (c *Chat) Messages() []message.Message {
	cp := make([]message.Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}
