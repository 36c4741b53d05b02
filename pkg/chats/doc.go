// Package chats holds the provider-agnostic message model sent to a chat
// endpoint.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/directive/pkg/chats/role] - message roles (system, user, assistant)
//   - [github.com/germanamz/directive/pkg/chats/message] - a role plus its text content
//   - [github.com/germanamz/directive/pkg/chats/chat] - ordered message container for one request
//
// No wire format lives here; adapters translate these types into their own
// request bodies.
package chats
