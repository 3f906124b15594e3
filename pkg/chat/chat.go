// Package chat defines the transport the bot talks through.
package chat

import (
	"context"
	"errors"
)

// ErrUnknownMessage is returned when a channel or message reference no longer resolves.
var ErrUnknownMessage = errors.New("unknown message")

// Message is an inbound or outbound chat message.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channelId"`
	AuthorID  string `json:"authorId"`
	AuthorBot bool   `json:"authorBot,omitempty"`
	Content   string `json:"content"`
}

// Session is the set of chat operations the command handlers need.
type Session interface {
	// Send posts content to a channel and returns the created message.
	Send(ctx context.Context, channelID, content string) (Message, error)

	// Edit replaces the content of an existing message.
	Edit(ctx context.Context, channelID, messageID, content string) error

	// Delete removes a message.
	Delete(ctx context.Context, channelID, messageID string) error

	// Pin pins a message in its channel.
	Pin(ctx context.Context, channelID, messageID string) error
}
