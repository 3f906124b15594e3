// Package console provides an in-process chat.Session. It backs the
// interactive console command and the tests.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/locbot/pkg/chat"
)

// Record is a message as the session currently sees it.
type Record struct {
	chat.Message
	Pinned  bool
	Deleted bool
	Edits   int
}

// Session keeps every message in memory and optionally mirrors bot output to a writer.
type Session struct {
	selfID string
	out    io.Writer

	mu       sync.Mutex
	messages map[string]*Record
	order    []string
}

// Option configures a Session.
type Option func(*Session)

// WithWriter mirrors every bot action to w.
func WithWriter(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithSelfID sets the author id used for messages the bot sends.
func WithSelfID(id string) Option {
	return func(s *Session) {
		s.selfID = id
	}
}

// New creates an empty Session.
func New(opts ...Option) *Session {
	s := &Session{
		selfID:   "locbot",
		messages: make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post records an inbound message, as if a user had typed it.
func (s *Session) Post(channelID, authorID, content string) chat.Message {
	return s.add(chat.Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		AuthorID:  authorID,
		Content:   content,
	})
}

// Send implements chat.Session.
func (s *Session) Send(ctx context.Context, channelID, content string) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, err
	}
	msg := s.add(chat.Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		AuthorID:  s.selfID,
		AuthorBot: true,
		Content:   content,
	})
	s.printf("[#%s] %s\n", channelID, content)
	return msg, nil
}

// Edit implements chat.Session.
func (s *Session) Edit(ctx context.Context, channelID, messageID, content string) error {
	s.mu.Lock()
	rec, err := s.lookup(channelID, messageID)
	if err == nil {
		rec.Content = content
		rec.Edits++
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.printf("[#%s] (edited %s) %s\n", channelID, messageID, content)
	return nil
}

// Delete implements chat.Session.
func (s *Session) Delete(ctx context.Context, channelID, messageID string) error {
	s.mu.Lock()
	rec, err := s.lookup(channelID, messageID)
	if err == nil {
		rec.Deleted = true
		rec.Pinned = false
	}
	s.mu.Unlock()
	return err
}

// Pin implements chat.Session.
func (s *Session) Pin(ctx context.Context, channelID, messageID string) error {
	s.mu.Lock()
	rec, err := s.lookup(channelID, messageID)
	if err == nil {
		rec.Pinned = true
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.printf("[#%s] (pinned %s)\n", channelID, messageID)
	return nil
}

// Lookup returns the current state of a message.
func (s *Session) Lookup(messageID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.messages[messageID]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Sent returns the messages sent by the bot, oldest first, including deleted ones.
func (s *Session) Sent() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for _, id := range s.order {
		if rec := s.messages[id]; rec.AuthorID == s.selfID {
			out = append(out, *rec)
		}
	}
	return out
}

// Contents returns the content of every message the bot sent, oldest first.
func (s *Session) Contents() []string {
	var out []string
	for _, rec := range s.Sent() {
		out = append(out, rec.Content)
	}
	return out
}

func (s *Session) add(msg chat.Message) chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.ID] = &Record{Message: msg}
	s.order = append(s.order, msg.ID)
	return msg
}

// lookup must be called with s.mu held.
func (s *Session) lookup(channelID, messageID string) (*Record, error) {
	rec, ok := s.messages[messageID]
	if !ok || rec.Deleted || rec.ChannelID != channelID {
		return nil, fmt.Errorf("%w: %s/%s", chat.ErrUnknownMessage, channelID, messageID)
	}
	return rec, nil
}

func (s *Session) printf(format string, args ...any) {
	if s.out == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

var _ chat.Session = (*Session)(nil)
