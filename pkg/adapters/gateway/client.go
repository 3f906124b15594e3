// Package gateway implements chat.Session over a websocket connection to a
// chat relay. Both directions exchange JSON envelopes:
//
//	{"type": "message", "payload": {...chat.Message...}}            relay -> bot
//	{"type": "send", "id": "<request>", "payload": {...}}           bot -> relay
//	{"type": "ack", "id": "<request>", "payload": {"messageId": ...}} relay -> bot
//
// Requests are "send", "edit", "delete" and "pin". Every request is answered
// by exactly one ack carrying the same id.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aretw0/locbot/pkg/chat"
)

// Envelope types.
const (
	TypeMessage = "message"
	TypeAck     = "ack"
	TypeSend    = "send"
	TypeEdit    = "edit"
	TypeDelete  = "delete"
	TypePin     = "pin"
)

// CodeUnknownMessage marks an ack for a channel or message that no longer exists.
const CodeUnknownMessage = "unknown_message"

// ErrClosed is returned for requests issued after the connection went away.
var ErrClosed = errors.New("gateway connection closed")

// Envelope is the frame exchanged in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request is the payload of send, edit, delete and pin envelopes.
type Request struct {
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId,omitempty"`
	Content   string `json:"content,omitempty"`
}

// Ack is the payload of an ack envelope.
type Ack struct {
	ChannelID string `json:"channelId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

// Client is a chat.Session backed by a websocket relay.
type Client struct {
	conn   *websocket.Conn
	selfID string
	logger *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan Ack

	messages chan chat.Message
	closed   chan struct{}
	once     sync.Once
}

// Option configures Dial.
type Option func(*dialOptions)

type dialOptions struct {
	token  string
	selfID string
	logger *slog.Logger
	dialer *websocket.Dialer
}

// WithToken sends token as a bot Authorization header.
func WithToken(token string) Option {
	return func(o *dialOptions) {
		o.token = token
	}
}

// WithSelfID sets the author id stamped on messages the client sends.
func WithSelfID(id string) Option {
	return func(o *dialOptions) {
		o.selfID = id
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *dialOptions) {
		o.logger = logger
	}
}

// WithDialer replaces websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(o *dialOptions) {
		o.dialer = d
	}
}

// Dial connects to the relay at url. Call Run to start receiving.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	o := &dialOptions{dialer: websocket.DefaultDialer, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	header := http.Header{}
	if o.token != "" {
		header.Set("Authorization", "Bot "+o.token)
	}

	conn, resp, err := o.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to dial gateway %s (status %d): %w", url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to dial gateway %s: %w", url, err)
	}

	return &Client{
		conn:     conn,
		selfID:   o.selfID,
		logger:   o.logger,
		pending:  make(map[string]chan Ack),
		messages: make(chan chat.Message),
		closed:   make(chan struct{}),
	}, nil
}

// Messages streams inbound chat messages. It is closed when Run returns.
func (c *Client) Messages() <-chan chat.Message {
	return c.messages
}

// Run reads envelopes until ctx is done or the connection fails.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.messages)
	defer c.shutdown()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-stop:
		}
	}()

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if ctx.Err() != nil || isClosure(err) {
				return nil
			}
			return fmt.Errorf("gateway read failed: %w", err)
		}

		switch env.Type {
		case TypeMessage:
			var msg chat.Message
			if err := json.Unmarshal(env.Payload, &msg); err != nil {
				c.logger.Warn("dropping malformed message", "error", err)
				continue
			}
			select {
			case c.messages <- msg:
			case <-ctx.Done():
				return nil
			}

		case TypeAck:
			var ack Ack
			if err := json.Unmarshal(env.Payload, &ack); err != nil {
				ack = Ack{Error: fmt.Sprintf("malformed ack: %v", err)}
			}
			c.resolve(env.ID, ack)

		default:
			c.logger.Debug("ignoring envelope", "type", env.Type)
		}
	}
}

// Close closes the connection. Pending requests fail with ErrClosed.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	c.shutdown()
	return c.conn.Close()
}

// Send implements chat.Session.
func (c *Client) Send(ctx context.Context, channelID, content string) (chat.Message, error) {
	ack, err := c.call(ctx, TypeSend, Request{ChannelID: channelID, Content: content})
	if err != nil {
		return chat.Message{}, err
	}
	if ack.ChannelID == "" {
		ack.ChannelID = channelID
	}
	return chat.Message{
		ID:        ack.MessageID,
		ChannelID: ack.ChannelID,
		AuthorID:  c.selfID,
		AuthorBot: true,
		Content:   content,
	}, nil
}

// Edit implements chat.Session.
func (c *Client) Edit(ctx context.Context, channelID, messageID, content string) error {
	_, err := c.call(ctx, TypeEdit, Request{ChannelID: channelID, MessageID: messageID, Content: content})
	return err
}

// Delete implements chat.Session.
func (c *Client) Delete(ctx context.Context, channelID, messageID string) error {
	_, err := c.call(ctx, TypeDelete, Request{ChannelID: channelID, MessageID: messageID})
	return err
}

// Pin implements chat.Session.
func (c *Client) Pin(ctx context.Context, channelID, messageID string) error {
	_, err := c.call(ctx, TypePin, Request{ChannelID: channelID, MessageID: messageID})
	return err
}

func (c *Client) call(ctx context.Context, typ string, req Request) (Ack, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Ack{}, err
	}

	id := uuid.NewString()
	ch := make(chan Ack, 1)

	c.mu.Lock()
	select {
	case <-c.closed:
		c.mu.Unlock()
		return Ack{}, ErrClosed
	default:
	}
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	c.writeMu.Lock()
	err = c.conn.WriteJSON(Envelope{Type: typ, ID: id, Payload: payload})
	c.writeMu.Unlock()
	if err != nil {
		return Ack{}, fmt.Errorf("gateway %s failed: %w", typ, err)
	}

	select {
	case ack := <-ch:
		switch {
		case ack.Code == CodeUnknownMessage:
			return ack, fmt.Errorf("gateway %s %s/%s: %w", typ, req.ChannelID, req.MessageID, chat.ErrUnknownMessage)
		case ack.Error != "":
			return ack, fmt.Errorf("gateway %s rejected: %s", typ, ack.Error)
		}
		return ack, nil
	case <-c.closed:
		return Ack{}, ErrClosed
	case <-ctx.Done():
		return Ack{}, ctx.Err()
	}
}

func (c *Client) resolve(id string, ack Ack) {
	c.mu.Lock()
	ch, ok := c.pending[id]
	c.mu.Unlock()
	if !ok {
		c.logger.Debug("ack for unknown request", "id", id)
		return
	}
	select {
	case ch <- ack:
	default:
		c.logger.Debug("duplicate ack", "id", id)
	}
}

func (c *Client) shutdown() {
	c.once.Do(func() {
		c.mu.Lock()
		close(c.closed)
		c.mu.Unlock()
	})
}

func isClosure(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
		errors.Is(err, net.ErrClosed)
}

var _ chat.Session = (*Client)(nil)
