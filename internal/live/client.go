package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mlb-scoreboard-service/internal/app/viewstate"
	domaingames "mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/timeutil"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Loader builds the scoreboard pushed right after a subscription.
type Loader interface {
	Scoreboard(ctx context.Context, date string) domaingames.Scoreboard
}

// Client is one websocket session. Its State tracks the subscribed date; each
// subscription mounts a fresh handle so a superseded load never reaches the
// socket.
type Client struct {
	ID string

	conn   *websocket.Conn
	hub    *Hub
	loader Loader
	logger *slog.Logger
	state  *viewstate.State
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	send   chan ServerMessage
	closed bool
}

// NewClient creates a client for conn. conn may be nil in tests that only
// exercise delivery.
func NewClient(id string, conn *websocket.Conn, hub *Hub, loader Loader, logger *slog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	if logger != nil {
		logger = logger.With(logging.FieldClientID, id)
	}
	return &Client{
		ID:     id,
		conn:   conn,
		hub:    hub,
		loader: loader,
		logger: logger,
		state:  viewstate.New(""),
		ctx:    logging.WithLogger(ctx, logger),
		cancel: cancel,
		send:   make(chan ServerMessage, sendBufferSize),
	}
}

// Date is the subscribed date, or "" before any subscription.
func (c *Client) Date() string {
	return c.state.Snapshot().Date
}

// TrySend queues msg without blocking. It reports false when the buffer is
// full or the client is closed.
func (c *Client) TrySend(msg ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.cancel()
}

// Handle processes one inbound frame.
func (c *Client) Handle(msg ClientMessage) {
	switch msg.Type {
	case MessageSubscribe:
		c.subscribe(msg.Date)
	case MessageUnsubscribe:
		c.remount().SetDate("")
	default:
		c.TrySend(errorMessage("unknown message type: "+string(msg.Type), c.hub.clock.Now()))
	}
}

func (c *Client) remount() *viewstate.Handle {
	return c.state.Mount(c.ctx, viewstate.Route{View: viewstate.ViewScores})
}

func (c *Client) subscribe(date string) {
	if _, err := timeutil.ParseDate(date); err != nil {
		c.TrySend(errorMessage("invalid date: "+date, c.hub.clock.Now()))
		return
	}
	h := c.remount()
	h.SetDate(date)
	logging.Debug(c.logger, "live client subscribed", logging.FieldDate, date)

	if c.loader == nil {
		return
	}
	go func() {
		board := c.loader.Scoreboard(h.Context(), date)
		if !h.Active() {
			return
		}
		c.TrySend(scoreboardMessage(board, c.hub.clock.Now()))
	}()
}

// ReadPump reads frames until the connection fails, then unregisters.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.cancel()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug(c.logger, "live client closed unexpectedly", "error", err)
			}
			return
		}
		c.Handle(msg)
	}
}

// WritePump drains the send buffer to the socket and keeps the connection
// alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logging.Debug(c.logger, "live client write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
