package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	domaingames "mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
)

const broadcastBuffer = 64

// Hub tracks connected clients and pushes scoreboards to those subscribed
// to the board's date. Client membership changes only on the Run goroutine.
type Hub struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	clock   clockwork.Clock

	clients   map[*Client]struct{}
	clientsMu sync.RWMutex

	broadcast  chan domaingames.Scoreboard
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	doneOnce   sync.Once
}

// NewHub creates a Hub. Call Run to start it.
func NewHub(logger *slog.Logger, rec *metrics.Recorder, clock clockwork.Clock) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Hub{
		logger:     logger,
		metrics:    rec,
		clock:      clock,
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan domaingames.Scoreboard, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	logging.Info(h.logger, "live hub started")
	defer h.doneOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case board := <-h.broadcast:
			h.deliver(board)
		}
	}
}

// Register adds a client. It is a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

// Unregister removes a client. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues a scoreboard for delivery. Boards are dropped when the
// queue is full.
func (h *Hub) Publish(board domaingames.Scoreboard) {
	select {
	case h.broadcast <- board:
	default:
		logging.Warn(h.logger, "live broadcast queue full, dropping scoreboard", logging.FieldDate, board.Date)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(c *Client) {
	h.clientsMu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.clientsMu.Unlock()

	h.metrics.RecordLiveClients(1)
	logging.Info(h.logger, "live client connected", logging.FieldClientID, c.ID, logging.FieldCount, total)
}

func (h *Hub) removeClient(c *Client) {
	h.clientsMu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	total := len(h.clients)
	h.clientsMu.Unlock()

	if !ok {
		return
	}
	c.closeSend()
	h.metrics.RecordLiveClients(-1)
	logging.Info(h.logger, "live client disconnected", logging.FieldClientID, c.ID, logging.FieldCount, total)
}

// deliver sends board to matching clients. Clients whose buffer is full are
// disconnected.
func (h *Hub) deliver(board domaingames.Scoreboard) {
	h.clientsMu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.Date() == board.Date {
			targets = append(targets, c)
		}
	}
	h.clientsMu.RUnlock()

	msg := scoreboardMessage(board, h.clock.Now())
	for _, c := range targets {
		if !c.TrySend(msg) {
			logging.Warn(h.logger, "live client too slow, disconnecting", logging.FieldClientID, c.ID)
			h.removeClient(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.clientsMu.Unlock()

	logging.Info(h.logger, "live hub stopping", logging.FieldCount, len(clients))
	for c := range clients {
		c.closeSend()
		h.metrics.RecordLiveClients(-1)
	}
}
