package live

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mlb-scoreboard-service/internal/logging"
)

// Handler upgrades requests to websocket sessions attached to a hub.
type Handler struct {
	hub      *Hub
	loader   Loader
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds the /ws/scores handler. origins lists allowed Origin
// headers; "*" allows any.
func NewHandler(hub *Hub, loader Loader, logger *slog.Logger, origins []string) *Handler {
	return &Handler{
		hub:    hub,
		loader: loader,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
	}
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed["*"] {
			return true
		}
		if allowed[origin] {
			return true
		}
		// Same-origin pages are always allowed.
		return strings.EqualFold(strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"), r.Host)
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	c := NewClient(uuid.NewString(), conn, h.hub, h.loader, h.logger)
	h.hub.Register(c)

	go c.WritePump()
	go c.ReadPump()
}
