package live

import (
	"time"

	domaingames "mlb-scoreboard-service/internal/domain/games"
)

// MessageType tags websocket frames in both directions.
type MessageType string

const (
	MessageSubscribe   MessageType = "subscribe"
	MessageScoreboard  MessageType = "scoreboard"
	MessageError       MessageType = "error"
	MessageUnsubscribe MessageType = "unsubscribe"
)

// ClientMessage is a frame received from a browser.
type ClientMessage struct {
	Type MessageType `json:"type"`
	Date string      `json:"date,omitempty"`
}

// ServerMessage is a frame pushed to a browser.
type ServerMessage struct {
	Type       MessageType             `json:"type"`
	Date       string                  `json:"date,omitempty"`
	Scoreboard *domaingames.Scoreboard `json:"scoreboard,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
}

func scoreboardMessage(board domaingames.Scoreboard, at time.Time) ServerMessage {
	return ServerMessage{Type: MessageScoreboard, Date: board.Date, Scoreboard: &board, Timestamp: at}
}

func errorMessage(text string, at time.Time) ServerMessage {
	return ServerMessage{Type: MessageError, Error: text, Timestamp: at}
}
