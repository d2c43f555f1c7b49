package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	domaingames "mlb-scoreboard-service/internal/domain/games"
)

type stubLoader struct {
	block string
}

func (l stubLoader) Scoreboard(ctx context.Context, date string) domaingames.Scoreboard {
	if date == l.block {
		<-ctx.Done()
	}
	return domaingames.NewScoreboard(date, "", []domaingames.Game{{GamePk: 7}})
}

func TestSubscribeRejectsInvalidDate(t *testing.T) {
	h := NewHub(nil, nil, nil)
	c := NewClient("a", nil, h, nil, nil)
	c.Handle(ClientMessage{Type: MessageSubscribe, Date: "07/04/2024"})

	msg := receive(t, c)
	if msg.Type != MessageError || !strings.Contains(msg.Error, "invalid date") {
		t.Fatalf("expected invalid date error, got %+v", msg)
	}
	if c.Date() != "" {
		t.Fatalf("expected no subscription")
	}
}

func TestUnknownMessageType(t *testing.T) {
	c := NewClient("a", nil, NewHub(nil, nil, nil), nil, nil)
	c.Handle(ClientMessage{Type: "dance"})
	if msg := receive(t, c); msg.Type != MessageError {
		t.Fatalf("expected error, got %+v", msg)
	}
}

func TestNewSubscriptionSupersedesPendingLoad(t *testing.T) {
	c := NewClient("a", nil, NewHub(nil, nil, nil), stubLoader{block: "2024-07-03"}, nil)
	c.Handle(ClientMessage{Type: MessageSubscribe, Date: "2024-07-03"})
	c.Handle(ClientMessage{Type: MessageSubscribe, Date: "2024-07-04"})

	msg := receive(t, c)
	if msg.Date != "2024-07-04" {
		t.Fatalf("expected current date board, got %+v", msg)
	}
	time.Sleep(30 * time.Millisecond)
	if len(c.send) != 0 {
		t.Fatalf("expected superseded load to be discarded")
	}
}

func TestUnsubscribeClearsDate(t *testing.T) {
	c := NewClient("a", nil, NewHub(nil, nil, nil), nil, nil)
	c.Handle(ClientMessage{Type: MessageSubscribe, Date: "2024-07-04"})
	c.Handle(ClientMessage{Type: MessageUnsubscribe})
	if c.Date() != "" {
		t.Fatalf("expected empty date, got %q", c.Date())
	}
}

func TestWebsocketSessionEndToEnd(t *testing.T) {
	h, _ := startHub(t)
	srv := httptest.NewServer(NewHandler(h, stubLoader{}, nil, []string{"*"}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ClientMessage{Type: MessageSubscribe, Date: "2024-07-04"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first ServerMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial board: %v", err)
	}
	if first.Type != MessageScoreboard || first.Date != "2024-07-04" {
		t.Fatalf("unexpected initial message %+v", first)
	}

	eventually(t, func() bool { return h.ClientCount() == 1 })
	h.Publish(domaingames.NewScoreboard("2024-07-04", "", []domaingames.Game{{GamePk: 99}}))

	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read pushed board: %v", err)
	}
	var pushed ServerMessage
	_ = json.Unmarshal(raw, &pushed)
	if pushed.Scoreboard == nil || pushed.Scoreboard.Games[0].GamePk != 99 {
		t.Fatalf("unexpected pushed message %s", raw)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://scores.example"})
	cases := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "api.example", true},
		{"https://scores.example", "api.example", true},
		{"https://evil.example", "api.example", false},
		{"http://api.example", "api.example", true},
	}
	for _, tc := range cases {
		r, _ := http.NewRequest(http.MethodGet, "http://"+tc.host+"/ws/scores", nil)
		r.Host = tc.host
		if tc.origin != "" {
			r.Header.Set("Origin", tc.origin)
		}
		if got := check(r); got != tc.want {
			t.Fatalf("origin %q host %q: expected %v, got %v", tc.origin, tc.host, tc.want, got)
		}
	}
}
