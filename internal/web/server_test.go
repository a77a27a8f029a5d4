package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	combatnet "github.com/peterkuimelis/combat/internal/net"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	content := "decks:\n  - name: example\n    player1: [9, 2, 6, 3, 1]\n    player2: [5, 8, 4, 7, 10]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(NewServer(path, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestIndexServed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("Unexpected response %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, err = http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestDecksAPI(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/decks")
	if err != nil {
		t.Fatalf("GET /api/decks: %v", err)
	}
	defer resp.Body.Close()

	var decks []combatnet.DeckView
	if err := json.NewDecoder(resp.Body).Decode(&decks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decks) != 1 || decks[0].Name != "example" {
		t.Errorf("Unexpected decks %+v", decks)
	}
}

func TestPlayAPI(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/play", "application/json", strings.NewReader(`{"deck_number": 1}`))
	if err != nil {
		t.Fatalf("POST /api/play: %v", err)
	}
	defer resp.Body.Close()
	var reply combatnet.ServerMessage
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || reply.Type != "result" || reply.GameID == "" {
		t.Fatalf("Unexpected reply %d %+v", resp.StatusCode, reply)
	}
	if len(reply.Results) != 2 || reply.Results[0].Score != 306 || reply.Results[1].Score != 291 {
		t.Errorf("Expected scores 306 and 291, got %+v", reply.Results)
	}

	resp2, err := http.Post(ts.URL+"/api/play", "application/json", strings.NewReader(`{"player1": [1], "player2": []}`))
	if err != nil {
		t.Fatalf("POST /api/play: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for an empty hand, got %d", resp2.StatusCode)
	}

	resp3, err := http.Post(ts.URL+"/api/play", "application/json", strings.NewReader(`{`))
	if err != nil {
		t.Fatalf("POST /api/play: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", resp3.StatusCode)
	}
}

func TestWebSocketStreamsEvents(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	req := combatnet.ClientMessage{
		Type:    "play",
		Player1: []int{2, 10, 20},
		Player2: []int{1, 5},
		Variant: "recursive",
	}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		t.Fatalf("write: %v", err)
	}

	var events []combatnet.EventView
	var final combatnet.ServerMessage
	for {
		var msg combatnet.ServerMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != "event" {
			final = msg
			break
		}
		events = append(events, *msg.Event)
	}

	if final.Type != "result" || len(final.Results) != 1 || final.Results[0].SubGames != 1 {
		t.Fatalf("Unexpected final message %+v", final)
	}
	if len(events) == 0 || events[0].Type != "GameStart" {
		t.Fatalf("Expected stream to open with GameStart, got %+v", events)
	}
	sawSubGame := false
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d has seq %d", i, e.Seq)
		}
		if e.Type == "SubGameStart" {
			sawSubGame = true
		}
	}
	if !sawSubGame {
		t.Error("Expected a SubGameStart event")
	}
}

func TestWebSocketEventCap(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	if err := wsjson.Write(ctx, conn, combatnet.ClientMessage{Type: "play", DeckNumber: 1, Variant: "simple", MaxEvents: 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	count := 0
	for {
		var msg combatnet.ServerMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type == "event" {
			count++
			continue
		}
		if msg.Type != "result" || msg.Results[0].Score != 306 {
			t.Errorf("Unexpected final message %+v", msg)
		}
		break
	}
	if count != 3 {
		t.Errorf("Expected 3 streamed events, got %d", count)
	}
}
