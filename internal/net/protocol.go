package net

import (
	"github.com/peterkuimelis/combat/internal/game"
	"github.com/peterkuimelis/combat/internal/log"
)

// Message types for the JSON protocol (newline-delimited over TCP, one
// message per frame over WebSocket).

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"` // "play" or "score"

	// For "play": either both hands or a deck number from the server's deck file
	Player1     []int  `json:"player1,omitempty"`
	Player2     []int  `json:"player2,omitempty"`
	DeckNumber  int    `json:"deck_number,omitempty"`
	Variant     string `json:"variant,omitempty"` // "simple", "recursive" or "both" (default)
	MaxRounds   int    `json:"max_rounds,omitempty"` // 0 = DefaultMaxRounds
	Fingerprint string `json:"fingerprint,omitempty"` // "both" (default) or "first-hand"

	// For WebSocket "play": cap on streamed events (0 = DefaultMaxEvents)
	MaxEvents int `json:"max_events,omitempty"`

	// For "score"
	Deck []int `json:"deck,omitempty"`
}

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"` // "result", "score", "event" or "error"

	GameID string `json:"game_id,omitempty"`

	// For "result"
	Results []ResultView `json:"results,omitempty"`

	// For "score"
	Score int `json:"score,omitempty"`

	// For "event"
	Event *EventView `json:"event,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// ResultView is a finished game as presented to clients. Players are 1-based.
type ResultView struct {
	Variant     string `json:"variant"`
	Winner      int    `json:"winner"`
	Deck        []int  `json:"deck"`
	Score       int    `json:"score"`
	Rounds      int    `json:"rounds"`
	TotalRounds int    `json:"total_rounds"`
	SubGames    int    `json:"sub_games"`
	MaxDepth    int    `json:"max_depth"`
	ByRepeat    bool   `json:"by_repeat,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Game    int    `json:"game"`
	Depth   int    `json:"depth"`
	Round   int    `json:"round"`
	Player  int    `json:"player,omitempty"` // 1-based; set on events that name a winner
	Type    string `json:"type"`
	Cards   []int  `json:"cards,omitempty"`
	Details string `json:"details"`
}

// DeckView lists one entry of the server's deck file.
type DeckView struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Player1 []int  `json:"player1"`
	Player2 []int  `json:"player2"`
}

// BuildResultView converts an engine result.
func BuildResultView(v game.Variant, r game.Result) ResultView {
	deck := []int(r.Deck)
	if deck == nil {
		deck = []int{}
	}
	return ResultView{
		Variant:     v.String(),
		Winner:      r.Winner + 1,
		Deck:        deck,
		Score:       r.Score(),
		Rounds:      r.Rounds,
		TotalRounds: r.TotalRounds,
		SubGames:    r.SubGames,
		MaxDepth:    r.MaxDepth,
		ByRepeat:    r.ByRepeat,
	}
}

// BuildEventView converts a game event.
func BuildEventView(e log.GameEvent) EventView {
	ev := EventView{
		Seq:     e.Seq,
		Game:    e.Game,
		Depth:   e.Depth,
		Round:   e.Round,
		Type:    e.Type.String(),
		Details: e.Details,
	}
	switch e.Type {
	case log.EventRoundWin, log.EventSubGameEnd, log.EventRepeatWin, log.EventWin:
		ev.Player = e.Player + 1
	}
	if e.Type == log.EventPlay || e.Type == log.EventRoundWin {
		ev.Cards = []int{e.Cards[0], e.Cards[1]}
	}
	return ev
}

// BuildDeckViews lists a deck file.
func BuildDeckViews(df *game.DeckFile) []DeckView {
	views := make([]DeckView, 0, len(df.Decks))
	for i, d := range df.Decks {
		views = append(views, DeckView{
			Number:  i + 1,
			Name:    d.Name,
			Player1: d.Player1,
			Player2: d.Player2,
		})
	}
	return views
}
