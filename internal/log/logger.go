package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// EventsOfGame returns all events emitted by the given game number.
func (l *MemoryLogger) EventsOfGame(game int) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Game == game {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

// TextLogger numbers and prints events but does not retain them; a recursive
// game can emit millions of events.
type TextLogger struct {
	w   io.Writer
	seq int
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	fmt.Fprintln(l.w, FormatEvent(event))
}

func (l *TextLogger) Events() []GameEvent {
	return nil
}

// --- FuncLogger: forwards events to a callback (used for streaming) ---

type FuncLogger struct {
	fn  func(GameEvent)
	seq int
}

func NewFuncLogger(fn func(GameEvent)) *FuncLogger {
	return &FuncLogger{fn: fn}
}

func (l *FuncLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.fn(event)
}

func (l *FuncLogger) Events() []GameEvent {
	return nil
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
// Sub-game lines are indented by their nesting depth.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("G%-3d R%-4d| %s%s", e.Game, e.Round, strings.Repeat("  ", e.Depth), e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatDeck renders a deck as a comma-separated list, front card first.
func FormatDeck(deck []int) string {
	if len(deck) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(deck))
	for i, c := range deck {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, ", ")
}

// --- Helper constructors for common events ---

func NewGameStartEvent(game, depth int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Type:    EventGameStart,
		Details: fmt.Sprintf("=== Game %d ===", game),
	}
}

// NewRoundStartEvent snapshots both decks; the slices are copied.
func NewRoundStartEvent(game, depth, round int, deck1, deck2 []int) GameEvent {
	d1 := append([]int(nil), deck1...)
	d2 := append([]int(nil), deck2...)
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Type:    EventRoundStart,
		Decks:   [2][]int{d1, d2},
		Details: fmt.Sprintf("-- Round %d (Game %d) -- P1 deck: %s | P2 deck: %s", round, game, FormatDeck(d1), FormatDeck(d2)),
	}
}

func NewPlayEvent(game, depth, round, c1, c2 int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Type:    EventPlay,
		Cards:   [2]int{c1, c2},
		Details: fmt.Sprintf("P1 plays %d, P2 plays %d", c1, c2),
	}
}

func NewSubGameStartEvent(game, depth, round, subGame int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Type:    EventSubGameStart,
		Details: fmt.Sprintf("Playing a sub-game (game %d) to determine the winner...", subGame),
	}
}

func NewSubGameEndEvent(game, depth, round, subGame, winner int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Player:  winner,
		Type:    EventSubGameEnd,
		Details: fmt.Sprintf("...%s won game %d, back to game %d", playerName(winner), subGame, game),
	}
}

func NewRoundWinEvent(game, depth, round, winner, c1, c2 int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Player:  winner,
		Type:    EventRoundWin,
		Cards:   [2]int{c1, c2},
		Details: fmt.Sprintf("%s wins round %d of game %d", playerName(winner), round, game),
	}
}

func NewRepeatWinEvent(game, depth, round int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Player:  0,
		Type:    EventRepeatWin,
		Details: fmt.Sprintf("Configuration repeated in game %d; P1 wins the game", game),
	}
}

func NewWinEvent(game, depth, round, winner int, deck []int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("The winner of game %d is %s! (deck: %s)", game, playerName(winner), FormatDeck(deck)),
	}
}

func NewRoundLimitEvent(game, depth, round, limit int) GameEvent {
	return GameEvent{
		Game:    game,
		Depth:   depth,
		Round:   round,
		Type:    EventRoundLimit,
		Details: fmt.Sprintf("Round limit reached (%d rounds)", limit),
	}
}
