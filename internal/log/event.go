package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventGameStart EventType = iota
	EventRoundStart
	EventPlay
	EventSubGameStart
	EventSubGameEnd
	EventRoundWin
	EventRepeatWin // configuration seen before; player 1 takes the game
	EventWin
	EventRoundLimit
)

func (e EventType) String() string {
	switch e {
	case EventGameStart:
		return "GameStart"
	case EventRoundStart:
		return "RoundStart"
	case EventPlay:
		return "Play"
	case EventSubGameStart:
		return "SubGameStart"
	case EventSubGameEnd:
		return "SubGameEnd"
	case EventRoundWin:
		return "RoundWin"
	case EventRepeatWin:
		return "RepeatWin"
	case EventWin:
		return "Win"
	case EventRoundLimit:
		return "RoundLimit"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game of Combat.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Game    int       // game number (1 = top-level game, sub-games count up from 2)
	Depth   int       // nesting depth (0 = top-level game)
	Round   int       // round within Game (1-based), 0 outside a round
	Player  int       // acting or winning player (0 or 1)
	Type    EventType // event type
	Cards   [2]int    // cards played this round (EventPlay, EventRoundWin)
	Decks   [2][]int  // deck snapshots (EventRoundStart)
	Details string    // human-readable detail string
}
