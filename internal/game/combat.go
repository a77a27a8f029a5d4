package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/combat/internal/log"
)

// Variant selects the rule set a game is played under.
type Variant int

const (
	VariantSimple Variant = iota
	VariantRecursive
)

func (v Variant) String() string {
	switch v {
	case VariantSimple:
		return "simple"
	case VariantRecursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// ParseVariant parses "simple" or "recursive".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "simple":
		return VariantSimple, nil
	case "recursive":
		return VariantRecursive, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want simple or recursive)", s)
	}
}

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Hand1       []int           // Player 1's starting hand, front card first
	Hand2       []int           // Player 2's starting hand, front card first
	Logger      log.EventLogger // nil disables event logging
	MaxRounds   int             // stop after this many rounds across all sub-games (0 = no limit)
	Fingerprint FingerprintMode // repeat detection key (recursive variant)
}

// Result describes a finished game.
type Result struct {
	Winner      int  // Player1 or Player2
	Deck        Hand // winner's final deck, front card first
	Rounds      int  // rounds played in the top-level game
	TotalRounds int  // rounds played including every sub-game
	SubGames    int  // sub-games played
	MaxDepth    int  // deepest sub-game nesting (0 = none)
	ByRepeat    bool // top-level game ended by a repeated configuration
}

// Score returns the score of the winning deck.
func (r Result) Score() int {
	return Score(r.Deck)
}

// WinnerName returns "P1" or "P2".
func (r Result) WinnerName() string {
	return fmt.Sprintf("P%d", r.Winner+1)
}

// Game runs a single game of Combat between two hands. A Game is single-use.
type Game struct {
	hands       [2]Hand
	logger      log.EventLogger
	maxRounds   int
	fingerprint FingerprintMode
	played      bool

	totalRounds int
	subGames    int
	maxDepth    int
	nextGame    int
}

// frame is one (sub)game on the recursive work stack.
type frame struct {
	hands [2]Hand
	seen  map[string]struct{}
	key   []byte
	id    int // game number, 1 for the top-level game
	depth int
	round int

	// set while the frame waits for a sub-game to decide its current round
	pending bool
	cards   [2]int
	child   int // game number of the sub-game deciding the round
}

// NewGame validates and copies the starting hands.
func NewGame(cfg GameConfig) (*Game, error) {
	if err := validateHands(cfg.Hand1, cfg.Hand2); err != nil {
		return nil, err
	}
	if cfg.MaxRounds < 0 {
		return nil, fmt.Errorf("max rounds must be >= 0, got %d", cfg.MaxRounds)
	}
	return &Game{
		hands:       [2]Hand{Hand(cfg.Hand1).Clone(), Hand(cfg.Hand2).Clone()},
		logger:      cfg.Logger,
		maxRounds:   cfg.MaxRounds,
		fingerprint: cfg.Fingerprint,
	}, nil
}

// Hands returns copies of both current hands.
func (g *Game) Hands() [2]Hand {
	return [2]Hand{g.hands[0].Clone(), g.hands[1].Clone()}
}

// Run plays the game to completion under the given variant.
func (g *Game) Run(ctx context.Context, v Variant) (Result, error) {
	switch v {
	case VariantSimple:
		return g.PlaySimple(ctx)
	case VariantRecursive:
		return g.PlayRecursive(ctx)
	default:
		return Result{}, fmt.Errorf("unknown variant %d", v)
	}
}

// PlaySimple plays until one hand is empty; the higher card takes each round.
// There is no repeat detection: a cycling deal only stops at MaxRounds or
// when ctx is cancelled.
func (g *Game) PlaySimple(ctx context.Context) (Result, error) {
	if err := g.start(); err != nil {
		return Result{}, err
	}
	f := g.newFrame(g.hands, 0)
	defer func() { g.hands = f.hands }()

	for !f.over() {
		if err := g.beginRound(ctx, f); err != nil {
			return Result{}, err
		}
		c1, c2 := f.hands[0].draw(), f.hands[1].draw()
		g.log(func() log.GameEvent { return log.NewPlayEvent(f.id, f.depth, f.round, c1, c2) })
		winner, err := highCard(c1, c2)
		if err != nil {
			return Result{}, fmt.Errorf("game %d round %d: %w", f.id, f.round, err)
		}
		g.award(f, winner, c1, c2)
	}

	winner := f.survivor()
	g.log(func() log.GameEvent { return log.NewWinEvent(f.id, f.depth, f.round, winner, f.hands[winner]) })
	return g.result(f, winner, false), nil
}

// PlayRecursive plays Recursive Combat. Sub-games run on an explicit stack
// of frames rather than the call stack; a frame whose round needs a
// sub-game is suspended until the child frame finishes.
func (g *Game) PlayRecursive(ctx context.Context) (Result, error) {
	if err := g.start(); err != nil {
		return Result{}, err
	}
	root := g.newFrame(g.hands, 0)
	defer func() { g.hands = root.hands }()

	stack := []*frame{root}
	verdict := Player1
	byRepeat := false

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.pending {
			g.resolve(f, verdict)
		}

		child, winner, repeat, err := g.advance(ctx, f)
		if err != nil {
			return Result{}, err
		}
		if child != nil {
			stack = append(stack, child)
			continue
		}

		stack = stack[:len(stack)-1]
		verdict = winner
		if f == root {
			byRepeat = repeat
		}
	}

	return g.result(root, verdict, byRepeat), nil
}

// advance plays rounds of f until the game ends or a round needs a sub-game.
// It returns the child frame to run next, or the winner of f.
func (g *Game) advance(ctx context.Context, f *frame) (*frame, int, bool, error) {
	for {
		if f.over() {
			winner := f.survivor()
			g.log(func() log.GameEvent { return log.NewWinEvent(f.id, f.depth, f.round, winner, f.hands[winner]) })
			return nil, winner, false, nil
		}
		if !f.remember(g.fingerprint) {
			g.log(func() log.GameEvent { return log.NewRepeatWinEvent(f.id, f.depth, f.round) })
			g.log(func() log.GameEvent { return log.NewWinEvent(f.id, f.depth, f.round, Player1, f.hands[Player1]) })
			return nil, Player1, true, nil
		}
		if err := g.beginRound(ctx, f); err != nil {
			return nil, 0, false, err
		}

		c1, c2 := f.hands[0].draw(), f.hands[1].draw()
		g.log(func() log.GameEvent { return log.NewPlayEvent(f.id, f.depth, f.round, c1, c2) })

		if len(f.hands[0]) >= c1 && len(f.hands[1]) >= c2 {
			f.pending = true
			f.cards = [2]int{c1, c2}
			f.child = g.nextGame + 1
			g.log(func() log.GameEvent { return log.NewSubGameStartEvent(f.id, f.depth, f.round, f.child) })
			return g.newFrame([2]Hand{f.hands[0].top(c1), f.hands[1].top(c2)}, f.depth+1), 0, false, nil
		}

		w, err := highCard(c1, c2)
		if err != nil {
			return nil, 0, false, fmt.Errorf("game %d round %d: %w", f.id, f.round, err)
		}
		g.award(f, w, c1, c2)
	}
}

// resolve completes the suspended round of f with the sub-game's winner.
func (g *Game) resolve(f *frame, winner int) {
	c1, c2 := f.cards[0], f.cards[1]
	f.pending = false
	g.log(func() log.GameEvent { return log.NewSubGameEndEvent(f.id, f.depth, f.round, f.child, winner) })
	g.award(f, winner, c1, c2)
}

func (g *Game) start() error {
	if g.played {
		return ErrAlreadyPlayed
	}
	g.played = true
	return nil
}

func (g *Game) newFrame(hands [2]Hand, depth int) *frame {
	g.nextGame++
	f := &frame{
		hands: hands,
		seen:  make(map[string]struct{}),
		id:    g.nextGame,
		depth: depth,
	}
	if depth > 0 {
		g.subGames++
		if depth > g.maxDepth {
			g.maxDepth = depth
		}
	}
	g.log(func() log.GameEvent { return log.NewGameStartEvent(f.id, f.depth) })
	return f
}

// beginRound enforces the round limit and cancellation, then opens a round.
func (g *Game) beginRound(ctx context.Context, f *frame) error {
	if g.maxRounds > 0 && g.totalRounds >= g.maxRounds {
		g.log(func() log.GameEvent { return log.NewRoundLimitEvent(f.id, f.depth, f.round, g.maxRounds) })
		return fmt.Errorf("%w: %d rounds", ErrRoundLimit, g.maxRounds)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.totalRounds++
	f.round++
	g.log(func() log.GameEvent {
		return log.NewRoundStartEvent(f.id, f.depth, f.round, f.hands[0], f.hands[1])
	})
	return nil
}

func (g *Game) award(f *frame, winner, c1, c2 int) {
	if winner == Player1 {
		f.hands[0].take(c1, c2)
	} else {
		f.hands[1].take(c2, c1)
	}
	g.log(func() log.GameEvent { return log.NewRoundWinEvent(f.id, f.depth, f.round, winner, c1, c2) })
}

func (g *Game) result(root *frame, winner int, byRepeat bool) Result {
	return Result{
		Winner:      winner,
		Deck:        root.hands[winner].Clone(),
		Rounds:      root.round,
		TotalRounds: g.totalRounds,
		SubGames:    g.subGames,
		MaxDepth:    g.maxDepth,
		ByRepeat:    byRepeat,
	}
}

// log builds the event lazily so unlogged games pay nothing for formatting.
func (g *Game) log(build func() log.GameEvent) {
	if g.logger == nil {
		return
	}
	g.logger.Log(build())
}

func (f *frame) over() bool {
	return len(f.hands[0]) == 0 || len(f.hands[1]) == 0
}

// survivor returns the player still holding cards.
func (f *frame) survivor() int {
	if len(f.hands[0]) == 0 {
		return Player2
	}
	return Player1
}

// remember records the current configuration and reports whether it is new.
func (f *frame) remember(mode FingerprintMode) bool {
	f.key = appendFingerprint(f.key[:0], f.hands, mode)
	if _, ok := f.seen[string(f.key)]; ok {
		return false
	}
	f.seen[string(f.key)] = struct{}{}
	return true
}

// highCard decides a round by card value.
func highCard(c1, c2 int) (int, error) {
	switch {
	case c1 > c2:
		return Player1, nil
	case c2 > c1:
		return Player2, nil
	default:
		return 0, fmt.Errorf("%w: both players played %d", ErrUnexpectedTie, c1)
	}
}
