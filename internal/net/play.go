package net

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/combat/internal/game"
	"github.com/peterkuimelis/combat/internal/log"
)

// VariantBoth asks for the simple and the recursive game on the same deal.
const VariantBoth = "both"

// DefaultMaxRounds caps games whose request leaves max_rounds unset. Some
// deals cycle forever under the simple rules.
const DefaultMaxRounds = 10_000_000

// RoundLimit returns the round cap for a request.
func RoundLimit(msg ClientMessage) int {
	if msg.MaxRounds == 0 {
		return DefaultMaxRounds
	}
	return msg.MaxRounds
}

// ResolveHands returns the deal a play request names: explicit hands win
// over a deck number.
func ResolveHands(msg ClientMessage, decksFile string) ([2][]int, error) {
	if len(msg.Player1) > 0 || len(msg.Player2) > 0 {
		return [2][]int{msg.Player1, msg.Player2}, nil
	}
	if msg.DeckNumber == 0 {
		return [2][]int{}, fmt.Errorf("play request needs player1/player2 hands or a deck_number")
	}
	if decksFile == "" {
		return [2][]int{}, fmt.Errorf("no deck file configured")
	}
	d, err := game.DeckByNumber(decksFile, msg.DeckNumber)
	if err != nil {
		return [2][]int{}, err
	}
	return d.Hands(), nil
}

// Variants expands the request's variant string.
func Variants(s string) ([]game.Variant, error) {
	if s == "" || s == VariantBoth {
		return []game.Variant{game.VariantSimple, game.VariantRecursive}, nil
	}
	v, err := game.ParseVariant(s)
	if err != nil {
		return nil, err
	}
	return []game.Variant{v}, nil
}

// Play runs every game a play request asks for. Without a logger a request
// for both variants runs them concurrently; with one they run in order so the
// logger sees each game's events contiguously.
func Play(ctx context.Context, msg ClientMessage, decksFile string, logger log.EventLogger) ([]ResultView, error) {
	hands, err := ResolveHands(msg, decksFile)
	if err != nil {
		return nil, err
	}
	variants, err := Variants(msg.Variant)
	if err != nil {
		return nil, err
	}
	fp, err := game.ParseFingerprintMode(msg.Fingerprint)
	if err != nil {
		return nil, err
	}

	if len(variants) == 2 && logger == nil {
		sol, err := game.Solve(ctx, hands, game.SolveOptions{MaxRounds: RoundLimit(msg), Fingerprint: fp})
		if err != nil {
			return nil, err
		}
		return []ResultView{
			BuildResultView(game.VariantSimple, sol.Simple),
			BuildResultView(game.VariantRecursive, sol.Recursive),
		}, nil
	}

	var views []ResultView
	for _, v := range variants {
		g, err := game.NewGame(game.GameConfig{
			Hand1:       hands[0],
			Hand2:       hands[1],
			Logger:      logger,
			MaxRounds:   RoundLimit(msg),
			Fingerprint: fp,
		})
		if err != nil {
			return nil, err
		}
		res, err := g.Run(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("%s game: %w", v, err)
		}
		views = append(views, BuildResultView(v, res))
	}
	return views, nil
}

// Handle answers a single client message. Failures become "error" replies.
func Handle(ctx context.Context, msg ClientMessage, decksFile string) ServerMessage {
	switch msg.Type {
	case "play":
		results, err := Play(ctx, msg, decksFile, nil)
		if err != nil {
			return ServerMessage{Type: "error", Error: err.Error()}
		}
		return ServerMessage{Type: "result", Results: results}
	case "score":
		return ServerMessage{Type: "score", Score: game.Score(msg.Deck)}
	default:
		return ServerMessage{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}
