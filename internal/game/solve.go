package game

import (
	"context"
	"fmt"
	"time"

	"github.com/peterkuimelis/combat/internal/log"
	"golang.org/x/sync/errgroup"
)

// SolveOptions configures Solve.
type SolveOptions struct {
	MaxRounds   int
	Fingerprint FingerprintMode
	// Loggers for the simple and recursive games; nil disables logging.
	SimpleLogger    log.EventLogger
	RecursiveLogger log.EventLogger
}

// Solution holds both puzzle answers.
type Solution struct {
	Simple    Result
	Recursive Result
	Elapsed   time.Duration
}

// Scores returns the simple and recursive scores.
func (s *Solution) Scores() (int, int) {
	return s.Simple.Score(), s.Recursive.Score()
}

// Solve plays the simple and recursive variants on independent copies of
// the same deal, concurrently, and reports both results.
func Solve(ctx context.Context, hands [2][]int, opts SolveOptions) (*Solution, error) {
	start := time.Now()

	newGame := func(logger log.EventLogger) (*Game, error) {
		return NewGame(GameConfig{
			Hand1:       hands[0],
			Hand2:       hands[1],
			Logger:      logger,
			MaxRounds:   opts.MaxRounds,
			Fingerprint: opts.Fingerprint,
		})
	}
	simple, err := newGame(opts.SimpleLogger)
	if err != nil {
		return nil, err
	}
	recursive, err := newGame(opts.RecursiveLogger)
	if err != nil {
		return nil, err
	}

	var sol Solution
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		res, err := simple.PlaySimple(egCtx)
		if err != nil {
			return fmt.Errorf("simple game: %w", err)
		}
		sol.Simple = res
		return nil
	})
	eg.Go(func() error {
		res, err := recursive.PlayRecursive(egCtx)
		if err != nil {
			return fmt.Errorf("recursive game: %w", err)
		}
		sol.Recursive = res
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sol.Elapsed = time.Since(start)
	return &sol, nil
}
