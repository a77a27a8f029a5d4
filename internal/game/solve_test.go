package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/combat/internal/log"
)

func TestSolveExampleDeal(t *testing.T) {
	recLog := log.NewMemoryLogger()
	sol, err := Solve(context.Background(), [2][]int{exampleHand1, exampleHand2}, SolveOptions{RecursiveLogger: recLog})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	part1, part2 := sol.Scores()
	if part1 != 306 || part2 != 291 {
		t.Errorf("Expected (306, 291), got (%d, %d)", part1, part2)
	}
	if sol.Elapsed < 0 {
		t.Errorf("Expected non-negative elapsed time, got %v", sol.Elapsed)
	}
	if len(recLog.EventsOfType(log.EventSubGameStart)) != 4 {
		t.Errorf("Expected recursive logger to see 4 sub-games")
	}
}

func TestSolveSurfacesSimpleRoundLimit(t *testing.T) {
	_, err := Solve(context.Background(), [2][]int{{43, 19}, {2, 29, 14}}, SolveOptions{MaxRounds: 50})
	if !errors.Is(err, ErrRoundLimit) {
		t.Errorf("Expected ErrRoundLimit from the simple game, got %v", err)
	}
}

func TestSolveRejectsInvalidHands(t *testing.T) {
	_, err := Solve(context.Background(), [2][]int{{1}, {}}, SolveOptions{})
	if !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand, got %v", err)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		deck []int
		want int
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{3, 2, 10, 6, 8, 5, 9, 4, 7, 1}, 306},
		{[]int{7, 5, 6, 2, 4, 1, 10, 8, 9, 3}, 291},
	}
	for _, tt := range tests {
		if got := Score(tt.deck); got != tt.want {
			t.Errorf("Score(%v) = %d, want %d", tt.deck, got, tt.want)
		}
	}
}
