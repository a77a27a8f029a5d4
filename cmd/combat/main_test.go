package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/peterkuimelis/combat/internal/game"
)

var exampleDeal = [2][]int{{9, 2, 6, 3, 1}, {5, 8, 4, 7, 10}}

func TestSolveVerboseTranscripts(t *testing.T) {
	var out bytes.Buffer
	if err := solve(context.Background(), &out, exampleDeal, game.SolveOptions{}, true); err != nil {
		t.Fatalf("solve: %v", err)
	}

	text := out.String()
	simpleAt := strings.Index(text, "== Simple game ==")
	recursiveAt := strings.Index(text, "== Recursive game ==")
	if simpleAt < 0 || recursiveAt < simpleAt {
		t.Fatalf("Expected simple then recursive transcript:\n%s", text)
	}

	simple, recursive := text[simpleAt:recursiveAt], text[recursiveAt:]
	if strings.Contains(simple, "Playing a sub-game") {
		t.Error("Simple transcript contains a sub-game")
	}
	if n := strings.Count(recursive, "Playing a sub-game"); n != 4 {
		t.Errorf("Expected 4 sub-games in the recursive transcript, got %d", n)
	}
	if !strings.Contains(simple, "The winner of game 1 is P2! (deck: 3, 2, 10, 6, 8, 5, 9, 4, 7, 1)") {
		t.Errorf("Simple transcript missing the final deck:\n%s", simple)
	}
	if !strings.Contains(text, "Solution: (306, 291)") {
		t.Errorf("Expected solution line in:\n%s", text)
	}
}

func TestSolveQuiet(t *testing.T) {
	var out bytes.Buffer
	if err := solve(context.Background(), &out, exampleDeal, game.SolveOptions{}, false); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if strings.Contains(out.String(), "===") {
		t.Errorf("Expected no transcript without verbose:\n%s", out.String())
	}
	if !strings.HasPrefix(out.String(), "Solution: (306, 291)") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestParseCardList(t *testing.T) {
	cards, err := parseCardList("9, 2,6")
	if err != nil || len(cards) != 3 || cards[2] != 6 {
		t.Errorf("parseCardList = %v, %v", cards, err)
	}
	if _, err := parseCardList("9,x"); err == nil {
		t.Error("Expected a bad card to fail")
	}
	if cards, _ := parseCardList(""); cards != nil {
		t.Errorf("Expected nil for empty input, got %v", cards)
	}
}
