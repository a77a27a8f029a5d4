package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const exampleInput = `Player 1:
9
2
6
3
1

Player 2:
5
8
4
7
10
`

func TestParseHands(t *testing.T) {
	hands, err := ParseHands(strings.NewReader(exampleInput))
	if err != nil {
		t.Fatalf("ParseHands: %v", err)
	}
	want := [2][]int{exampleHand1, exampleHand2}
	if diff := cmp.Diff(want, hands); diff != "" {
		t.Errorf("hands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHandsToleratesBlankEdges(t *testing.T) {
	in := "\n\n" + strings.ReplaceAll(exampleInput, "\n", "\r\n") + "\n\n"
	hands, err := ParseHands(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseHands: %v", err)
	}
	if len(hands[0]) != 5 || len(hands[1]) != 5 {
		t.Errorf("Expected 5 cards each, got %d and %d", len(hands[0]), len(hands[1]))
	}
}

func TestParseHandsErrors(t *testing.T) {
	tests := []struct {
		name, input, wantErr string
	}{
		{"bad card", "Player 1:\n9\nx\n\nPlayer 2:\n5\n", "line 3"},
		{"missing label", "9\n2\n\nPlayer 2:\n5\n", "expected player label"},
		{"one block", "Player 1:\n9\n2\n", "expected two player blocks"},
		{"three blocks", "Player 1:\n9\n\nPlayer 2:\n5\n\nPlayer 3:\n1\n", "third block"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHands(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReadHandsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day22.in")
	if err := os.WriteFile(path, []byte(exampleInput), 0o644); err != nil {
		t.Fatal(err)
	}
	hands, err := ReadHandsFile(path)
	if err != nil {
		t.Fatalf("ReadHandsFile: %v", err)
	}
	if hands[1][4] != 10 {
		t.Errorf("Expected last card of P2 to be 10, got %d", hands[1][4])
	}
	if _, err := ReadHandsFile(filepath.Join(t.TempDir(), "missing.in")); err == nil {
		t.Error("Expected missing file to fail")
	}
}
