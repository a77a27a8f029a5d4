package game

import (
	"encoding/binary"
	"fmt"
)

const (
	Player1 = 0
	Player2 = 1
)

// Hand is one player's ordered deck. Index 0 is the next card to play;
// won cards are appended at the end.
type Hand []int

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	return append(Hand(nil), h...)
}

// draw removes and returns the front card. The hand must not be empty.
func (h *Hand) draw() int {
	c := (*h)[0]
	*h = (*h)[1:]
	return c
}

// take appends the round winner's card followed by the loser's card.
func (h *Hand) take(own, other int) {
	*h = append(*h, own, other)
}

// top returns a copy of the first n cards.
func (h Hand) top(n int) Hand {
	return append(Hand(nil), h[:n]...)
}

// Score sums each card multiplied by its position counted from the bottom
// of the deck (bottom card = 1).
func Score(deck []int) int {
	total := 0
	for i, c := range deck {
		total += c * (len(deck) - i)
	}
	return total
}

// FingerprintMode selects what identifies a configuration for repeat
// detection in the recursive game.
type FingerprintMode int

const (
	// FingerprintBoth keys on the exact order of both hands.
	FingerprintBoth FingerprintMode = iota
	// FingerprintFirstHand keys on player 1's hand only. Player 1's cards
	// determine which cards player 2 holds but not their order, so this
	// mode can end a game earlier than FingerprintBoth would.
	FingerprintFirstHand
)

func (m FingerprintMode) String() string {
	switch m {
	case FingerprintBoth:
		return "both"
	case FingerprintFirstHand:
		return "first-hand"
	default:
		return "unknown"
	}
}

// ParseFingerprintMode parses "both" or "first-hand".
func ParseFingerprintMode(s string) (FingerprintMode, error) {
	switch s {
	case "", "both":
		return FingerprintBoth, nil
	case "first-hand", "first", "hand1":
		return FingerprintFirstHand, nil
	default:
		return 0, fmt.Errorf("unknown fingerprint mode %q (want both or first-hand)", s)
	}
}

// appendFingerprint encodes the configuration into buf. Cards are written as
// uvarints; a positive uvarint never contains a zero byte, so 0 separates
// the hands unambiguously.
func appendFingerprint(buf []byte, hands [2]Hand, mode FingerprintMode) []byte {
	for _, c := range hands[0] {
		buf = binary.AppendUvarint(buf, uint64(c))
	}
	if mode == FingerprintFirstHand {
		return buf
	}
	buf = append(buf, 0)
	for _, c := range hands[1] {
		buf = binary.AppendUvarint(buf, uint64(c))
	}
	return buf
}

// validateHands enforces the dealing contract: both hands non-empty, every
// card positive, and no card value held twice.
func validateHands(h1, h2 []int) error {
	owners := make(map[int]int, len(h1)+len(h2))
	for p, h := range [2][]int{h1, h2} {
		if len(h) == 0 {
			return fmt.Errorf("%w: player %d has no cards", ErrInvalidHand, p+1)
		}
		for i, c := range h {
			if c <= 0 {
				return fmt.Errorf("%w: player %d card %d is %d, cards must be positive", ErrInvalidHand, p+1, i+1, c)
			}
			if owner, dup := owners[c]; dup {
				if owner == p {
					return fmt.Errorf("%w: card %d appears twice in player %d's hand", ErrInvalidHand, c, p+1)
				}
				return fmt.Errorf("%w: card %d appears in both hands", ErrInvalidHand, c)
			}
			owners[c] = p
		}
	}
	return nil
}
