package game

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseHands reads two hands in the puzzle text format:
//
//	Player 1:
//	9
//	2
//
//	Player 2:
//	5
//	8
//
// Each block starts with a label line followed by one card per line; blocks
// are separated by a blank line. Hands are not validated here.
func ParseHands(r io.Reader) ([2][]int, error) {
	var hands [2][]int
	block := -1
	inBlock := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			inBlock = false
			continue
		}
		if !inBlock {
			block++
			if block > 1 {
				return hands, fmt.Errorf("line %d: unexpected third block %q", lineNo, line)
			}
			inBlock = true
			if !strings.HasSuffix(line, ":") {
				return hands, fmt.Errorf("line %d: expected player label, got %q", lineNo, line)
			}
			continue
		}
		card, err := strconv.Atoi(line)
		if err != nil {
			return hands, fmt.Errorf("line %d: bad card %q: %w", lineNo, line, err)
		}
		hands[block] = append(hands[block], card)
	}
	if err := sc.Err(); err != nil {
		return hands, fmt.Errorf("read hands: %w", err)
	}
	if block < 1 {
		return hands, fmt.Errorf("expected two player blocks, found %d", block+1)
	}
	return hands, nil
}

// ReadHandsFile parses hands from a file in the puzzle text format.
func ReadHandsFile(path string) ([2][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return [2][]int{}, err
	}
	defer f.Close()
	return ParseHands(f)
}
