package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a named deal: both starting hands, front card first.
type DeckEntry struct {
	Name    string `yaml:"name"`
	Player1 []int  `yaml:"player1"`
	Player2 []int  `yaml:"player2"`
}

// Hands returns the entry's hands in engine order.
func (d DeckEntry) Hands() [2][]int {
	return [2][]int{d.Player1, d.Player2}
}

// Lookup returns the deck with the given name.
func (df *DeckFile) Lookup(name string) (DeckEntry, bool) {
	for _, d := range df.Decks {
		if d.Name == name {
			return d, true
		}
	}
	return DeckEntry{}, false
}

// ParseDeckData decodes a YAML deck file from memory. Every entry's hands
// are validated so a bad deal fails at load time, not mid-game.
func ParseDeckData(data []byte) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	for i, d := range df.Decks {
		if err := validateHands(d.Player1, d.Player2); err != nil {
			return nil, fmt.Errorf("deck %d (%s): %w", i+1, d.Name, err)
		}
	}
	return &df, nil
}

// ParseDeckFile parses a YAML deck file.
func ParseDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDeckData(data)
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (DeckEntry, error) {
	df, err := ParseDeckFile(path)
	if err != nil {
		return DeckEntry{}, err
	}
	if n < 1 || n > len(df.Decks) {
		return DeckEntry{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	return df.Decks[n-1], nil
}
