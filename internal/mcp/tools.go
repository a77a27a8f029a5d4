package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/combat/internal/game"
	combatnet "github.com/peterkuimelis/combat/internal/net"
)

// decksFile is the path to the decks YAML file, set by main.
var decksFile string

// SetDecksFile sets the path to the decks YAML file.
func SetDecksFile(path string) {
	decksFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(playCombatTool(), handlePlayCombat)
	s.AddTool(playDeckTool(), handlePlayDeck)
	s.AddTool(listDecksTool(), handleListDecks)
	s.AddTool(scoreDeckTool(), handleScoreDeck)
}

// --- Tool definitions ---

func playCombatTool() mcp.Tool {
	return mcp.NewTool("play_combat",
		mcp.WithDescription("Play a game of Combat between two hands and return the winner, the winning deck and its score. "+
			"Variant 'both' plays the simple and the recursive rules on the same deal."),
		mcp.WithString("player1", mcp.Required(), mcp.Description("Player 1's cards, front first, space or comma separated (e.g. '9 2 6 3 1')")),
		mcp.WithString("player2", mcp.Required(), mcp.Description("Player 2's cards, front first, space or comma separated")),
		mcp.WithString("variant", mcp.Description("simple, recursive or both (default both)"), mcp.Enum("simple", "recursive", "both")),
		mcp.WithNumber("max_rounds", mcp.Description("Give up after this many rounds (default 10000000). The simple rules can loop forever on some deals.")),
		mcp.WithString("fingerprint", mcp.Description("Repeat detection key for recursive games: both (default) or first-hand"), mcp.Enum("both", "first-hand")),
	)
}

func playDeckTool() mcp.Tool {
	return mcp.NewTool("play_deck",
		mcp.WithDescription("Play a deal from the server's decks.yaml by number."),
		mcp.WithNumber("deck", mcp.Required(), mcp.Description("Deck number (1-indexed from decks.yaml)")),
		mcp.WithString("variant", mcp.Description("simple, recursive or both (default both)"), mcp.Enum("simple", "recursive", "both")),
		mcp.WithNumber("max_rounds", mcp.Description("Give up after this many rounds (default 10000000)")),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the deals in the server's decks.yaml. Read-only."),
	)
}

func scoreDeckTool() mcp.Tool {
	return mcp.NewTool("score_deck",
		mcp.WithDescription("Score a deck: each card times its position from the bottom (bottom card = 1), summed."),
		mcp.WithString("deck", mcp.Required(), mcp.Description("Cards, front first, space or comma separated")),
	)
}

// --- Tool handlers ---

func handlePlayCombat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p1, err := parseCards(request.GetString("player1", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid player1: %v", err), nil
	}
	p2, err := parseCards(request.GetString("player2", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid player2: %v", err), nil
	}

	return play(ctx, combatnet.ClientMessage{
		Type:        "play",
		Player1:     p1,
		Player2:     p2,
		Variant:     request.GetString("variant", combatnet.VariantBoth),
		MaxRounds:   request.GetInt("max_rounds", 0),
		Fingerprint: request.GetString("fingerprint", ""),
	}), nil
}

func handlePlayDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deck := request.GetInt("deck", 0)
	if deck < 1 {
		return mcp.NewToolResultError("deck must be >= 1"), nil
	}
	return play(ctx, combatnet.ClientMessage{
		Type:       "play",
		DeckNumber: deck,
		Variant:    request.GetString("variant", combatnet.VariantBoth),
		MaxRounds:  request.GetInt("max_rounds", 0),
	}), nil
}

func handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if decksFile == "" {
		return mcp.NewToolResultError("No decks file configured."), nil
	}
	df, err := game.ParseDeckFile(decksFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load decks: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(combatnet.BuildDeckViews(df))), nil
}

func handleScoreDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deck, err := parseCards(request.GetString("deck", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid deck: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(map[string]int{"score": game.Score(deck)})), nil
}

func play(ctx context.Context, msg combatnet.ClientMessage) *mcp.CallToolResult {
	results, err := combatnet.Play(ctx, msg, decksFile, nil)
	if err != nil {
		return mcp.NewToolResultErrorf("Game failed: %v", err)
	}
	return mcp.NewToolResultText(respondJSON(results))
}

// parseCards reads a space- or comma-separated list of integers.
func parseCards(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no cards given")
	}
	cards := make([]int, 0, len(fields))
	for _, f := range fields {
		c, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("card %q is not an integer", f)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
