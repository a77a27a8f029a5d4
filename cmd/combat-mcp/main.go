package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	combatmcp "github.com/peterkuimelis/combat/internal/mcp"
)

func main() {
	decks := flag.String("decks", "decks.yaml", "path to decks YAML file")
	flag.Parse()

	combatmcp.SetDecksFile(*decks)

	s := server.NewMCPServer("combat", "1.0.0")
	combatmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
