package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/combat/internal/web"
	"go.uber.org/zap"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	decksFile := flag.String("decks", "decks.yaml", "path to decks YAML file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	srv := web.NewServer(*decksFile, logger)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("combat web UI listening", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))
	if err := srv.ListenAndServe(addr); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
