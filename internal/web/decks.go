package web

import (
	"net/http"

	"github.com/peterkuimelis/combat/internal/game"
	combatnet "github.com/peterkuimelis/combat/internal/net"
)

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	if s.decksFile == "" {
		writeJSON(w, http.StatusOK, []combatnet.DeckView{})
		return
	}
	df, err := game.ParseDeckFile(s.decksFile)
	if err != nil {
		http.Error(w, "could not load decks file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, combatnet.BuildDeckViews(df))
}
