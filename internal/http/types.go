package http

import (
	"net/http"

	"github.com/mauv0809/swiss-tournament/internal/config"
	"github.com/mauv0809/swiss-tournament/internal/processor"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

type Server struct {
	Store          tournament.TournamentStore
	Processor      *processor.Processor
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

type registerPlayerRequest struct {
	Name string `json:"name"`
}

type registerPlayerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type reportMatchRequest struct {
	Winner int64 `json:"winner"`
	Loser  int64 `json:"loser"`
}

type reportByeRequest struct {
	PlayerID int64 `json:"player_id"`
}

type countResponse struct {
	Count int `json:"count"`
}

type announceResponse struct {
	EventID string `json:"event_id"`
}
