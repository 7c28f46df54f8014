package http

import (
	"net/http"

	"github.com/mauv0809/swiss-tournament/internal/config"
	"github.com/mauv0809/swiss-tournament/internal/processor"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

func NewServer(store tournament.TournamentStore, processor *processor.Processor, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Processor:      processor,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/count", Chain(s.CountPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.RegisterPlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players", Chain(s.DeletePlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.ReportMatchHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches", Chain(s.DeleteMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /byes", Chain(s.ReportByeHandler(), paramsMiddleware))
	s.Router.Handle("GET /standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("GET /pairings", Chain(s.PairingsHandler(), paramsMiddleware))
	s.Router.Handle("POST /announce/standings", Chain(s.AnnounceStandingsHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/pairings", Chain(s.PairingsPushHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/standings", Chain(s.StandingsPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
