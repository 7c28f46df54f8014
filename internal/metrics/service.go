package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_players_registered_total",
			Help: "The total number of players registered.",
		}),
		MatchesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_matches_reported_total",
			Help: "The total number of match results recorded.",
		}),
		ByesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_byes_reported_total",
			Help: "The total number of byes recorded.",
		}),
		PairingsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_pairings_generated_total",
			Help: "The total number of times Swiss pairings were computed.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tournament_view_refresh_duration_seconds",
			Help:    "The duration of a full aggregate view refresh.",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSecond: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tournament_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersRegistered,
		s.MatchesReported,
		s.ByesReported,
		s.PairingsGenerated,
		s.RefreshDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSecond,
	)

	return s
}

func (s *Service) IncPlayersRegistered() {
	s.PlayersRegistered.Inc()
}

func (s *Service) IncMatchesReported() {
	s.MatchesReported.Inc()
}

func (s *Service) IncByesReported() {
	s.ByesReported.Inc()
}

func (s *Service) IncPairingsGenerated() {
	s.PairingsGenerated.Inc()
}

func (s *Service) ObserveRefreshDuration(duration float64) {
	s.RefreshDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSecond.Set(duration)
}
