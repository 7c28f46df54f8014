package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	PlayersRegistered prometheus.Counter
	MatchesReported   prometheus.Counter
	ByesReported      prometheus.Counter
	PairingsGenerated prometheus.Counter
	RefreshDuration   prometheus.Histogram
	SlackNotifSent    prometheus.Counter
	SlackNotifFailed  prometheus.Counter
	StartupTimeSecond prometheus.Gauge
}
