package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	LeagueJoins          prometheus.Counter
	LeaguesCreated       prometheus.Counter
	ScoreEvents          prometheus.Counter
	RolloverRuns         prometheus.Counter
	LeaguesClosed        prometheus.Counter
	Promotions           prometheus.Counter
	Demotions            prometheus.Counter
	SeasonClaims         prometheus.Counter
	ClaimRejections      prometheus.Counter
	RewardDispatchFailed prometheus.Counter
	RolloverDuration     prometheus.Histogram
	StartupTimeSeconds   prometheus.Gauge
}
