package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncLeagueJoins()
	IncLeaguesCreated()
	IncScoreEvents()
	IncRolloverRuns()
	IncLeaguesClosed()
	AddPromotions(n int)
	AddDemotions(n int)
	IncSeasonClaims()
	IncClaimRejections()
	IncRewardDispatchFailed()
	ObserveRolloverDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore defines the interface for durable, queryable counters. These
// survive restarts, unlike the in-process Prometheus state, and back the
// /stats endpoint.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
