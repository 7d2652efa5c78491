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
		LeagueJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_league_joins_total",
			Help: "The total number of new weekly league memberships created.",
		}),
		LeaguesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_leagues_created_total",
			Help: "The total number of league cohorts opened.",
		}),
		ScoreEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_score_events_total",
			Help: "The total number of weekly score contributions applied.",
		}),
		RolloverRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_rollover_runs_total",
			Help: "The total number of times the weekly rollover has run.",
		}),
		LeaguesClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_leagues_closed_total",
			Help: "The total number of leagues finalized by the rollover.",
		}),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_promotions_total",
			Help: "The total number of tier promotions applied.",
		}),
		Demotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_demotions_total",
			Help: "The total number of tier demotions applied.",
		}),
		SeasonClaims: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_season_claims_total",
			Help: "The total number of season tier rewards claimed.",
		}),
		ClaimRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_season_claim_rejections_total",
			Help: "The total number of season claims rejected by business rules.",
		}),
		RewardDispatchFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamify_reward_dispatch_failures_total",
			Help: "The total number of reward dispatches that failed to publish.",
		}),
		RolloverDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamify_rollover_duration_seconds",
			Help:    "The duration of a full weekly rollover pass.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gamify_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.LeagueJoins,
		s.LeaguesCreated,
		s.ScoreEvents,
		s.RolloverRuns,
		s.LeaguesClosed,
		s.Promotions,
		s.Demotions,
		s.SeasonClaims,
		s.ClaimRejections,
		s.RewardDispatchFailed,
		s.RolloverDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncLeagueJoins() {
	s.LeagueJoins.Inc()
}

func (s *Service) IncLeaguesCreated() {
	s.LeaguesCreated.Inc()
}

func (s *Service) IncScoreEvents() {
	s.ScoreEvents.Inc()
}

func (s *Service) IncRolloverRuns() {
	s.RolloverRuns.Inc()
}

func (s *Service) IncLeaguesClosed() {
	s.LeaguesClosed.Inc()
}

func (s *Service) AddPromotions(n int) {
	s.Promotions.Add(float64(n))
}

func (s *Service) AddDemotions(n int) {
	s.Demotions.Add(float64(n))
}

func (s *Service) IncSeasonClaims() {
	s.SeasonClaims.Inc()
}

func (s *Service) IncClaimRejections() {
	s.ClaimRejections.Inc()
}

func (s *Service) IncRewardDispatchFailed() {
	s.RewardDispatchFailed.Inc()
}

func (s *Service) ObserveRolloverDuration(duration float64) {
	s.RolloverDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
