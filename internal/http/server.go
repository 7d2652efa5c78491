package http

import (
	"net/http"

	"github.com/pmackar/gamifyit/internal/config"
	"github.com/pmackar/gamifyit/internal/league"
	"github.com/pmackar/gamifyit/internal/metrics"
	"github.com/pmackar/gamifyit/internal/rollover"
	"github.com/pmackar/gamifyit/internal/season"
)

func NewServer(store league.LeagueStore, seasons *season.Service, processor *rollover.Processor, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Seasons:        seasons,
		Processor:      processor,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/league/join", Chain(s.JoinLeagueHandler(), paramsMiddleware))
	s.Router.Handle("/league/score", Chain(s.AddScoreHandler(), paramsMiddleware))
	s.Router.Handle("/league/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/league/status", Chain(s.LeagueStatusHandler(), paramsMiddleware))
	s.Router.Handle("/rollover", Chain(s.RolloverHandler(), paramsMiddleware))
	s.Router.Handle("/season/xp", Chain(s.SeasonXPHandler(), paramsMiddleware))
	s.Router.Handle("/season/progress", Chain(s.SeasonProgressHandler(), paramsMiddleware))
	s.Router.Handle("/season/claim", Chain(s.ClaimRewardHandler(), paramsMiddleware))
	s.Router.Handle("/season/premium", Chain(s.PremiumHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
