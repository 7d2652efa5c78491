package http

import (
	"net/http"

	"github.com/pmackar/gamifyit/internal/config"
	"github.com/pmackar/gamifyit/internal/league"
	"github.com/pmackar/gamifyit/internal/metrics"
	"github.com/pmackar/gamifyit/internal/rollover"
	"github.com/pmackar/gamifyit/internal/season"
)

type Server struct {
	Store          league.LeagueStore
	Seasons        *season.Service
	Processor      *rollover.Processor
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
