package rollover

import (
	"time"

	"github.com/pmackar/gamifyit/internal/league"
	"github.com/pmackar/gamifyit/internal/metrics"
	"github.com/pmackar/gamifyit/internal/pubsub"
)

// Processor drives the weekly league rollover: it finds expired leagues,
// finalizes each one, and announces the results downstream.
type Processor struct {
	store   Store
	pubsub  pubsub.PubSubClient
	metrics metrics.Metrics
	topic   string
}

// Summary reports one rollover pass. A pass that finds nothing to do is a
// valid, empty summary.
type Summary struct {
	Examined int                   `json:"examined"`
	Closed   int                   `json:"closed"`
	Skipped  int                   `json:"skipped"`
	Failed   int                   `json:"failed"`
	DryRun   bool                  `json:"dry_run"`
	Results  []*league.CloseResult `json:"results,omitempty"`
}

// WeekClosedEvent is published per finalized league for downstream consumers
// (notifications, analytics). Delivery is at-least-once.
type WeekClosedEvent struct {
	LeagueID     string    `msgpack:"league_id"`
	Tier         string    `msgpack:"tier"`
	Participants int       `msgpack:"participants"`
	Promoted     int       `msgpack:"promoted"`
	Demoted      int       `msgpack:"demoted"`
	ClosedAt     time.Time `msgpack:"closed_at"`
}
