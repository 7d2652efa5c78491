package rollover

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/pmackar/gamifyit/internal/metrics"
	"github.com/pmackar/gamifyit/internal/pubsub"
)

// New creates a new Processor. The topic receives one WeekClosedEvent per
// finalized league.
func New(store Store, m metrics.Metrics, ps pubsub.PubSubClient, topic string) *Processor {
	return &Processor{
		store:   store,
		pubsub:  ps,
		metrics: m,
		topic:   topic,
	}
}

// Run executes one rollover pass as of now. Each league is finalized
// independently; one failure never blocks the rest, and a re-run picks up
// exactly the leagues that are still open. With dryRun set, nothing is
// written and the summary only reports what would be closed.
func (p *Processor) Run(now time.Time, dryRun bool) (*Summary, error) {
	log.Info("Starting weekly rollover...", "now", now.UTC(), "dryRun", dryRun)
	p.metrics.IncRolloverRuns()
	startTime := time.Now()

	leagues, err := p.store.GetLeaguesDueForClose(now)
	if err != nil {
		log.Error("Failed to get leagues due for close", "error", err)
		return nil, err
	}

	summary := &Summary{Examined: len(leagues), DryRun: dryRun}
	if len(leagues) == 0 {
		log.Info("No leagues due for close.")
		return summary, nil
	}

	log.Info("Found leagues due for close", "count", len(leagues))
	for _, l := range leagues {
		if dryRun {
			log.Info("[DRY RUN] Would finalize league", "leagueID", l.ID, "tier", l.Tier)
			continue
		}

		result, err := p.store.FinalizeLeague(l.ID, now)
		if err != nil {
			log.Error("Failed to finalize league", "error", err, "leagueID", l.ID)
			summary.Failed++
			continue
		}
		if result.AlreadyDone {
			log.Info("League already finalized, skipping", "leagueID", l.ID)
			summary.Skipped++
			continue
		}

		summary.Closed++
		summary.Results = append(summary.Results, result)
		p.metrics.IncLeaguesClosed()
		p.metrics.AddPromotions(result.Promoted)
		p.metrics.AddDemotions(result.Demoted)
		log.Info("Finalized league",
			"leagueID", result.LeagueID,
			"tier", result.Tier,
			"participants", result.Participants,
			"promoted", result.Promoted,
			"demoted", result.Demoted,
		)

		event := WeekClosedEvent{
			LeagueID:     result.LeagueID,
			Tier:         result.Tier.String(),
			Participants: result.Participants,
			Promoted:     result.Promoted,
			Demoted:      result.Demoted,
			ClosedAt:     now.UTC(),
		}
		if err := p.pubsub.SendMessage(p.topic, event); err != nil {
			// The league is closed either way; the event is advisory.
			log.Error("Failed to publish week-closed event", "error", err, "leagueID", result.LeagueID)
		}
	}

	duration := time.Since(startTime).Seconds()
	p.metrics.ObserveRolloverDuration(duration)
	log.Info("Weekly rollover finished.",
		"examined", summary.Examined,
		"closed", summary.Closed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}
