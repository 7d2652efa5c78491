package rollover

import (
	"time"

	"github.com/pmackar/gamifyit/internal/league"
)

// Store defines the database operations required by the rollover processor.
type Store interface {
	GetLeaguesDueForClose(now time.Time) ([]*league.League, error)
	FinalizeLeague(leagueID string, now time.Time) (*league.CloseResult, error)
}
