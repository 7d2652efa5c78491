package league

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the weekly leagues.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Tier is one of the seven ordered competitive ranks.
type Tier int

const (
	TierBronze Tier = iota
	TierSilver
	TierGold
	TierPlatinum
	TierDiamond
	TierMaster
	TierLegend

	TierCount = 7
)

var tierNames = [TierCount]string{"BRONZE", "SILVER", "GOLD", "PLATINUM", "DIAMOND", "MASTER", "LEGEND"}

func (t Tier) String() string {
	if t < 0 || int(t) >= TierCount {
		return "UNKNOWN"
	}
	return tierNames[t]
}

// Next returns the next-higher tier, clamped at the top.
func (t Tier) Next() Tier {
	if t >= TierLegend {
		return TierLegend
	}
	return t + 1
}

// Prev returns the next-lower tier, clamped at the bottom.
func (t Tier) Prev() Tier {
	if t <= TierBronze {
		return TierBronze
	}
	return t - 1
}

const (
	// Capacity is advisory for matchmaking decisions, not a hard ceiling:
	// concurrent joiners may briefly overflow it.
	Capacity = 30

	// PromotionCount ranks at the top of a league promote; DemotionCount at
	// the bottom demote.
	PromotionCount = 10
	DemotionCount  = 5
)

// Zone is the standings classification computed from rank.
type Zone string

const (
	ZonePromotion Zone = "promotion"
	ZoneSafe      Zone = "safe"
	ZoneDemotion  Zone = "demotion"
)

// League is a capacity-bounded weekly cohort at one tier. Never deleted;
// closed leagues are retained for history.
type League struct {
	ID          string    `json:"id"`
	Tier        Tier      `json:"tier"`
	WeekStart   time.Time `json:"week_start"`
	WeekEnd     time.Time `json:"week_end"`
	Closed      bool      `json:"closed"`
	MemberCount int       `json:"member_count"`
}

// Membership is one user's seat in a league for one week.
type Membership struct {
	LeagueID     string    `json:"league_id"`
	UserID       string    `json:"user_id"`
	WeeklyScore  int64     `json:"weekly_score"`
	JoinedAt     time.Time `json:"joined_at"`
	Transitioned bool      `json:"-"`
}

// TierLedger is a user's durable competitive record. Mutated exclusively by
// the rollover process.
type TierLedger struct {
	UserID            string `json:"user_id"`
	CurrentTier       Tier   `json:"current_tier"`
	HighestTier       Tier   `json:"highest_tier"`
	WeeksParticipated int    `json:"weeks_participated"`
	TotalPromotions   int    `json:"total_promotions"`
	Top3Finishes      int    `json:"top3_finishes"`
	FirstPlaceWins    int    `json:"first_place_wins"`
}

// JoinResult is the outcome of EnsureMembership.
type JoinResult struct {
	LeagueID      string `json:"league_id"`
	Tier          Tier   `json:"tier"`
	IsNewlyJoined bool   `json:"is_newly_joined"`
}

// StandingEntry is one ranked row of a league's standings.
type StandingEntry struct {
	UserID      string    `json:"user_id"`
	WeeklyScore int64     `json:"weekly_score"`
	JoinedAt    time.Time `json:"joined_at"`
	Rank        int       `json:"rank"`
	Zone        Zone      `json:"zone"`
}

// Standings is the ranked view of a league at a point in time.
type Standings struct {
	League  *League         `json:"league"`
	Entries []StandingEntry `json:"entries"`
}

// Status is the full league picture for one user: current seat, rank and
// zone, lifetime stats, and time left in the window.
type Status struct {
	LeagueID      string        `json:"league_id"`
	Tier          Tier          `json:"tier"`
	Rank          int           `json:"rank"`
	Zone          Zone          `json:"zone"`
	WeeklyScore   int64         `json:"weekly_score"`
	MemberCount   int           `json:"member_count"`
	TimeRemaining time.Duration `json:"time_remaining"`
	Ledger        TierLedger    `json:"ledger"`
}

// CloseResult summarizes one league's rollover pass.
type CloseResult struct {
	LeagueID     string `json:"league_id"`
	Tier         Tier   `json:"tier"`
	Participants int    `json:"participants"`
	Promoted     int    `json:"promoted"`
	Demoted      int    `json:"demoted"`
	AlreadyDone  bool   `json:"already_done"`
}
