package season

import (
	"database/sql"
	"sync"
	"time"

	"github.com/pmackar/gamifyit/internal/rewards"
)

// store handles all database operations for seasons.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Track is one of the two independent claim tracks.
type Track string

const (
	TrackFree    Track = "free"
	TrackPremium Track = "premium"
)

// Season is a time-boxed XP ladder with discrete reward tiers. Authored
// out-of-band; read-only to the engine.
type Season struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	TierCount int          `json:"tier_count"`
	XPPerTier int64        `json:"xp_per_tier"`
	StartsAt  time.Time    `json:"starts_at"`
	EndsAt    time.Time    `json:"ends_at"`
	Rewards   []TierReward `json:"rewards"`
}

// TierReward is the reward definition for one ladder tier. Premium is nil
// for tiers that only pay out on the free track.
type TierReward struct {
	TierNumber  int                 `json:"tier_number"`
	Free        *rewards.Descriptor `json:"free,omitempty"`
	Premium     *rewards.Descriptor `json:"premium,omitempty"`
	IsMilestone bool                `json:"is_milestone"`
}

// Progress is one user's accumulator for one season. The current tier is
// never stored; it is always derived from SeasonXP on read.
type Progress struct {
	SeasonID   string `json:"season_id"`
	UserID     string `json:"user_id"`
	SeasonXP   int64  `json:"season_xp"`
	HasPremium bool   `json:"has_premium"`
}

// XPResult reports the state after an XP contribution.
type XPResult struct {
	SeasonID    string `json:"season_id"`
	SeasonXP    int64  `json:"season_xp"`
	CurrentTier int    `json:"current_tier"`
}

// TierState is one row of the annotated tier table returned to callers.
type TierState struct {
	TierReward
	Unlocked       bool `json:"unlocked"`
	FreeClaimed    bool `json:"free_claimed"`
	PremiumClaimed bool `json:"premium_claimed"`
}

// ProgressView is the full season picture for one user.
type ProgressView struct {
	Season      *Season     `json:"season"`
	SeasonXP    int64       `json:"season_xp"`
	CurrentTier int         `json:"current_tier"`
	HasPremium  bool        `json:"has_premium"`
	Tiers       []TierState `json:"tiers"`
}

// DeriveTier computes the battle-pass tier reached at the given XP:
// floor(xp / xpPerTier), clamped to [0, tierCount]. Tier 0 means no tier
// reached yet.
func DeriveTier(xp, xpPerTier int64, tierCount int) int {
	if xpPerTier <= 0 || xp <= 0 {
		return 0
	}
	tier := int(xp / xpPerTier)
	if tier > tierCount {
		return tierCount
	}
	return tier
}
