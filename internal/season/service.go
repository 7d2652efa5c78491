package season

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pmackar/gamifyit/internal/metrics"
	"github.com/pmackar/gamifyit/internal/rewards"
)

// Service applies the battle-pass business rules on top of the store: XP
// accrual against the active season, tier derivation, claim validation and
// reward dispatch.
type Service struct {
	store      SeasonStore
	dispatcher rewards.Dispatcher
	metrics    metrics.Metrics
}

// NewService creates a season Service.
func NewService(store SeasonStore, dispatcher rewards.Dispatcher, m metrics.Metrics) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		metrics:    m,
	}
}

// AddXP credits XP to the user's accumulator for the active season and
// reports the resulting derived tier. A zero amount is a valid no-op.
func (svc *Service) AddXP(userID string, amount int64, now time.Time) (*XPResult, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	season, err := svc.store.GetActiveSeason(now)
	if err != nil {
		return nil, err
	}
	progress, err := svc.store.AddXP(season.ID, userID, amount)
	if err != nil {
		return nil, err
	}
	return &XPResult{
		SeasonID:    season.ID,
		SeasonXP:    progress.SeasonXP,
		CurrentTier: DeriveTier(progress.SeasonXP, season.XPPerTier, season.TierCount),
	}, nil
}

// GetProgress returns the user's full season picture: XP, derived tier, and
// the reward table annotated with unlock and claim state per track.
func (svc *Service) GetProgress(userID string, now time.Time) (*ProgressView, error) {
	season, err := svc.store.GetActiveSeason(now)
	if err != nil {
		return nil, err
	}
	progress, err := svc.store.GetOrCreateProgress(season.ID, userID)
	if err != nil {
		return nil, err
	}
	freeClaims, premiumClaims, err := svc.store.GetClaims(season.ID, userID)
	if err != nil {
		return nil, err
	}

	currentTier := DeriveTier(progress.SeasonXP, season.XPPerTier, season.TierCount)
	tiers := make([]TierState, 0, len(season.Rewards))
	for _, tr := range season.Rewards {
		tiers = append(tiers, TierState{
			TierReward:     tr,
			Unlocked:       tr.TierNumber <= currentTier,
			FreeClaimed:    freeClaims[tr.TierNumber],
			PremiumClaimed: premiumClaims[tr.TierNumber],
		})
	}
	return &ProgressView{
		Season:      season,
		SeasonXP:    progress.SeasonXP,
		CurrentTier: currentTier,
		HasPremium:  progress.HasPremium,
		Tiers:       tiers,
	}, nil
}

// ActivatePremium grants the premium track for the active season. Rewards on
// already-unlocked tiers become claimable immediately; nothing is
// auto-claimed.
func (svc *Service) ActivatePremium(userID string, now time.Time) error {
	season, err := svc.store.GetActiveSeason(now)
	if err != nil {
		return err
	}
	return svc.store.SetPremium(season.ID, userID)
}

// Claim validates and executes a single tier-reward claim. Validation order:
// unlock, then entitlement, then claim state, then reward presence. The
// dispatch happens before the claim row is written; a crash in between is
// absorbed downstream by the dispatch dedupe key.
func (svc *Service) Claim(userID string, tierNumber int, track Track, now time.Time) (*rewards.Descriptor, error) {
	season, err := svc.store.GetActiveSeason(now)
	if err != nil {
		return nil, err
	}
	progress, err := svc.store.GetOrCreateProgress(season.ID, userID)
	if err != nil {
		return nil, err
	}

	currentTier := DeriveTier(progress.SeasonXP, season.XPPerTier, season.TierCount)
	if tierNumber < 1 || tierNumber > currentTier {
		svc.metrics.IncClaimRejections()
		return nil, ErrNotUnlocked
	}
	if track == TrackPremium && !progress.HasPremium {
		svc.metrics.IncClaimRejections()
		return nil, ErrPremiumRequired
	}

	freeClaims, premiumClaims, err := svc.store.GetClaims(season.ID, userID)
	if err != nil {
		return nil, err
	}
	claimed := freeClaims
	if track == TrackPremium {
		claimed = premiumClaims
	}
	if claimed[tierNumber] {
		svc.metrics.IncClaimRejections()
		return nil, ErrAlreadyClaimed
	}

	reward := rewardFor(season, tierNumber, track)
	if reward == nil {
		svc.metrics.IncClaimRejections()
		return nil, ErrNoReward
	}

	source := fmt.Sprintf("season:%s:tier:%d:%s", season.ID, tierNumber, track)
	if err := svc.dispatcher.Dispatch(userID, source, *reward); err != nil {
		svc.metrics.IncRewardDispatchFailed()
		return nil, fmt.Errorf("failed to dispatch tier reward: %w", err)
	}

	inserted, err := svc.store.RecordClaim(season.ID, userID, tierNumber, track, now)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost a claim race after dispatching. The dedupe key makes the
		// duplicate dispatch harmless.
		svc.metrics.IncClaimRejections()
		return nil, ErrAlreadyClaimed
	}

	svc.metrics.IncSeasonClaims()
	log.Info("Claimed season reward", "userID", userID, "seasonID", season.ID, "tier", tierNumber, "track", track)
	return reward, nil
}

func rewardFor(season *Season, tierNumber int, track Track) *rewards.Descriptor {
	for _, tr := range season.Rewards {
		if tr.TierNumber != tierNumber {
			continue
		}
		if track == TrackPremium {
			return tr.Premium
		}
		return tr.Free
	}
	return nil
}
