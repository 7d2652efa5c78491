package season

import "errors"

// Claim-path business-rule violations. All are terminal and non-retryable;
// callers need to tell them apart for user-facing messaging.
var (
	ErrNoActiveSeason  = errors.New("no active season")
	ErrNotUnlocked     = errors.New("tier not unlocked yet")
	ErrPremiumRequired = errors.New("premium pass required")
	ErrAlreadyClaimed  = errors.New("tier reward already claimed")
	ErrNoReward        = errors.New("no reward defined for tier/track")
	ErrNegativeAmount  = errors.New("xp amount must be non-negative")
)
