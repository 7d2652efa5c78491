package season

import "time"

// SeasonStore defines the storage operations for seasons, progress and
// claims. The claim business rules live in Service, not here.
type SeasonStore interface {
	CreateSeason(s *Season) error
	GetActiveSeason(now time.Time) (*Season, error)
	GetOrCreateProgress(seasonID, userID string) (*Progress, error)
	AddXP(seasonID, userID string, amount int64) (*Progress, error)
	SetPremium(seasonID, userID string) error
	GetClaims(seasonID, userID string) (map[int]bool, map[int]bool, error)
	RecordClaim(seasonID, userID string, tierNumber int, track Track, now time.Time) (bool, error)
	Clear()
}
