package league

import "time"

// LeagueStore defines the interface for interacting with the weekly league
// ledgers.
type LeagueStore interface {
	GetOrCreateTierLedger(userID string) (*TierLedger, error)
	EnsureMembership(userID string, now time.Time) (*JoinResult, error)
	AddWeeklyScore(userID string, amount int64, now time.Time) error
	GetLeague(leagueID string) (*League, error)
	GetStandings(leagueID string) (*Standings, error)
	GetUserStatus(userID string, now time.Time) (*Status, error)
	GetLeaguesDueForClose(now time.Time) ([]*League, error)
	FinalizeLeague(leagueID string, now time.Time) (*CloseResult, error)
	Clear()
}
