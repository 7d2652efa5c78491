package league

import "errors"

var (
	// ErrLeagueNotFound is returned when a league id does not exist.
	ErrLeagueNotFound = errors.New("league not found")

	// ErrNoMembership is returned by status queries for a user who has not
	// joined this week's league.
	ErrNoMembership = errors.New("no league membership for the current week")

	// ErrNegativeAmount rejects score contributions below zero.
	ErrNegativeAmount = errors.New("score amount must be non-negative")
)
