// Package clock maps wall-clock time to the competitive time windows the
// progression engine runs on. Everything here is pure; windows are anchored
// to UTC.
package clock

import "time"

// CurrentWeekWindow returns the weekly window containing now: the most recent
// Monday at 00:00:00 UTC through the following Sunday at 23:59:59.999 UTC.
func CurrentWeekWindow(now time.Time) (weekStart, weekEnd time.Time) {
	now = now.UTC()

	// time.Weekday counts Sunday as 0; shift so Monday is day 0.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7

	y, m, d := now.AddDate(0, 0, -daysSinceMonday).Date()
	weekStart = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	weekEnd = weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)
	return weekStart, weekEnd
}

// TimeUntilWeekEnd returns the duration left in the current weekly window,
// clamped to zero at or after the boundary.
func TimeUntilWeekEnd(now time.Time) time.Duration {
	_, weekEnd := CurrentWeekWindow(now)
	remaining := weekEnd.Sub(now.UTC())
	if remaining < 0 {
		return 0
	}
	return remaining
}
