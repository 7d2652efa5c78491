package league

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pmackar/gamifyit/internal/clock"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// GetOrCreateTierLedger is the single get-or-initialize path for a user's
// competitive record. New users start at the bottom tier with zeroed counters.
func (s *store) GetOrCreateTierLedger(userID string) (*TierLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getOrCreateTierLedger(s.db, userID, time.Now())
}

type execQuerier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func getOrCreateTierLedger(q execQuerier, userID string, now time.Time) (*TierLedger, error) {
	_, err := q.Exec(`
		INSERT INTO tier_ledgers (user_id, created_at) VALUES (?, ?)
		ON CONFLICT(user_id) DO NOTHING;
	`, userID, now.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tier ledger: %w", err)
	}

	var ledger TierLedger
	err = q.QueryRow(`
		SELECT user_id, current_tier, highest_tier, weeks_participated, total_promotions, top3_finishes, first_place_wins
		FROM tier_ledgers WHERE user_id = ?
	`, userID).Scan(
		&ledger.UserID,
		&ledger.CurrentTier,
		&ledger.HighestTier,
		&ledger.WeeksParticipated,
		&ledger.TotalPromotions,
		&ledger.Top3Finishes,
		&ledger.FirstPlaceWins,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier ledger: %w", err)
	}
	return &ledger, nil
}

// EnsureMembership places the user into a league for the current week at
// their current tier. It is idempotent: a user who already holds a seat this
// week gets it back unchanged, including when two requests race on the
// (user_id, week_start) unique index.
func (s *store) EnsureMembership(userID string, now time.Time) (*JoinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	weekStart, weekEnd := clock.CurrentWeekWindow(now)

	ledger, err := getOrCreateTierLedger(s.db, userID, now)
	if err != nil {
		return nil, err
	}

	// Common case: the user already joined this week, at any league of any tier.
	if result, err := s.findMembership(userID, weekStart); err != nil {
		return nil, err
	} else if result != nil {
		return result, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin join transaction: %w", err)
	}
	defer tx.Rollback()

	// Prefer the oldest open league with a free slot. The count check is
	// advisory: two concurrent joiners may both pass it and briefly overflow
	// capacity, which we accept over aborting a join.
	var leagueID string
	err = tx.QueryRow(`
		SELECT l.id FROM leagues l
		WHERE l.tier = ? AND l.week_start = ? AND l.closed = 0
		  AND (SELECT COUNT(*) FROM league_memberships m WHERE m.league_id = l.id) < ?
		ORDER BY l.created_at ASC
		LIMIT 1
	`, ledger.CurrentTier, weekStart.UnixMilli(), Capacity).Scan(&leagueID)
	if err == sql.ErrNoRows {
		leagueID = uuid.New().String()
		_, err = tx.Exec(`
			INSERT INTO leagues (id, tier, week_start, week_end, closed, created_at)
			VALUES (?, ?, ?, ?, 0, ?)
		`, leagueID, ledger.CurrentTier, weekStart.UnixMilli(), weekEnd.UnixMilli(), now.UTC().UnixMilli())
		if err != nil {
			return nil, fmt.Errorf("failed to create league: %w", err)
		}
		log.Info("Created new league", "leagueID", leagueID, "tier", ledger.CurrentTier, "weekStart", weekStart)
	} else if err != nil {
		return nil, fmt.Errorf("failed to find open league: %w", err)
	}

	res, err := tx.Exec(`
		INSERT INTO league_memberships (league_id, user_id, week_start, weekly_score, joined_at)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(user_id, week_start) DO NOTHING;
	`, leagueID, userID, weekStart.UnixMilli(), now.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the duplicate-join race: another request won the unique index.
		// Absorb by returning the winner's seat.
		tx.Rollback()
		result, err := s.findMembership(userID, weekStart)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("membership conflict for user %s but no row found", userID)
		}
		return result, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit join: %w", err)
	}

	log.Info("User joined league", "userID", userID, "leagueID", leagueID, "tier", ledger.CurrentTier)
	return &JoinResult{LeagueID: leagueID, Tier: ledger.CurrentTier, IsNewlyJoined: true}, nil
}

// findMembership returns the user's seat for the given week, or nil.
func (s *store) findMembership(userID string, weekStart time.Time) (*JoinResult, error) {
	var result JoinResult
	err := s.db.QueryRow(`
		SELECT m.league_id, l.tier FROM league_memberships m
		JOIN leagues l ON l.id = m.league_id
		WHERE m.user_id = ? AND m.week_start = ?
	`, userID, weekStart.UnixMilli()).Scan(&result.LeagueID, &result.Tier)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	return &result, nil
}

// AddWeeklyScore atomically increments the user's weekly score for the
// current week. Score without membership is meaningless, so a missing or
// already-closed membership makes this a no-op rather than an implicit join.
func (s *store) AddWeeklyScore(userID string, amount int64, now time.Time) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	weekStart, _ := clock.CurrentWeekWindow(now)
	res, err := s.db.Exec(`
		UPDATE league_memberships
		SET weekly_score = weekly_score + ?
		WHERE user_id = ? AND week_start = ?
		  AND league_id IN (SELECT id FROM leagues WHERE closed = 0)
	`, amount, userID, weekStart.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to add weekly score: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		log.Debug("No open membership for score contribution, skipping", "userID", userID, "amount", amount)
	}
	return nil
}

// GetLeague returns a league with its derived member count.
func (s *store) GetLeague(leagueID string) (*League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLeague(s.db, leagueID)
}

func (s *store) getLeague(q execQuerier, leagueID string) (*League, error) {
	var l League
	var weekStart, weekEnd int64
	var closed int
	err := q.QueryRow(`
		SELECT l.id, l.tier, l.week_start, l.week_end, l.closed,
		       (SELECT COUNT(*) FROM league_memberships m WHERE m.league_id = l.id)
		FROM leagues l WHERE l.id = ?
	`, leagueID).Scan(&l.ID, &l.Tier, &weekStart, &weekEnd, &closed, &l.MemberCount)
	if err == sql.ErrNoRows {
		return nil, ErrLeagueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	l.WeekStart = time.UnixMilli(weekStart).UTC()
	l.WeekEnd = time.UnixMilli(weekEnd).UTC()
	l.Closed = closed != 0
	return &l, nil
}

func (s *store) getMembers(q execQuerier, leagueID string) ([]Membership, error) {
	rows, err := q.Query(`
		SELECT league_id, user_id, weekly_score, joined_at, transitioned
		FROM league_memberships WHERE league_id = ?
	`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []Membership
	for rows.Next() {
		var m Membership
		var joinedAt int64
		var transitioned int
		if err := rows.Scan(&m.LeagueID, &m.UserID, &m.WeeklyScore, &joinedAt, &transitioned); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.JoinedAt = time.UnixMilli(joinedAt).UTC()
		m.Transitioned = transitioned != 0
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetStandings is the read-side projection: rank and zone for every member,
// computed from current scores. It mutates nothing.
func (s *store) GetStandings(leagueID string) (*Standings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, err := s.getLeague(s.db, leagueID)
	if err != nil {
		return nil, err
	}
	members, err := s.getMembers(s.db, leagueID)
	if err != nil {
		return nil, err
	}
	return &Standings{League: l, Entries: ComputeStandings(l, members)}, nil
}

// GetUserStatus returns the user's current-week league picture plus lifetime
// stats. Returns ErrNoMembership when the user has not joined this week.
func (s *store) GetUserStatus(userID string, now time.Time) (*Status, error) {
	weekStart, _ := clock.CurrentWeekWindow(now)
	s.mu.RLock()
	membership, err := s.findMembership(userID, weekStart)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	ledger, err := s.GetOrCreateTierLedger(userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrNoMembership
	}

	standings, err := s.GetStandings(membership.LeagueID)
	if err != nil {
		return nil, err
	}

	status := &Status{
		LeagueID:      membership.LeagueID,
		Tier:          standings.League.Tier,
		MemberCount:   standings.League.MemberCount,
		TimeRemaining: clock.TimeUntilWeekEnd(now),
		Ledger:        *ledger,
	}
	for _, entry := range standings.Entries {
		if entry.UserID == userID {
			status.Rank = entry.Rank
			status.Zone = entry.Zone
			status.WeeklyScore = entry.WeeklyScore
			break
		}
	}
	return status, nil
}

// GetLeaguesDueForClose returns all open leagues whose week has fully elapsed.
func (s *store) GetLeaguesDueForClose(now time.Time) ([]*League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id FROM leagues WHERE closed = 0 AND week_end < ? ORDER BY week_end ASC
	`, now.UTC().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues due for close: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var leagues []*League
	for _, id := range ids {
		l, err := s.getLeague(s.db, id)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

// FinalizeLeague closes out one league's week as a single transaction:
// freeze standings, apply promotions/demotions and lifetime counters to the
// tier ledgers, mark each member transitioned, and flip the closed flag.
//
// Running it twice is safe: the closed flag is the idempotence barrier, and
// the per-member transitioned marker lets a crashed pass resume without
// double-applying transitions.
func (s *store) FinalizeLeague(leagueID string, now time.Time) (*CloseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin rollover transaction: %w", err)
	}
	defer tx.Rollback()

	l, err := s.getLeague(tx, leagueID)
	if err != nil {
		return nil, err
	}
	if l.Closed {
		log.Debug("League already closed, skipping", "leagueID", leagueID)
		return &CloseResult{LeagueID: leagueID, Tier: l.Tier, AlreadyDone: true}, nil
	}

	members, err := s.getMembers(tx, leagueID)
	if err != nil {
		return nil, err
	}
	transitioned := make(map[string]bool, len(members))
	for _, m := range members {
		transitioned[m.UserID] = m.Transitioned
	}

	entries := ComputeStandings(l, members)
	result := &CloseResult{LeagueID: leagueID, Tier: l.Tier, Participants: len(entries)}

	for _, entry := range entries {
		if transitioned[entry.UserID] {
			// Applied by a previous, interrupted pass.
			continue
		}

		ledger, err := getOrCreateTierLedger(tx, entry.UserID, now)
		if err != nil {
			return nil, err
		}

		post := ledger.CurrentTier
		switch entry.Zone {
		case ZonePromotion:
			post = ledger.CurrentTier.Next()
			ledger.TotalPromotions++
			result.Promoted++
		case ZoneDemotion:
			post = ledger.CurrentTier.Prev()
			result.Demoted++
		}

		ledger.WeeksParticipated++
		if entry.Rank <= 3 {
			ledger.Top3Finishes++
		}
		if entry.Rank == 1 {
			ledger.FirstPlaceWins++
		}
		if post > ledger.HighestTier {
			ledger.HighestTier = post
		}

		_, err = tx.Exec(`
			UPDATE tier_ledgers
			SET current_tier = ?, highest_tier = ?, weeks_participated = ?,
			    total_promotions = ?, top3_finishes = ?, first_place_wins = ?
			WHERE user_id = ?
		`, post, ledger.HighestTier, ledger.WeeksParticipated,
			ledger.TotalPromotions, ledger.Top3Finishes, ledger.FirstPlaceWins, entry.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to apply tier transition for %s: %w", entry.UserID, err)
		}

		_, err = tx.Exec(`
			UPDATE league_memberships SET transitioned = 1 WHERE league_id = ? AND user_id = ?
		`, leagueID, entry.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to mark member transitioned: %w", err)
		}
	}

	res, err := tx.Exec(`UPDATE leagues SET closed = 1 WHERE id = ? AND closed = 0`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to close league: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// A concurrent rollover run won the barrier; its transitions stand.
		return &CloseResult{LeagueID: leagueID, Tier: l.Tier, AlreadyDone: true}, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rollover: %w", err)
	}
	log.Info("Closed league week", "leagueID", leagueID, "tier", l.Tier,
		"participants", result.Participants, "promoted", result.Promoted, "demoted", result.Demoted)
	return result, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing league store", "error", err)
		return
	}
	for _, table := range []string{"league_memberships", "leagues", "tier_ledgers"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing league store", "error", err)
	}
}
