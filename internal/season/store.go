package season

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pmackar/gamifyit/internal/rewards"
)

// New creates a new SeasonStore.
func New(db *sql.DB) SeasonStore {
	return &store{
		db: db,
	}
}

// CreateSeason inserts a season definition and its per-tier rewards. Used by
// the seeder and tests; the engine itself never authors seasons.
func (s *store) CreateSeason(season *Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if season.ID == "" {
		season.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO seasons (id, name, tier_count, xp_per_tier, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?, ?);
	`, season.ID, season.Name, season.TierCount, season.XPPerTier,
		season.StartsAt.UTC().UnixMilli(), season.EndsAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert season: %w", err)
	}

	for _, tr := range season.Rewards {
		freeJSON, err := marshalReward(tr.Free)
		if err != nil {
			return err
		}
		premiumJSON, err := marshalReward(tr.Premium)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO season_tier_rewards (season_id, tier_number, free_reward_json, premium_reward_json, is_milestone)
			VALUES (?, ?, ?, ?, ?);
		`, season.ID, tr.TierNumber, freeJSON, premiumJSON, tr.IsMilestone)
		if err != nil {
			return fmt.Errorf("failed to insert tier reward %d: %w", tr.TierNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit season: %w", err)
	}
	log.Info("Created season", "seasonID", season.ID, "name", season.Name, "tiers", season.TierCount)
	return nil
}

// GetActiveSeason returns the season whose window contains now, with its
// reward table loaded. When windows overlap, the most recently started one
// wins.
func (s *store) GetActiveSeason(now time.Time) (*Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nowMs := now.UTC().UnixMilli()
	var season Season
	var startsAt, endsAt int64
	err := s.db.QueryRow(`
		SELECT id, name, tier_count, xp_per_tier, starts_at, ends_at
		FROM seasons
		WHERE starts_at <= ? AND ends_at >= ?
		ORDER BY starts_at DESC
		LIMIT 1;
	`, nowMs, nowMs).Scan(&season.ID, &season.Name, &season.TierCount, &season.XPPerTier, &startsAt, &endsAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveSeason
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active season: %w", err)
	}
	season.StartsAt = time.UnixMilli(startsAt).UTC()
	season.EndsAt = time.UnixMilli(endsAt).UTC()

	rows, err := s.db.Query(`
		SELECT tier_number, free_reward_json, premium_reward_json, is_milestone
		FROM season_tier_rewards
		WHERE season_id = ?
		ORDER BY tier_number ASC;
	`, season.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier rewards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr TierReward
		var freeJSON, premiumJSON sql.NullString
		if err := rows.Scan(&tr.TierNumber, &freeJSON, &premiumJSON, &tr.IsMilestone); err != nil {
			return nil, fmt.Errorf("failed to scan tier reward: %w", err)
		}
		if tr.Free, err = unmarshalReward(freeJSON); err != nil {
			return nil, err
		}
		if tr.Premium, err = unmarshalReward(premiumJSON); err != nil {
			return nil, err
		}
		season.Rewards = append(season.Rewards, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tier rewards: %w", err)
	}
	return &season, nil
}

// GetOrCreateProgress is the single get-or-initialize path for a user's
// season accumulator.
func (s *store) GetOrCreateProgress(seasonID, userID string) (*Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO season_progress (season_id, user_id) VALUES (?, ?)
		ON CONFLICT(season_id, user_id) DO NOTHING;
	`, seasonID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize season progress: %w", err)
	}
	return s.getProgress(seasonID, userID)
}

func (s *store) getProgress(seasonID, userID string) (*Progress, error) {
	var p Progress
	err := s.db.QueryRow(`
		SELECT season_id, user_id, season_xp, has_premium
		FROM season_progress WHERE season_id = ? AND user_id = ?;
	`, seasonID, userID).Scan(&p.SeasonID, &p.UserID, &p.SeasonXP, &p.HasPremium)
	if err != nil {
		return nil, fmt.Errorf("failed to read season progress: %w", err)
	}
	return &p, nil
}

// AddXP atomically increments a user's season XP, creating the progress row
// if it does not exist yet. The increment and the get-or-create are one
// statement, so concurrent contributions never lose updates.
func (s *store) AddXP(seasonID, userID string, amount int64) (*Progress, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO season_progress (season_id, user_id, season_xp)
		VALUES (?, ?, ?)
		ON CONFLICT(season_id, user_id) DO UPDATE SET season_xp = season_xp + excluded.season_xp;
	`, seasonID, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add season xp: %w", err)
	}
	return s.getProgress(seasonID, userID)
}

// SetPremium flips the premium entitlement on. Already-premium is a no-op.
func (s *store) SetPremium(seasonID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO season_progress (season_id, user_id, has_premium)
		VALUES (?, ?, 1)
		ON CONFLICT(season_id, user_id) DO UPDATE SET has_premium = 1;
	`, seasonID, userID)
	if err != nil {
		return fmt.Errorf("failed to set premium: %w", err)
	}
	log.Info("Premium pass activated", "seasonID", seasonID, "userID", userID)
	return nil
}

// GetClaims returns the claimed tier numbers per track for a user.
func (s *store) GetClaims(seasonID, userID string) (map[int]bool, map[int]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT tier_number, track FROM season_claims
		WHERE season_id = ? AND user_id = ?;
	`, seasonID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query claims: %w", err)
	}
	defer rows.Close()

	free := make(map[int]bool)
	premium := make(map[int]bool)
	for rows.Next() {
		var tierNumber int
		var track Track
		if err := rows.Scan(&tierNumber, &track); err != nil {
			return nil, nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		switch track {
		case TrackFree:
			free[tierNumber] = true
		case TrackPremium:
			premium[tierNumber] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return free, premium, nil
}

// RecordClaim conditionally inserts a claim row. Returns false when the row
// already existed, which is how a lost claim race surfaces.
func (s *store) RecordClaim(seasonID, userID string, tierNumber int, track Track, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO season_claims (season_id, user_id, tier_number, track, claimed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(season_id, user_id, tier_number, track) DO NOTHING;
	`, seasonID, userID, tierNumber, string(track), now.UTC().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("failed to record claim: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read claim result: %w", err)
	}
	return affected > 0, nil
}

// Clear removes all season data. Test-only escape hatch.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing season store", "error", err)
		return
	}
	for _, table := range []string{"season_claims", "season_progress", "season_tier_rewards", "seasons"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing season store", "error", err)
	}
}

func marshalReward(r *rewards.Descriptor) (any, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward: %w", err)
	}
	return string(b), nil
}

func unmarshalReward(col sql.NullString) (*rewards.Descriptor, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var r rewards.Descriptor
	if err := json.Unmarshal([]byte(col.String), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reward: %w", err)
	}
	return &r, nil
}
