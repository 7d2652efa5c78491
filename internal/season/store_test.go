package season_test

import (
	"testing"
	"time"

	"github.com/pmackar/gamifyit/internal/database"
	"github.com/pmackar/gamifyit/internal/rewards"
	"github.com/pmackar/gamifyit/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (season.SeasonStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return season.New(db), dbTeardown
}

var midSeason = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testSeason() *season.Season {
	return &season.Season{
		ID:        "s1",
		Name:      "Summer Circuit",
		TierCount: 3,
		XPPerTier: 100,
		StartsAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC),
		Rewards: []season.TierReward{
			{
				TierNumber: 1,
				Free:       &rewards.Descriptor{Type: rewards.TypeXP, Code: "xp-small", Amount: 50},
				Premium:    &rewards.Descriptor{Type: rewards.TypeItem, Code: "booster", Amount: 1},
			},
			{
				TierNumber: 2,
				Free:       &rewards.Descriptor{Type: rewards.TypeItem, Code: "sticker", Amount: 1},
			},
			{
				TierNumber:  3,
				Premium:     &rewards.Descriptor{Type: rewards.TypeCosmetic, Code: "golden-frame", Amount: 1},
				IsMilestone: true,
			},
		},
	}
}

func TestGetActiveSeason(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := store.GetActiveSeason(midSeason)
	assert.ErrorIs(t, err, season.ErrNoActiveSeason)

	require.NoError(t, store.CreateSeason(testSeason()))

	s, err := store.GetActiveSeason(midSeason)
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 3, s.TierCount)
	assert.Equal(t, int64(100), s.XPPerTier)
	require.Len(t, s.Rewards, 3)
	assert.Equal(t, "xp-small", s.Rewards[0].Free.Code)
	assert.Equal(t, "booster", s.Rewards[0].Premium.Code)
	assert.Nil(t, s.Rewards[1].Premium)
	assert.Nil(t, s.Rewards[2].Free)
	assert.True(t, s.Rewards[2].IsMilestone)

	// Outside the window there is no active season.
	_, err = store.GetActiveSeason(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, season.ErrNoActiveSeason)
}

func TestGetActiveSeason_OverlapPrefersNewest(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.CreateSeason(testSeason()))
	s2 := testSeason()
	s2.ID = "s2"
	s2.Name = "Mid-Summer Event"
	s2.StartsAt = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateSeason(s2))

	active, err := store.GetActiveSeason(midSeason)
	require.NoError(t, err)
	assert.Equal(t, "s2", active.ID)
}

func TestAddXP_Accumulates(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	require.NoError(t, store.CreateSeason(testSeason()))

	p, err := store.AddXP("s1", "u1", 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), p.SeasonXP)

	p, err = store.AddXP("s1", "u1", 70)
	require.NoError(t, err)
	assert.Equal(t, int64(110), p.SeasonXP)

	// Zero amount is a valid no-op.
	p, err = store.AddXP("s1", "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(110), p.SeasonXP)

	_, err = store.AddXP("s1", "u1", -5)
	assert.ErrorIs(t, err, season.ErrNegativeAmount)
}

func TestSetPremium(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	require.NoError(t, store.CreateSeason(testSeason()))

	// Works before any progress row exists.
	require.NoError(t, store.SetPremium("s1", "u1"))

	p, err := store.GetOrCreateProgress("s1", "u1")
	require.NoError(t, err)
	assert.True(t, p.HasPremium)
	assert.Equal(t, int64(0), p.SeasonXP)

	// Idempotent, and XP survives.
	_, err = store.AddXP("s1", "u1", 25)
	require.NoError(t, err)
	require.NoError(t, store.SetPremium("s1", "u1"))
	p, err = store.GetOrCreateProgress("s1", "u1")
	require.NoError(t, err)
	assert.True(t, p.HasPremium)
	assert.Equal(t, int64(25), p.SeasonXP)
}

func TestRecordClaim_ConditionalInsert(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	require.NoError(t, store.CreateSeason(testSeason()))

	inserted, err := store.RecordClaim("s1", "u1", 1, season.TrackFree, midSeason)
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same tier, same track: rejected.
	inserted, err = store.RecordClaim("s1", "u1", 1, season.TrackFree, midSeason)
	require.NoError(t, err)
	assert.False(t, inserted)

	// Same tier, other track: independent.
	inserted, err = store.RecordClaim("s1", "u1", 1, season.TrackPremium, midSeason)
	require.NoError(t, err)
	assert.True(t, inserted)

	free, premium, err := store.GetClaims("s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true}, free)
	assert.Equal(t, map[int]bool{1: true}, premium)

	// Another user's claims are separate.
	free, premium, err = store.GetClaims("s1", "u2")
	require.NoError(t, err)
	assert.Empty(t, free)
	assert.Empty(t, premium)
}

func TestDeriveTier(t *testing.T) {
	testCases := []struct {
		name      string
		xp        int64
		xpPerTier int64
		tierCount int
		expected  int
	}{
		{"zero xp", 0, 100, 10, 0},
		{"just under first tier", 99, 100, 10, 0},
		{"exactly first tier", 100, 100, 10, 1},
		{"partial second tier", 250, 100, 10, 2},
		{"clamped at tier count", 5000, 100, 10, 10},
		{"exactly last tier", 1000, 100, 10, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, season.DeriveTier(tc.xp, tc.xpPerTier, tc.tierCount))
		})
	}
}
