package season_test

import (
	"errors"
	"testing"

	"github.com/pmackar/gamifyit/internal/database"
	"github.com/pmackar/gamifyit/internal/metrics"
	"github.com/pmackar/gamifyit/internal/rewards"
	"github.com/pmackar/gamifyit/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) (*season.Service, *rewards.MockDispatcher, *metrics.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := season.New(db)
	require.NoError(t, store.CreateSeason(testSeason()))

	dispatcher := rewards.NewMock()
	m := metrics.NewMock()
	svc := season.NewService(store, dispatcher, m)
	return svc, dispatcher, m, dbTeardown
}

func TestAddXP_DerivesTier(t *testing.T) {
	svc, _, _, teardown := setupTestService(t)
	defer teardown()

	// 250 XP at 100 per tier lands the user on tier 2.
	result, err := svc.AddXP("u1", 250, midSeason)
	require.NoError(t, err)
	assert.Equal(t, "s1", result.SeasonID)
	assert.Equal(t, int64(250), result.SeasonXP)
	assert.Equal(t, 2, result.CurrentTier)

	view, err := svc.GetProgress("u1", midSeason)
	require.NoError(t, err)
	assert.Equal(t, 2, view.CurrentTier)
	require.Len(t, view.Tiers, 3)
	assert.True(t, view.Tiers[0].Unlocked)
	assert.True(t, view.Tiers[1].Unlocked)
	assert.False(t, view.Tiers[2].Unlocked)
}

func TestAddXP_NoActiveSeason(t *testing.T) {
	svc, _, _, teardown := setupTestService(t)
	defer teardown()

	outside := midSeason.AddDate(1, 0, 0)
	_, err := svc.AddXP("u1", 10, outside)
	assert.ErrorIs(t, err, season.ErrNoActiveSeason)
}

func TestClaim_FreeTrack(t *testing.T) {
	svc, dispatcher, m, teardown := setupTestService(t)
	defer teardown()

	_, err := svc.AddXP("u1", 250, midSeason)
	require.NoError(t, err)

	reward, err := svc.Claim("u1", 1, season.TrackFree, midSeason)
	require.NoError(t, err)
	assert.Equal(t, "xp-small", reward.Code)

	calls := dispatcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "u1", calls[0].UserID)
	assert.Equal(t, "season:s1:tier:1:free", calls[0].Source)
	assert.Equal(t, 1, m.SeasonClaims())

	view, err := svc.GetProgress("u1", midSeason)
	require.NoError(t, err)
	assert.True(t, view.Tiers[0].FreeClaimed)
	assert.False(t, view.Tiers[0].PremiumClaimed)
}

func TestClaim_AlreadyClaimed_DispatchesOnce(t *testing.T) {
	svc, dispatcher, m, teardown := setupTestService(t)
	defer teardown()

	_, err := svc.AddXP("u1", 250, midSeason)
	require.NoError(t, err)

	_, err = svc.Claim("u1", 1, season.TrackFree, midSeason)
	require.NoError(t, err)

	_, err = svc.Claim("u1", 1, season.TrackFree, midSeason)
	assert.ErrorIs(t, err, season.ErrAlreadyClaimed)

	// The second attempt is rejected before any dispatch happens.
	assert.Len(t, dispatcher.Calls(), 1)
	assert.Equal(t, 1, m.SeasonClaims())
	assert.Equal(t, 1, m.ClaimRejections())
}

func TestClaim_NotUnlocked(t *testing.T) {
	svc, dispatcher, _, teardown := setupTestService(t)
	defer teardown()

	_, err := svc.AddXP("u1", 250, midSeason)
	require.NoError(t, err)

	_, err = svc.Claim("u1", 3, season.TrackFree, midSeason)
	assert.ErrorIs(t, err, season.ErrNotUnlocked)

	// Tier numbers start at 1.
	_, err = svc.Claim("u1", 0, season.TrackFree, midSeason)
	assert.ErrorIs(t, err, season.ErrNotUnlocked)

	assert.Empty(t, dispatcher.Calls())
}

func TestClaim_PremiumRequired(t *testing.T) {
	svc, dispatcher, _, teardown := setupTestService(t)
	defer teardown()

	_, err := svc.AddXP("u1", 100, midSeason)
	require.NoError(t, err)

	_, err = svc.Claim("u1", 1, season.TrackPremium, midSeason)
	assert.ErrorIs(t, err, season.ErrPremiumRequired)
	assert.Empty(t, dispatcher.Calls())

	// After activating premium the same claim goes through, including for
	// tiers unlocked before the purchase.
	require.NoError(t, svc.ActivatePremium("u1", midSeason))
	reward, err := svc.Claim("u1", 1, season.TrackPremium, midSeason)
	require.NoError(t, err)
	assert.Equal(t, "booster", reward.Code)
}

func TestClaim_NoReward(t *testing.T) {
	svc, dispatcher, _, teardown := setupTestService(t)
	defer teardown()

	require.NoError(t, svc.ActivatePremium("u1", midSeason))
	_, err := svc.AddXP("u1", 250, midSeason)
	require.NoError(t, err)

	// Tier 2 has no premium reward defined.
	_, err = svc.Claim("u1", 2, season.TrackPremium, midSeason)
	assert.ErrorIs(t, err, season.ErrNoReward)
	assert.Empty(t, dispatcher.Calls())

	// The free track on the same tier still works.
	reward, err := svc.Claim("u1", 2, season.TrackFree, midSeason)
	require.NoError(t, err)
	assert.Equal(t, "sticker", reward.Code)
}

func TestClaim_DispatchFailureLeavesTierClaimable(t *testing.T) {
	svc, dispatcher, m, teardown := setupTestService(t)
	defer teardown()

	_, err := svc.AddXP("u1", 100, midSeason)
	require.NoError(t, err)

	dispatcher.DispatchFunc = func(userID, source string, reward rewards.Descriptor) error {
		return errors.New("pubsub unavailable")
	}
	_, err = svc.Claim("u1", 1, season.TrackFree, midSeason)
	require.Error(t, err)
	assert.Equal(t, 1, m.RewardDispatchFailed())

	// No claim row was written, so a retry succeeds.
	dispatcher.DispatchFunc = nil
	reward, err := svc.Claim("u1", 1, season.TrackFree, midSeason)
	require.NoError(t, err)
	assert.Equal(t, "xp-small", reward.Code)
}
