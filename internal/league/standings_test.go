package league

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMembers(t *testing.T, scores ...int64) []Membership {
	t.Helper()
	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	members := make([]Membership, len(scores))
	for i, score := range scores {
		members[i] = Membership{
			UserID:      fmt.Sprintf("user-%02d", i),
			WeeklyScore: score,
			JoinedAt:    base.Add(time.Duration(i) * time.Minute),
		}
	}
	return members
}

func TestComputeStandings_OrderAndRanks(t *testing.T) {
	l := &League{ID: "l1", Tier: TierSilver}
	members := makeMembers(t, 10, 50, 30)

	entries := ComputeStandings(l, members)
	require.Len(t, entries, 3)
	assert.Equal(t, "user-01", entries[0].UserID)
	assert.Equal(t, "user-02", entries[1].UserID)
	assert.Equal(t, "user-00", entries[2].UserID)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestComputeStandings_TieBreakByJoinedAt(t *testing.T) {
	l := &League{ID: "l1", Tier: TierSilver}
	// user-00 joined first; equal scores must rank the earlier joiner higher.
	members := makeMembers(t, 40, 40, 40)

	entries := ComputeStandings(l, members)
	assert.Equal(t, "user-00", entries[0].UserID)
	assert.Equal(t, "user-01", entries[1].UserID)
	assert.Equal(t, "user-02", entries[2].UserID)

	// Order of the input slice must not matter.
	reversed := []Membership{members[2], members[0], members[1]}
	again := ComputeStandings(l, reversed)
	assert.Equal(t, entries, again)
}

func TestComputeStandings_Idempotent(t *testing.T) {
	l := &League{ID: "l1", Tier: TierGold}
	members := makeMembers(t, 5, 9, 9, 1, 0, 0, 22)

	first := ComputeStandings(l, members)
	second := ComputeStandings(l, members)
	assert.Equal(t, first, second)
}

func TestComputeStandings_ZoneSizes(t *testing.T) {
	l := &League{ID: "l1", Tier: TierSilver}
	scores := make([]int64, 30)
	for i := range scores {
		scores[i] = int64(1000 - i*10)
	}
	entries := ComputeStandings(l, makeMembers(t, scores...))

	var promo, safe, demo int
	for _, e := range entries {
		switch e.Zone {
		case ZonePromotion:
			promo++
		case ZoneSafe:
			safe++
		case ZoneDemotion:
			demo++
		}
	}
	assert.Equal(t, PromotionCount, promo)
	assert.Equal(t, DemotionCount, demo)
	assert.Equal(t, 30-PromotionCount-DemotionCount, safe)

	// The top 10 ranks are exactly the promotion zone, the bottom 5 exactly
	// the demotion zone.
	for _, e := range entries {
		if e.Rank <= PromotionCount {
			assert.Equal(t, ZonePromotion, e.Zone, "rank %d", e.Rank)
		}
		if e.Rank > 30-DemotionCount {
			assert.Equal(t, ZoneDemotion, e.Zone, "rank %d", e.Rank)
		}
	}
}

func TestComputeStandings_TopTierHasNoPromotionZone(t *testing.T) {
	l := &League{ID: "l1", Tier: TierLegend}
	entries := ComputeStandings(l, makeMembers(t, 100, 90, 80, 70, 60, 50, 40, 30, 20, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0))
	for _, e := range entries {
		assert.NotEqual(t, ZonePromotion, e.Zone, "rank %d", e.Rank)
	}
}

func TestComputeStandings_BottomTierHasNoDemotionZone(t *testing.T) {
	l := &League{ID: "l1", Tier: TierBronze}
	entries := ComputeStandings(l, makeMembers(t, 100, 90, 80, 70, 60, 50, 40, 30, 20, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0))
	for _, e := range entries {
		assert.NotEqual(t, ZoneDemotion, e.Zone, "rank %d", e.Rank)
	}
}

func TestComputeStandings_SoleMemberIsPromotion(t *testing.T) {
	l := &League{ID: "l1", Tier: TierBronze}
	entries := ComputeStandings(l, makeMembers(t, 0))
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, ZonePromotion, entries[0].Zone)
}

func TestTierNextPrevClamped(t *testing.T) {
	assert.Equal(t, TierLegend, TierLegend.Next())
	assert.Equal(t, TierBronze, TierBronze.Prev())
	assert.Equal(t, TierSilver, TierBronze.Next())
	assert.Equal(t, TierMaster, TierLegend.Prev())
}
