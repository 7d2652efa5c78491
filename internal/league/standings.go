package league

import "sort"

// ComputeStandings is the single sort/tie-break/zone rule shared by the
// read-side standings query and the rollover process, so the two can never
// diverge.
//
// Order: weekly score descending; ties broken by joined_at ascending (earlier
// joiners rank higher), then by user id for full determinism. Zones: the top
// PromotionCount ranks promote unless the league is already at the top tier,
// the bottom DemotionCount demote unless it is at the bottom tier.
func ComputeStandings(l *League, members []Membership) []StandingEntry {
	sorted := make([]Membership, len(members))
	copy(sorted, members)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].WeeklyScore != sorted[j].WeeklyScore {
			return sorted[i].WeeklyScore > sorted[j].WeeklyScore
		}
		if !sorted[i].JoinedAt.Equal(sorted[j].JoinedAt) {
			return sorted[i].JoinedAt.Before(sorted[j].JoinedAt)
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	entries := make([]StandingEntry, len(sorted))
	for i, m := range sorted {
		rank := i + 1
		entries[i] = StandingEntry{
			UserID:      m.UserID,
			WeeklyScore: m.WeeklyScore,
			JoinedAt:    m.JoinedAt,
			Rank:        rank,
			Zone:        classifyZone(rank, len(sorted), l.Tier),
		}
	}
	return entries
}

func classifyZone(rank, memberCount int, tier Tier) Zone {
	if rank <= PromotionCount && tier != TierLegend {
		return ZonePromotion
	}
	if rank > memberCount-DemotionCount && tier != TierBronze {
		return ZoneDemotion
	}
	return ZoneSafe
}
