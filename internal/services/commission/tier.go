package commission

import (
	"sort"
	"time"

	"github.com/guideport/backend/internal/models"
)

// QuarterStart returns the first day of the calendar quarter containing t,
// in t's location.
func QuarterStart(t time.Time) time.Time {
	quarterMonth := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), quarterMonth, 1, 0, 0, 0, 0, t.Location())
}

// ResolveTier picks the tier whose half-open [min, max) band contains the
// trailing-quarter revenue. Revenue equal to a band's max belongs to the next
// tier up. Revenue below the lowest minimum maps to the lowest tier; there is
// no upper bound beyond the highest tier.
func ResolveTier(tiers []models.CommissionTier, revenue int64) models.CommissionTier {
	if len(tiers) == 0 {
		return models.CommissionTier{}
	}

	sorted := make([]models.CommissionTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	for _, tier := range sorted {
		if revenue < tier.MinRevenue {
			continue
		}
		if tier.MaxRevenue == nil || revenue < *tier.MaxRevenue {
			return tier
		}
	}
	// revenue below the lowest band's minimum
	return sorted[0]
}
