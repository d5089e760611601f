package commission

import (
	"testing"
	"time"

	"github.com/guideport/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func seedTiers() []models.CommissionTier {
	return []models.CommissionTier{
		{Code: models.TierBronze, Rank: 1, MinRevenue: 0, MaxRevenue: ptr(1_000_000), Rate: 5},
		{Code: models.TierSilver, Rank: 2, MinRevenue: 1_000_000, MaxRevenue: ptr(3_000_000), Rate: 8},
		{Code: models.TierGold, Rank: 3, MinRevenue: 3_000_000, MaxRevenue: ptr(10_000_000), Rate: 10},
		{Code: models.TierDiamond, Rank: 4, MinRevenue: 10_000_000, MaxRevenue: nil, Rate: 12},
	}
}

func TestResolveTierBands(t *testing.T) {
	tiers := seedTiers()

	tests := []struct {
		revenue int64
		want    models.TierCode
	}{
		{0, models.TierBronze},
		{999_999, models.TierBronze},
		{1_000_000, models.TierSilver}, // band max belongs to the next tier
		{2_999_999, models.TierSilver},
		{3_000_000, models.TierGold},
		{9_999_999, models.TierGold},
		{10_000_000, models.TierDiamond},
		{500_000_000, models.TierDiamond},
	}

	for _, tt := range tests {
		got := ResolveTier(tiers, tt.revenue)
		assert.Equal(t, tt.want, got.Code, "revenue %d", tt.revenue)
	}
}

func TestResolveTierUnsortedInput(t *testing.T) {
	tiers := seedTiers()
	// reverse order should not matter
	reversed := []models.CommissionTier{tiers[3], tiers[2], tiers[1], tiers[0]}

	assert.Equal(t, models.TierSilver, ResolveTier(reversed, 1_500_000).Code)
	assert.Equal(t, models.TierBronze, ResolveTier(reversed, 0).Code)
}

func TestResolveTierEmpty(t *testing.T) {
	got := ResolveTier(nil, 1_000_000)
	assert.Empty(t, got.Code)
}

func TestQuarterStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuarterStart(tt.in))
	}
}

func TestQuarterStartPreviousQuarterWindow(t *testing.T) {
	// The evaluation window for a new quarter is the full previous quarter
	at := time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)
	start := QuarterStart(at)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), start.AddDate(0, -3, 0))
}
