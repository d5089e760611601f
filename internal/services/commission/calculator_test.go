package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStandard(t *testing.T) {
	b := Calculate(1_000_000, 10, DefaultNewCustomerBonusRate, false)

	assert.Equal(t, int64(909091), b.PreTaxBase)
	assert.Equal(t, int64(90909), b.BaseCommission)
	assert.Equal(t, int64(0), b.Bonus)
	assert.Equal(t, int64(90909), b.Total)
}

func TestCalculateWithNewCustomerBonus(t *testing.T) {
	b := Calculate(1_000_000, 10, DefaultNewCustomerBonusRate, true)

	assert.Equal(t, int64(90909), b.BaseCommission)
	assert.Equal(t, int64(45455), b.Bonus)
	assert.Equal(t, int64(136364), b.Total)
}

func TestCalculateZeroSpend(t *testing.T) {
	b := Calculate(0, 12, DefaultNewCustomerBonusRate, true)

	assert.Equal(t, int64(0), b.PreTaxBase)
	assert.Equal(t, int64(0), b.BaseCommission)
	assert.Equal(t, int64(0), b.Bonus)
	assert.Equal(t, int64(0), b.Total)
}

func TestCalculateRoundsHalfUp(t *testing.T) {
	// 55 / 1.1 = 50 exactly, 50 * 5% = 2.5 rounds up to 3
	b := Calculate(55, 5, DefaultNewCustomerBonusRate, false)

	assert.Equal(t, int64(50), b.PreTaxBase)
	assert.Equal(t, int64(3), b.BaseCommission)
}

func TestCalculateIsDeterministic(t *testing.T) {
	first := Calculate(3_456_789, 8, DefaultNewCustomerBonusRate, true)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Calculate(3_456_789, 8, DefaultNewCustomerBonusRate, true))
	}
}

func TestCalculateTierRates(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		total int64
	}{
		{"bronze", 5, 45455},
		{"silver", 8, 72727},
		{"gold", 10, 90909},
		{"diamond", 12, 109091},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Calculate(1_000_000, tt.rate, DefaultNewCustomerBonusRate, false)
			assert.Equal(t, tt.total, b.Total)
		})
	}
}

func TestReferralRewardAmount(t *testing.T) {
	assert.Equal(t, int64(2727), ReferralRewardAmount(136364, DefaultReferralRewardRate))
	assert.Equal(t, int64(0), ReferralRewardAmount(0, DefaultReferralRewardRate))
	// 90909 * 0.02 = 1818.18 rounds down
	assert.Equal(t, int64(1818), ReferralRewardAmount(90909, DefaultReferralRewardRate))
}
