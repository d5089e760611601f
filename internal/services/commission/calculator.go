package commission

import "math"

// consumptionTax is the fixed Japanese consumption tax included in actual
// spend amounts. Commission is computed on the pre-tax base.
const consumptionTax = 0.10

// DefaultNewCustomerBonusRate is the bonus percentage applied to the pre-tax
// base when a booking's customer is a first-time customer of the guide.
const DefaultNewCustomerBonusRate = 5.0

// DefaultReferralRewardRate is the fraction of a commission credited to the
// earning guide's referrer.
const DefaultReferralRewardRate = 0.02

// Breakdown is the result of a commission calculation. All amounts are whole
// yen, rounded half-up. Base and bonus are kept separate for auditability.
type Breakdown struct {
	PreTaxBase     int64
	BaseCommission int64
	Bonus          int64
	Total          int64
}

// Calculate computes the commission for a completed order. spend is the
// tax-inclusive amount in yen, rate the tier percentage, bonusRate the
// new-customer bonus percentage (applied only when firstTime is true).
// The function is pure: recomputing for the same inputs yields the same
// amounts.
func Calculate(spend int64, rate, bonusRate float64, firstTime bool) Breakdown {
	base := float64(spend) / (1 + consumptionTax)

	b := Breakdown{
		PreTaxBase:     roundYen(base),
		BaseCommission: roundYen(base * rate / 100),
	}
	if firstTime {
		b.Bonus = roundYen(base * bonusRate / 100)
	}
	b.Total = b.BaseCommission + b.Bonus
	return b
}

// ReferralRewardAmount computes the referrer's cut of a commission. The
// reward is additive and does not reduce the original commission.
func ReferralRewardAmount(commissionAmount int64, rewardRate float64) int64 {
	return roundYen(float64(commissionAmount) * rewardRate)
}

// roundYen rounds half-up to the whole yen. JPY has no subunit, so every
// recorded amount is an integer.
func roundYen(v float64) int64 {
	return int64(math.Round(v))
}
