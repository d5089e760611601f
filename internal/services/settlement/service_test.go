package settlement

import (
	"testing"
	"time"

	"github.com/guideport/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), got)

	got = MonthStart(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestSummarize(t *testing.T) {
	commissions := []models.Commission{
		{Type: models.CommissionTypeBooking, OrderAmount: 1_000_000, Amount: 90909},
		{Type: models.CommissionTypeBooking, OrderAmount: 550_000, Amount: 50000},
		{Type: models.CommissionTypeWhiteLabel, OrderAmount: 200_000, Amount: 10000},
	}

	totals := Summarize(commissions)

	assert.Equal(t, 2, totals.Bookings)
	assert.Equal(t, int64(1_550_000), totals.TotalSpend)
	assert.Equal(t, int64(140909), totals.Commission)
}

func TestSummarizeEmpty(t *testing.T) {
	totals := Summarize(nil)

	assert.Equal(t, 0, totals.Bookings)
	assert.Equal(t, int64(0), totals.TotalSpend)
	assert.Equal(t, int64(0), totals.Commission)
}
