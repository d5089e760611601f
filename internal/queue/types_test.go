package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoffGrows(t *testing.T) {
	// exponential with ±20% jitter: 5s, 10s, 20s, ...
	for retry, base := range []float64{5, 10, 20, 40, 80} {
		d := calculateBackoff(retry)
		min := time.Duration(base*0.8) * time.Second
		max := time.Duration(base*1.2) * time.Second
		assert.GreaterOrEqual(t, d, min, "retry %d", retry)
		assert.LessOrEqual(t, d, max, "retry %d", retry)
	}
}

func TestCalculateBackoffCapped(t *testing.T) {
	d := calculateBackoff(20)
	assert.LessOrEqual(t, d, time.Duration(3600*1.2)*time.Second)
	assert.GreaterOrEqual(t, d, time.Duration(3600*0.8)*time.Second)
}
