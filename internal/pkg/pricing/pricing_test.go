package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommission(t *testing.T) {
	tests := []struct {
		amount float64
		want   float64
	}{
		{100, 20},
		{250, 50},
		{333, 67},
		{0, 0},
		{DefaultListingAmount, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Commission(tt.amount), "amount %v", tt.amount)
	}
}

func TestTotalEarnings(t *testing.T) {
	assert.Equal(t, float64(137), TotalEarnings([]float64{100, 250, 333}))
	assert.Equal(t, float64(0), TotalEarnings(nil))
}
