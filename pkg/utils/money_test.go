package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"zero", 0, 0},
		{"ten cents", 10, 1},
		{"typical price", 1999, 200},
		{"half rounds away from zero", 5, 1},
		{"just below half", 4, 0},
		{"exact multiple", 1000, 100},
		{"one cent", 1, 0},
		{"large subtotal", 123456789, 12345679},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tax(tt.subtotal))
		})
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, int64(2199), Total(1999))
	assert.Equal(t, int64(11), Total(10))
	assert.Equal(t, int64(0), Total(0))
}

func TestLineSubtotal(t *testing.T) {
	assert.Equal(t, int64(5997), LineSubtotal(1999, 3))
	assert.Equal(t, int64(0), LineSubtotal(1999, 0))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "19.99", FormatPrice(1999))
	assert.Equal(t, "0.05", FormatPrice(5))
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "-1.50", FormatPrice(-150))
}
