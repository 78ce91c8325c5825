package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		subtotal  string
		shipping  string
		tax       string
		total     string
		remaining string
		free      bool
	}{
		{"30.00", "5.99", "2.40", "38.39", "20.00", false},
		{"60.00", "0.00", "4.80", "64.80", "0.00", true},
		{"50.00", "0.00", "4.00", "54.00", "0.00", true},
		{"49.99", "5.99", "4.00", "59.98", "0.01", false},
		{"0", "5.99", "0.00", "5.99", "50.00", false},
	}
	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			s := Summarize(decimal.RequireFromString(tt.subtotal), 1)
			assert.Equal(t, tt.shipping, s.Shipping.StringFixed(2))
			assert.Equal(t, tt.tax, s.Tax.StringFixed(2))
			assert.Equal(t, tt.total, s.Total.StringFixed(2))
			assert.Equal(t, tt.remaining, s.FreeShippingRemaining.StringFixed(2))
			assert.Equal(t, tt.free, s.FreeShipping)
		})
	}
}

func TestSummarizeItems(t *testing.T) {
	s := SummarizeItems([]CartItem{item("2", "39.99", 3), item("1", "24.99", 1)})
	assert.Equal(t, 4, s.ItemCount)
	assert.Equal(t, "144.96", s.Subtotal.StringFixed(2))
	assert.True(t, s.FreeShipping)
	assert.Equal(t, "11.60", s.Tax.StringFixed(2))
	assert.Equal(t, "156.56", s.Total.StringFixed(2))
}
