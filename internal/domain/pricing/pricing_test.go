package pricing_test

import (
	"math"
	"testing"

	"github.com/Lucas16AR/stock-app/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSuggestedPrice(t *testing.T) {
	cases := []struct {
		name                           string
		purchase, shipping, extra, mgn float64
		want                           float64
	}{
		{name: "base case", purchase: 10, shipping: 2, extra: 0, mgn: 0.5, want: 18.0},
		{name: "zero margin", purchase: 10, shipping: 2, extra: 3, mgn: 0, want: 15.0},
		{name: "all zero", want: 0},
		{name: "rounds to cents", purchase: 1.11, shipping: 0, extra: 0, mgn: 0.5, want: 1.67},
		{name: "float noise", purchase: 0.1, shipping: 0.2, extra: 0, mgn: 0, want: 0.3},
		{name: "full markup", purchase: 7.5, shipping: 1.25, extra: 0.25, mgn: 1, want: 18.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.SuggestedPrice(tc.purchase, tc.shipping, tc.extra, tc.mgn)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSuggestedPrice_NeverBelowLandedCost(t *testing.T) {
	for _, margin := range []float64{0, 0.1, 0.5, 1, 2.75} {
		for _, purchase := range []float64{0, 0.01, 3.33, 10, 999.99} {
			landed := pricing.LandedCost(purchase, 1.5, 0.25)
			price := pricing.SuggestedPrice(purchase, 1.5, 0.25, margin)
			assert.GreaterOrEqual(t, price, landed, "purchase=%v margin=%v", purchase, margin)
		}
	}
}

func TestSuggestedPrice_NonFiniteIsZero(t *testing.T) {
	assert.Equal(t, 0.0, pricing.SuggestedPrice(math.NaN(), 0, 0, 0.5))
	assert.Equal(t, 3.0, pricing.SuggestedPrice(math.Inf(1), 2, 0, 0.5))
}

func TestLineProfit(t *testing.T) {
	total := pricing.LineProfit(20, 12.5, 3).Add(pricing.LineProfit(10, 12.5, 1))
	assert.True(t, total.Equal(decimal.NewFromFloat(20)))
	assert.Equal(t, 20.0, pricing.Round2(total))
}
