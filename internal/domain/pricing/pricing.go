// Package pricing は原価とマージンから推奨販売価格を求める。
// 金額は decimal で計算し、丸めは最後に小数2桁で行う。
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// 仕入値＋1個あたり送料＋追加コスト
func LandedCost(purchasePrice, shippingUnit, extraCost float64) float64 {
	return landed(purchasePrice, shippingUnit, extraCost).InexactFloat64()
}

// round((仕入値+送料+追加コスト) * (1+マージン), 2)
func SuggestedPrice(purchasePrice, shippingUnit, extraCost, margin float64) float64 {
	factor := decimal.NewFromInt(1).Add(dec(margin))
	return landed(purchasePrice, shippingUnit, extraCost).Mul(factor).Round(2).InexactFloat64()
}

// 1件の販売の利益（丸めない）。合計してから Round する
func LineProfit(unitPrice, landedCost float64, quantity int64) decimal.Decimal {
	return dec(unitPrice).Sub(dec(landedCost)).Mul(decimal.NewFromInt(quantity))
}

// 小数2桁に丸める
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func landed(purchasePrice, shippingUnit, extraCost float64) decimal.Decimal {
	return dec(purchasePrice).Add(dec(shippingUnit)).Add(dec(extraCost))
}

// NaN/Inf は 0 扱い（decimal.NewFromFloat は panic するため）
func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
