package usecase

import "math"

// 税率は地域によらず固定
const TaxRate = 0.08

// 金額計算の入力1行
type PricedLine struct {
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalculateTotals は小計・税・合計をそれぞれ小数2桁に丸めて返す。
// 税と合計は丸めた後の小計から計算する（二重丸めの結果もそのまま返す）。
func CalculateTotals(lines []PricedLine) Totals {
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}

	subtotal := Round2(sum)
	tax := Round2(subtotal * TaxRate)
	total := Round2(subtotal + tax)

	return Totals{Subtotal: subtotal, Tax: tax, Total: total}
}

// 小数2桁に四捨五入
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
