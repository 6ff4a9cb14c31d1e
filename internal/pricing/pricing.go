package pricing

import (
	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
	"shoppingcart-api/internal/money"
)

// ComputeTotals derives the cart subtotal and grand total from finalized
// items and discounts. Item totals are summed first and rounded once, rather
// than rounded per addition, so rounding error never compounds across a long
// item list. The grand total is floored at zero.
//
// subtotal = Σ item.TotalPrice
// total    = max(0, subtotal − Σ discount.Amount + tax + shipping)
func ComputeTotals(items []domain.Item, discounts []domain.Discount, tax, shipping decimal.Decimal) (subtotal, total decimal.Decimal) {
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	subtotal = money.Scale(subtotal)

	var discountTotal decimal.Decimal
	for _, d := range discounts {
		discountTotal = discountTotal.Add(d.Amount)
	}

	total = subtotal.Sub(discountTotal).Add(money.Scale(tax)).Add(money.Scale(shipping))
	if total.IsNegative() {
		total = decimal.Zero
	}
	return subtotal, money.Scale(total)
}
