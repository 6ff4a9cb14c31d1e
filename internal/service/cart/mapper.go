package cart

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
	"shoppingcart-api/internal/money"
)

const (
	maxProductIDLen = 64
	maxNameLen      = 255
	maxCodeLen      = 64
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ItemInput is a raw line item as carried by create/update payloads.
type ItemInput struct {
	ProductID  string           `json:"productId"`
	Name       string           `json:"name"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unitPrice"`
	TotalPrice *decimal.Decimal `json:"totalPrice"` // accepted for wire compatibility, always recomputed
	Currency   string           `json:"currency"`
}

// DiscountInput is a raw discount entry as carried by create/update payloads.
type DiscountInput struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// mapItems converts raw item requests into validated line items. It is a pure
// function of its inputs and preserves input order. Every item's currency must
// match the cart currency.
func mapItems(inputs []ItemInput, cartCurrency string) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(inputs))
	for i, in := range inputs {
		productID := strings.TrimSpace(in.ProductID)
		if productID == "" {
			return nil, fmt.Errorf("%w: items[%d].productId is required", domain.ErrValidation, i)
		}
		if len(productID) > maxProductIDLen {
			return nil, fmt.Errorf("%w: items[%d].productId exceeds %d characters", domain.ErrValidation, i, maxProductIDLen)
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: items[%d].name is required", domain.ErrValidation, i)
		}
		if len(name) > maxNameLen {
			return nil, fmt.Errorf("%w: items[%d].name exceeds %d characters", domain.ErrValidation, i, maxNameLen)
		}
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: items[%d].quantity must be at least 1", domain.ErrValidation, i)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: items[%d].unitPrice must not be negative", domain.ErrValidation, i)
		}
		currency, err := money.NormalizeCurrency(in.Currency)
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d].currency is required", domain.ErrValidation, i)
		}
		if !currencyPattern.MatchString(currency) {
			return nil, fmt.Errorf("%w: items[%d].currency must be a 3-letter code", domain.ErrValidation, i)
		}
		if currency != cartCurrency {
			return nil, fmt.Errorf("%w: item currency must match cart currency", domain.ErrValidation)
		}

		unitPrice := money.Scale(in.UnitPrice)
		items = append(items, domain.Item{
			ProductID:  productID,
			Name:       name,
			Quantity:   in.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: money.Scale(unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))),
			Currency:   currency,
		})
	}
	return items, nil
}

// mapDiscounts converts raw discount requests, canonicalizing codes to upper
// case. Preserves input order.
func mapDiscounts(inputs []DiscountInput) ([]domain.Discount, error) {
	discounts := make([]domain.Discount, 0, len(inputs))
	for i, in := range inputs {
		code := strings.ToUpper(strings.TrimSpace(in.Code))
		if code == "" {
			return nil, fmt.Errorf("%w: discounts[%d].code is required", domain.ErrValidation, i)
		}
		if len(code) > maxCodeLen {
			return nil, fmt.Errorf("%w: discounts[%d].code exceeds %d characters", domain.ErrValidation, i, maxCodeLen)
		}
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: discounts[%d].amount must not be negative", domain.ErrValidation, i)
		}
		discounts = append(discounts, domain.Discount{
			Code:   code,
			Amount: money.Scale(in.Amount),
		})
	}
	return discounts, nil
}
