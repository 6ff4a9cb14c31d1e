package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
)

// CurrencyScale is the number of fraction digits every monetary value is
// rounded to before it is persisted or rendered.
const CurrencyScale = 2

// NormalizeCurrency trims and uppercases a currency code. It does not check
// the 3-letter format; callers enforce that on the field level.
func NormalizeCurrency(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", fmt.Errorf("%w: currency is required", domain.ErrValidation)
	}
	return strings.ToUpper(code), nil
}

// Scale rounds half-up to exactly two fraction digits. Scaling an already
// scaled value returns the same value.
func Scale(v decimal.Decimal) decimal.Decimal {
	return v.Round(CurrencyScale)
}

// ScaleOrZero maps an absent value to zero, otherwise scales it.
func ScaleOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero.Round(CurrencyScale)
	}
	return Scale(*v)
}
