package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMapItemsComputesTotals(t *testing.T) {
	items, err := mapItems([]ItemInput{
		{ProductID: "SKU-1", Name: "Widget", Quantity: 3, UnitPrice: dec("19.99"), Currency: "usd"},
	}, "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !items[0].TotalPrice.Equal(dec("59.97")) {
		t.Fatalf("totalPrice = %s, want 59.97", items[0].TotalPrice)
	}
	if items[0].Currency != "USD" {
		t.Fatalf("currency = %q, want USD", items[0].Currency)
	}
}

func TestMapItemsRoundsTotal(t *testing.T) {
	// 1.005 scales to 1.01 before multiplication.
	items, err := mapItems([]ItemInput{
		{ProductID: "SKU-1", Name: "Widget", Quantity: 2, UnitPrice: dec("1.005"), Currency: "USD"},
	}, "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !items[0].UnitPrice.Equal(dec("1.01")) {
		t.Fatalf("unitPrice = %s, want 1.01", items[0].UnitPrice)
	}
	if !items[0].TotalPrice.Equal(dec("2.02")) {
		t.Fatalf("totalPrice = %s, want 2.02", items[0].TotalPrice)
	}
}

func TestMapItemsCurrencyMismatch(t *testing.T) {
	_, err := mapItems([]ItemInput{
		{ProductID: "SKU-1", Name: "Widget", Quantity: 1, UnitPrice: dec("1.00"), Currency: "EUR"},
	}, "USD")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMapItemsFieldValidation(t *testing.T) {
	cases := []struct {
		name string
		in   ItemInput
	}{
		{"blank productId", ItemInput{ProductID: " ", Name: "Widget", Quantity: 1, UnitPrice: dec("1"), Currency: "USD"}},
		{"blank name", ItemInput{ProductID: "SKU-1", Name: "", Quantity: 1, UnitPrice: dec("1"), Currency: "USD"}},
		{"zero quantity", ItemInput{ProductID: "SKU-1", Name: "Widget", Quantity: 0, UnitPrice: dec("1"), Currency: "USD"}},
		{"negative unit price", ItemInput{ProductID: "SKU-1", Name: "Widget", Quantity: 1, UnitPrice: dec("-1"), Currency: "USD"}},
		{"blank currency", ItemInput{ProductID: "SKU-1", Name: "Widget", Quantity: 1, UnitPrice: dec("1"), Currency: ""}},
		{"bad currency format", ItemInput{ProductID: "SKU-1", Name: "Widget", Quantity: 1, UnitPrice: dec("1"), Currency: "US"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := mapItems([]ItemInput{tc.in}, "USD"); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestMapItemsPreservesOrder(t *testing.T) {
	items, err := mapItems([]ItemInput{
		{ProductID: "SKU-3", Name: "C", Quantity: 1, UnitPrice: dec("1"), Currency: "USD"},
		{ProductID: "SKU-1", Name: "A", Quantity: 1, UnitPrice: dec("1"), Currency: "USD"},
		{ProductID: "SKU-2", Name: "B", Quantity: 1, UnitPrice: dec("1"), Currency: "USD"},
	}, "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"SKU-3", "SKU-1", "SKU-2"}
	for i, item := range items {
		if item.ProductID != want[i] {
			t.Fatalf("items[%d] = %s, want %s", i, item.ProductID, want[i])
		}
	}
}

func TestMapDiscountsCanonicalizesCode(t *testing.T) {
	discounts, err := mapDiscounts([]DiscountInput{
		{Code: " welcome ", Amount: dec("20.005")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discounts[0].Code != "WELCOME" {
		t.Fatalf("code = %q, want WELCOME", discounts[0].Code)
	}
	if !discounts[0].Amount.Equal(dec("20.01")) {
		t.Fatalf("amount = %s, want 20.01", discounts[0].Amount)
	}
}

func TestMapDiscountsValidation(t *testing.T) {
	if _, err := mapDiscounts([]DiscountInput{{Code: "", Amount: dec("1")}}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank code, got %v", err)
	}
	if _, err := mapDiscounts([]DiscountInput{{Code: "X", Amount: dec("-1")}}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
}
