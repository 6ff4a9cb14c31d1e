package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
	cartrepo "shoppingcart-api/internal/repository/cart"
	cartsvc "shoppingcart-api/internal/service/cart"
)

// demoUserID is a fixed id so reruns hit the one-cart-per-user guard instead
// of piling up carts.
const demoUserID = "0b5cde1a-7a3f-4f86-9a41-2c7d90c4e001"

// Apply inserts a demo cart for manual testing. It is idempotent: an existing
// demo cart is left untouched.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	svc := cartsvc.New(cartrepo.NewPostgres(pool))

	tax := decimal.RequireFromString("12.00")
	shipping := decimal.RequireFromString("5.00")
	_, err := svc.Create(ctx, cartsvc.CartInput{
		UserID:   demoUserID,
		Currency: "USD",
		Tax:      &tax,
		Shipping: &shipping,
		Items: []cartsvc.ItemInput{
			{ProductID: "SKU-DEMO-TSHIRT", Name: "Demo T-Shirt", Quantity: 2, UnitPrice: decimal.RequireFromString("19.99"), Currency: "USD"},
			{ProductID: "SKU-DEMO-MUG", Name: "Demo Mug", Quantity: 1, UnitPrice: decimal.RequireFromString("12.99"), Currency: "USD"},
		},
		Discounts: []cartsvc.DiscountInput{
			{Code: "WELCOME", Amount: decimal.RequireFromString("5.00")},
		},
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create demo cart: %w", err)
	}
	return nil
}
