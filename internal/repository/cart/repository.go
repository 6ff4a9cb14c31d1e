package cart

import (
	"context"

	"shoppingcart-api/internal/domain"
)

// Repository persists cart aggregates. Create and Update each run as a single
// transaction that writes the cart row and fully replaces its child rows.
type Repository interface {
	Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	List(ctx context.Context, userID string) ([]domain.Cart, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	Delete(ctx context.Context, id string) error
}
