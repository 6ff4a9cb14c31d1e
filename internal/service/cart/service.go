package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
	"shoppingcart-api/internal/money"
	"shoppingcart-api/internal/pricing"
	cartrepo "shoppingcart-api/internal/repository/cart"
)

type Service struct {
	repo cartRepo
}

type cartRepo interface {
	Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	List(ctx context.Context, userID string) ([]domain.Cart, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CartInput is the create/update payload. Client-supplied subtotal and total
// are accepted for wire compatibility but ignored: totals are always
// recomputed server-side from items, discounts, tax, and shipping.
type CartInput struct {
	UserID    string           `json:"userId"`
	Currency  string           `json:"currency"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
	Tax       *decimal.Decimal `json:"tax"`
	Shipping  *decimal.Decimal `json:"shipping"`
	Total     *decimal.Decimal `json:"total"`
	Items     []ItemInput      `json:"items"`
	Discounts []DiscountInput  `json:"discounts"`
}

// Create builds and persists a new cart. At most one cart may exist per user;
// the storage layer's uniqueness constraint backs up the pre-check so racing
// creates cannot both succeed.
func (s *Service) Create(ctx context.Context, in CartInput) (*domain.Cart, error) {
	cart, err := s.buildAggregate(&domain.Cart{}, in)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUserID(ctx, cart.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: a shopping cart already exists for this user", domain.ErrAlreadyExists)
	}

	saved, err := s.repo.Create(ctx, cart)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("%w: a shopping cart already exists for this user", domain.ErrAlreadyExists)
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Get returns a cart by id with no side effects.
func (s *Service) Get(ctx context.Context, id string) (*domain.Cart, error) {
	if err := validateCartID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// List returns all carts, optionally filtered to a single user.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Cart, error) {
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			return nil, fmt.Errorf("%w: userId must be a UUID", domain.ErrValidation)
		}
	}
	return s.repo.List(ctx, userID)
}

// Update re-validates and remaps exactly as in Create, fully replacing items
// and discounts. Partial updates are not supported.
func (s *Service) Update(ctx context.Context, id string, in CartInput) (*domain.Cart, error) {
	if err := validateCartID(id); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cart, err := s.buildAggregate(existing, in)
	if err != nil {
		return nil, err
	}

	if cart.UserID != existing.UserID {
		exists, err := s.repo.ExistsByUserID(ctx, cart.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: a shopping cart already exists for this user", domain.ErrAlreadyExists)
		}
	}

	return s.repo.Update(ctx, cart)
}

// Delete removes the cart and its children as one unit.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateCartID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// buildAggregate validates the payload, maps children, and computes totals on
// top of the given cart. Nothing is persisted here; a failure leaves no
// observable state behind.
func (s *Service) buildAggregate(cart *domain.Cart, in CartInput) (*domain.Cart, error) {
	if _, err := uuid.Parse(in.UserID); err != nil {
		return nil, fmt.Errorf("%w: userId must be a UUID", domain.ErrValidation)
	}

	currency, err := money.NormalizeCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if !currencyPattern.MatchString(currency) {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", domain.ErrValidation)
	}

	tax := money.ScaleOrZero(in.Tax)
	if tax.IsNegative() {
		return nil, fmt.Errorf("%w: tax must not be negative", domain.ErrValidation)
	}
	shipping := money.ScaleOrZero(in.Shipping)
	if shipping.IsNegative() {
		return nil, fmt.Errorf("%w: shipping must not be negative", domain.ErrValidation)
	}

	items, err := mapItems(in.Items, currency)
	if err != nil {
		return nil, err
	}
	discounts, err := mapDiscounts(in.Discounts)
	if err != nil {
		return nil, err
	}

	cart.UserID = in.UserID
	cart.Currency = currency
	cart.Tax = tax
	cart.Shipping = shipping
	cart.ReplaceItems(items)
	cart.ReplaceDiscounts(discounts)
	cart.Subtotal, cart.Total = pricing.ComputeTotals(cart.Items, cart.Discounts, tax, shipping)
	return cart, nil
}

func validateCartID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: cart id must be a UUID", domain.ErrValidation)
	}
	return nil
}
