package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"shoppingcart-api/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const cartColumns = `id::text, user_id::text, currency, subtotal::text, tax::text, shipping::text, total::text, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO shopping_carts (user_id, currency, subtotal, tax, shipping, total)
VALUES ($1::uuid, $2, $3::numeric, $4::numeric, $5::numeric, $6::numeric)
RETURNING ` + cartColumns
	saved, err := scanCart(tx.QueryRow(ctx, q,
		cart.UserID,
		cart.Currency,
		cart.Subtotal.StringFixed(2),
		cart.Tax.StringFixed(2),
		cart.Shipping.StringFixed(2),
		cart.Total.StringFixed(2),
	))
	if err != nil {
		return nil, mapPgError(err)
	}

	items, err := insertItems(ctx, tx, saved.ID, cart.Items)
	if err != nil {
		return nil, err
	}
	discounts, err := insertDiscounts(ctx, tx, saved.ID, cart.Discounts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapPgError(err)
	}
	saved.ReplaceItems(items)
	saved.ReplaceDiscounts(discounts)
	return saved, nil
}

func (r *postgresRepo) Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE shopping_carts
SET user_id = $2::uuid,
    currency = $3,
    subtotal = $4::numeric,
    tax = $5::numeric,
    shipping = $6::numeric,
    total = $7::numeric,
    updated_at = now()
WHERE id = $1::uuid
RETURNING ` + cartColumns
	saved, err := scanCart(tx.QueryRow(ctx, q,
		cart.ID,
		cart.UserID,
		cart.Currency,
		cart.Subtotal.StringFixed(2),
		cart.Tax.StringFixed(2),
		cart.Shipping.StringFixed(2),
		cart.Total.StringFixed(2),
	))
	if err != nil {
		return nil, mapPgError(err)
	}

	// Full replace: prior child rows never survive an update.
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1::uuid`, saved.ID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cart_discounts WHERE cart_id = $1::uuid`, saved.ID); err != nil {
		return nil, err
	}

	items, err := insertItems(ctx, tx, saved.ID, cart.Items)
	if err != nil {
		return nil, err
	}
	discounts, err := insertDiscounts(ctx, tx, saved.ID, cart.Discounts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapPgError(err)
	}
	saved.ReplaceItems(items)
	saved.ReplaceDiscounts(discounts)
	return saved, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const q = `SELECT ` + cartColumns + ` FROM shopping_carts WHERE id = $1::uuid`
	cart, err := scanCart(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	if err := r.loadChildren(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *postgresRepo) List(ctx context.Context, userID string) ([]domain.Cart, error) {
	q := `SELECT ` + cartColumns + ` FROM shopping_carts ORDER BY created_at ASC`
	args := []interface{}{}
	if userID != "" {
		q = `SELECT ` + cartColumns + ` FROM shopping_carts WHERE user_id = $1::uuid ORDER BY created_at ASC`
		args = append(args, userID)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	carts := make([]domain.Cart, 0)
	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			return nil, err
		}
		carts = append(carts, *cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range carts {
		if err := r.loadChildren(ctx, &carts[i]); err != nil {
			return nil, err
		}
	}
	return carts, nil
}

func (r *postgresRepo) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM shopping_carts WHERE user_id = $1::uuid)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	// Child rows go with the cart via ON DELETE CASCADE.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shopping_carts WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) loadChildren(ctx context.Context, cart *domain.Cart) error {
	const itemsQuery = `
SELECT id::text, cart_id::text, product_id, name, quantity, unit_price::text, total_price::text, currency
FROM cart_items
WHERE cart_id = $1::uuid
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	cart.Items = make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		var unitPrice, totalPrice string
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&unitPrice,
			&totalPrice,
			&item.Currency,
		); err != nil {
			return err
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return err
		}
		if item.TotalPrice, err = decimal.NewFromString(totalPrice); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const discountsQuery = `
SELECT id::text, cart_id::text, code, amount::text
FROM cart_discounts
WHERE cart_id = $1::uuid
ORDER BY position ASC
`
	drows, err := r.pool.Query(ctx, discountsQuery, cart.ID)
	if err != nil {
		return err
	}
	defer drows.Close()

	cart.Discounts = make([]domain.Discount, 0)
	for drows.Next() {
		var d domain.Discount
		var amount string
		if err := drows.Scan(&d.ID, &d.CartID, &d.Code, &amount); err != nil {
			return err
		}
		if d.Amount, err = decimal.NewFromString(amount); err != nil {
			return err
		}
		cart.Discounts = append(cart.Discounts, d)
	}
	return drows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, cartID string, items []domain.Item) ([]domain.Item, error) {
	const q = `
INSERT INTO cart_items (cart_id, position, product_id, name, quantity, unit_price, total_price, currency)
VALUES ($1::uuid, $2, $3, $4, $5, $6::numeric, $7::numeric, $8)
RETURNING id::text
`
	out := make([]domain.Item, 0, len(items))
	for i, item := range items {
		var id string
		if err := tx.QueryRow(ctx, q,
			cartID,
			i,
			item.ProductID,
			item.Name,
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			item.TotalPrice.StringFixed(2),
			item.Currency,
		).Scan(&id); err != nil {
			return nil, err
		}
		item.ID = id
		item.CartID = cartID
		out = append(out, item)
	}
	return out, nil
}

func insertDiscounts(ctx context.Context, tx pgx.Tx, cartID string, discounts []domain.Discount) ([]domain.Discount, error) {
	const q = `
INSERT INTO cart_discounts (cart_id, position, code, amount)
VALUES ($1::uuid, $2, $3, $4::numeric)
RETURNING id::text
`
	out := make([]domain.Discount, 0, len(discounts))
	for i, d := range discounts {
		var id string
		if err := tx.QueryRow(ctx, q, cartID, i, d.Code, d.Amount.StringFixed(2)).Scan(&id); err != nil {
			return nil, err
		}
		d.ID = id
		d.CartID = cartID
		out = append(out, d)
	}
	return out, nil
}

func scanCart(row pgx.Row) (*domain.Cart, error) {
	var cart domain.Cart
	var subtotal, tax, shipping, total string
	err := row.Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Currency,
		&subtotal,
		&tax,
		&shipping,
		&total,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cart.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if cart.Tax, err = decimal.NewFromString(tax); err != nil {
		return nil, err
	}
	if cart.Shipping, err = decimal.NewFromString(shipping); err != nil {
		return nil, err
	}
	if cart.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	return &cart, nil
}

func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}
