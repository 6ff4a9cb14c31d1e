package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the aggregate root. It exclusively owns its Items and Discounts:
// children are created and destroyed only through a full replace or a cart
// delete, never independently.
type Cart struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Currency  string          `json:"currency"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Items     []Item          `json:"items"`
	Discounts []Discount      `json:"discounts"`
}

type Item struct {
	ID         string          `json:"id"`
	CartID     string          `json:"-"`
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Currency   string          `json:"currency"`
}

type Discount struct {
	ID     string          `json:"id"`
	CartID string          `json:"-"`
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// ReplaceItems swaps the owned item collection in one step. Detached items
// lose their back-reference so a removed row can never still point at this
// cart; attached items always point at it.
func (c *Cart) ReplaceItems(items []Item) {
	for i := range c.Items {
		c.Items[i].CartID = ""
	}
	c.Items = make([]Item, len(items))
	copy(c.Items, items)
	for i := range c.Items {
		c.Items[i].CartID = c.ID
	}
}

// ReplaceDiscounts has the same contract as ReplaceItems.
func (c *Cart) ReplaceDiscounts(discounts []Discount) {
	for i := range c.Discounts {
		c.Discounts[i].CartID = ""
	}
	c.Discounts = make([]Discount, len(discounts))
	copy(c.Discounts, discounts)
	for i := range c.Discounts {
		c.Discounts[i].CartID = c.ID
	}
}
