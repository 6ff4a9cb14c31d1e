package domain

import "testing"

func TestReplaceItems(t *testing.T) {
	cart := &Cart{ID: "cart-1"}
	cart.ReplaceItems([]Item{
		{ID: "old-1", ProductID: "SKU-1"},
		{ID: "old-2", ProductID: "SKU-2"},
	})

	old := cart.Items
	cart.ReplaceItems([]Item{
		{ID: "new-1", ProductID: "SKU-3"},
	})

	if len(cart.Items) != 1 || cart.Items[0].ProductID != "SKU-3" {
		t.Fatalf("new collection not attached: %+v", cart.Items)
	}
	for _, item := range cart.Items {
		if item.CartID != cart.ID {
			t.Fatalf("attached item %s does not reference cart", item.ID)
		}
	}
	for _, item := range old {
		if item.CartID != "" {
			t.Fatalf("detached item %s still references cart %q", item.ID, item.CartID)
		}
	}
}

func TestReplaceItemsDoesNotAliasInput(t *testing.T) {
	cart := &Cart{ID: "cart-1"}
	in := []Item{{ID: "i1"}}
	cart.ReplaceItems(in)

	if in[0].CartID != "" {
		t.Fatalf("input slice was mutated")
	}
	in[0].ProductID = "changed"
	if cart.Items[0].ProductID == "changed" {
		t.Fatalf("cart shares backing array with input")
	}
}

func TestReplaceDiscounts(t *testing.T) {
	cart := &Cart{ID: "cart-1"}
	cart.ReplaceDiscounts([]Discount{{ID: "old", Code: "WELCOME"}})

	old := cart.Discounts
	cart.ReplaceDiscounts([]Discount{{ID: "new", Code: "LOYAL"}})

	if len(cart.Discounts) != 1 || cart.Discounts[0].Code != "LOYAL" {
		t.Fatalf("new collection not attached: %+v", cart.Discounts)
	}
	if cart.Discounts[0].CartID != cart.ID {
		t.Fatalf("attached discount does not reference cart")
	}
	if old[0].CartID != "" {
		t.Fatalf("detached discount still references cart")
	}
}
