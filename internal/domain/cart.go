package domain

import "github.com/shopspring/decimal"

// CartItem is a menu item snapshot with a quantity. The embedded item is a
// copy taken when the dish first entered the cart, so its price is frozen.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

func (c CartItem) Clone() CartItem {
	return CartItem{MenuItem: c.MenuItem.Clone(), Quantity: c.Quantity}
}

// SumItems returns the total quantity and the total amount of items.
func SumItems(items []CartItem) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.LineTotal())
	}
	return count, total
}

// CloneItems deep-copies a slice of cart items.
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
