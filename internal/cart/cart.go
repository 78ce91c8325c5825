// Package cart holds the shopping cart: one Store per shopper session,
// snapshotted to a repository on every change so the cart survives reloads.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("cart not found")
	ErrSnapshotMissing = errors.New("cart snapshot not found")
	ErrEmpty           = errors.New("cart is empty")
)

// StorageKey names the cart snapshot inside a session's storage.
const StorageKey = "skincare-cart"

// MaxQuantity caps the quantity of a single cart line.
const MaxQuantity = 99

// CartItem is one line of the cart. Price is captured when the product is
// added and does not follow later catalog changes.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price * quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// clampQuantity bounds q to [1, MaxQuantity].
func clampQuantity(q int) int {
	return min(max(q, 1), MaxQuantity)
}
