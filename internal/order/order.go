package order

import (
	"errors"
	"time"

	"github.com/wichananm65/skincare-storefront/internal/cart"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrEmptyCart = errors.New("cart is empty")
)

const StatusConfirmed = "confirmed"

// Order is the confirmation of a checked-out cart. Items and Summary are
// copied from the cart at placement time.
type Order struct {
	Number    string          `json:"orderNumber"`
	SessionID string          `json:"-"`
	Items     []cart.CartItem `json:"items"`
	Summary   cart.Summary    `json:"summary"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}
