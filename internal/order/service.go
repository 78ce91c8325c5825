package order

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/skincare-storefront/internal/cart"
	"github.com/wichananm65/skincare-storefront/internal/logging"
	"go.uber.org/zap"
)

const (
	numberPrefix = "SK"
	numberLength = 9
)

// Carts hands out the cart of a session.
type Carts interface {
	Store(ctx context.Context, sessionID string) (*cart.Store, error)
}

// Service turns session carts into order confirmations.
type Service struct {
	repo   Repository
	carts  Carts
	logger *zap.Logger
	now    func() time.Time
}

func NewService(r Repository, carts Carts, logger *zap.Logger) *Service {
	return &Service{repo: r, carts: carts, logger: logging.OrNop(logger), now: time.Now}
}

// Place checks out the cart of sessionID. The cart lines are taken out and
// stored as an order in one step; they go back into the cart when the order
// cannot be stored.
func (s *Service) Place(ctx context.Context, sessionID string) (Order, error) {
	st, err := s.carts.Store(ctx, sessionID)
	if err != nil {
		return Order{}, err
	}

	var ord Order
	err = st.Checkout(ctx, func(items []cart.CartItem) error {
		ord = Order{
			Number:    newOrderNumber(),
			SessionID: sessionID,
			Items:     items,
			Summary:   cart.SummarizeItems(items),
			Status:    StatusConfirmed,
			CreatedAt: s.now().UTC(),
		}
		if err := s.repo.Create(ctx, ord); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		return nil
	})
	if errors.Is(err, cart.ErrEmpty) {
		return Order{}, ErrEmptyCart
	}
	if err != nil {
		return Order{}, err
	}

	s.logger.Info("order placed",
		zap.String("order_number", ord.Number),
		zap.Int("items", ord.Summary.ItemCount),
		zap.String("total", ord.Summary.Total.StringFixed(2)))
	return ord, nil
}

// Get returns an order of sessionID. Orders of other sessions are reported
// as not found.
func (s *Service) Get(ctx context.Context, sessionID, number string) (Order, error) {
	ord, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return Order{}, err
	}
	if ord.SessionID != sessionID {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Order, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

// newOrderNumber renders random uuid bits as SK followed by nine upper-case
// base36 characters.
func newOrderNumber() string {
	id := uuid.New()
	digits := strings.ToUpper(new(big.Int).SetBytes(id[:]).Text(36))
	if len(digits) < numberLength {
		digits = strings.Repeat("0", numberLength-len(digits)) + digits
	}
	return numberPrefix + digits[len(digits)-numberLength:]
}
