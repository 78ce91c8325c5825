package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wichananm65/skincare-storefront/internal/logging"
	"go.uber.org/zap"
)

// Service accepts contact messages. Accepted messages are handed to the
// log; each submission waits for delay before it is accepted.
type Service struct {
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewService(delay time.Duration, logger *zap.Logger) *Service {
	return &Service{delay: delay, logger: logging.OrNop(logger), now: time.Now}
}

// Submit validates m, waits out the configured delay and accepts it. It
// returns ctx.Err() when the context ends first.
func (s *Service) Submit(ctx context.Context, m Message) (Message, error) {
	m = m.normalize()
	if errs := m.Validate(); len(errs) > 0 {
		return Message{}, &ValidationError{Fields: errs}
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Message{}, ctx.Err()
		case <-timer.C:
		}
	}

	m.ID = uuid.NewString()
	m.ReceivedAt = s.now().UTC()

	s.logger.Info("contact message received",
		zap.String("message_id", m.ID),
		zap.String("category", m.Category),
		zap.String("email", m.Email),
		zap.String("subject", m.Subject))
	return m, nil
}
