package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/app/simulate"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service stands in for a card processor. No money moves; every call is an
// independent trial that succeeds with probability successRate.
type Service struct {
	successRate float64
	delay       time.Duration
	logger      logger.Logger

	mu     sync.Mutex
	random func() float64
}

// NewService uses the package-level generator when random is nil.
func NewService(successRate float64, delay time.Duration, random func() float64, logger logger.Logger) *Service {
	if random == nil {
		random = rand.Float64
	}
	return &Service{
		successRate: successRate,
		delay:       delay,
		logger:      logger,
		random:      random,
	}
}

// Authorize returns an unsuccessful Authorization together with
// ErrPaymentDeclined when the trial fails.
func (s *Service) Authorize(ctx context.Context, orderID string, amount decimal.Decimal) (*interfaces.Authorization, error) {
	if orderID == "" {
		return nil, domain.ValidationError{Field: "orderId", Message: "order id is required"}
	}
	if amount.IsNegative() {
		return nil, domain.ValidationError{Field: "amount", Message: "amount must not be negative"}
	}

	if err := simulate.Delay(ctx, s.delay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	approved := s.random() < s.successRate
	s.mu.Unlock()

	if !approved {
		s.logger.Info("payment_declined", fmt.Sprintf("Payment for order %s declined", orderID), orderID, map[string]interface{}{
			"amount": amount.String(),
		})
		return &interfaces.Authorization{Success: false}, fmt.Errorf("order %s: %w", orderID, domain.ErrPaymentDeclined)
	}

	auth := &interfaces.Authorization{
		TransactionID: "TRX-" + uuid.NewString(),
		Success:       true,
	}

	s.logger.Info("payment_authorized", fmt.Sprintf("Payment for order %s authorized", orderID), orderID, map[string]interface{}{
		"amount":         amount.String(),
		"transaction_id": auth.TransactionID,
	})

	return auth, nil
}
