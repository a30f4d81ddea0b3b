package revenue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/app/simulate"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/shopspring/decimal"
)

type Service struct {
	orders interfaces.OrderService
	logger logger.Logger
	delay  time.Duration
}

func NewService(orders interfaces.OrderService, logger logger.Logger, delay time.Duration) *Service {
	return &Service{
		orders: orders,
		logger: logger,
		delay:  delay,
	}
}

// GetRevenue sums billable orders per calendar day between start and end,
// both inclusive. With neither date given every order is counted. Days
// without orders are omitted.
func (s *Service) GetRevenue(ctx context.Context, start, end string) ([]domain.RevenueDatum, error) {
	loc := s.orders.Location()

	var r *domain.DateRange
	if start != "" || end != "" {
		parsed, err := domain.ParseDateRange(start, end, loc)
		if err != nil {
			return nil, err
		}
		r = &parsed
	}

	if err := simulate.Delay(ctx, s.delay); err != nil {
		return nil, err
	}

	orders, err := s.orders.ListOrders(ctx, r)
	if err != nil {
		s.logger.Error("revenue_failed", "Failed to list orders for revenue", "", nil, err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	byDay := make(map[string]*domain.RevenueDatum)
	for _, o := range orders {
		if !o.Status.Billable() {
			continue
		}

		day := o.CreatedAt.In(loc).Format(domain.DateLayout)
		d, ok := byDay[day]
		if !ok {
			d = &domain.RevenueDatum{Date: day, Revenue: decimal.Zero}
			byDay[day] = d
		}
		d.Revenue = d.Revenue.Add(o.TotalAmount)
		d.OrderCount++
	}

	result := make([]domain.RevenueDatum, 0, len(byDay))
	for _, d := range byDay {
		result = append(result, *d)
	}
	// YYYY-MM-DD sorts lexically
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	s.logger.Debug("revenue_computed", fmt.Sprintf("Revenue for %s..%s", start, end), "", map[string]interface{}{
		"days": len(result),
	})

	return result, nil
}
