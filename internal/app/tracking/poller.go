package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

// Poller refreshes one order's status on an interval. Refreshes may overlap;
// each is numbered when issued and a response is applied only if no later
// refresh has been applied already.
type Poller struct {
	status   interfaces.TrackingService
	orderID  string
	interval time.Duration
	onUpdate func(*interfaces.OrderStatusView)
	logger   logger.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  *interfaces.OrderStatusView
}

func NewPoller(status interfaces.TrackingService, orderID string, interval time.Duration, onUpdate func(*interfaces.OrderStatusView), logger logger.Logger) *Poller {
	return &Poller{
		status:   status,
		orderID:  orderID,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logger,
	}
}

// Refresh fetches the status once. It reports whether the response was
// applied.
func (p *Poller) Refresh(ctx context.Context) (bool, error) {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.mu.Unlock()

	view, err := p.status.GetOrderStatus(ctx, p.orderID)
	if err != nil {
		return false, err
	}

	p.mu.Lock()
	if seq <= p.applied {
		p.mu.Unlock()
		p.logger.Debug("stale_status_dropped", "Dropped out-of-date status response", p.orderID, map[string]interface{}{
			"seq":     seq,
			"applied": p.applied,
		})
		return false, nil
	}
	p.applied = seq
	p.latest = view
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(view)
	}
	return true, nil
}

// Latest returns the most recently applied status, or nil.
func (p *Poller) Latest() *interfaces.OrderStatusView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Run refreshes immediately and then on every tick without waiting for
// earlier refreshes. It returns when ctx ends or the order reaches completed
// or cancelled.
func (p *Poller) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{}, 1)
	refresh := func() {
		defer wg.Done()
		if _, err := p.Refresh(ctx); err != nil {
			if ctx.Err() == nil {
				p.logger.Error("status_refresh_failed", "Failed to refresh order status", p.orderID, nil, err)
			}
			return
		}
		if latest := p.Latest(); latest != nil && finished(latest.Status) {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	}

	wg.Add(1)
	go refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-ticker.C:
			wg.Add(1)
			go refresh()
		}
	}
}

func finished(s domain.Status) bool {
	return s == domain.StatusCompleted || s == domain.StatusCancelled
}
