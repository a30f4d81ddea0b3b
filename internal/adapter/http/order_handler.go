package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	orders   interfaces.OrderService
	payments interfaces.PaymentService
	logger   logger.Logger
}

func NewOrderHandler(orders interfaces.OrderService, payments interfaces.PaymentService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

type CreateOrderRequest struct {
	TableNumber string            `json:"tableNumber"`
	Items       []domain.CartItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status domain.Status `json:"status"`
}

type PaymentRequest struct {
	OrderID string           `json:"orderId"`
	Amount  *decimal.Decimal `json:"amount"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	placement, err := h.orders.CreateOrder(r.Context(), req.TableNumber, req.Items)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, placement)
}

// ListOrders takes both start and end, or neither for the full history.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")

	var rng *domain.DateRange
	if start != "" || end != "" {
		parsed, err := domain.ParseDateRange(start, end, h.orders.Location())
		if err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		rng = &parsed
	}

	orders, err := h.orders.ListOrders(r.Context(), rng)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, order)
}

// AuthorizePayment charges an unpaid order and confirms it on success. The
// amount must equal the order's total. A declined payment leaves the order
// awaiting payment.
func (h *OrderHandler) AuthorizePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if req.Amount == nil {
		respondError(w, r, h.logger, domain.ValidationError{Field: "amount", Message: "amount is required"})
		return
	}

	order, err := h.orders.GetOrder(r.Context(), req.OrderID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if order.Status != domain.StatusPendingPayment {
		respondError(w, r, h.logger, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, domain.ErrInvalidStatusTransition))
		return
	}
	if !req.Amount.Equal(order.TotalAmount) {
		respondError(w, r, h.logger, domain.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("amount %s does not match order total %s", req.Amount.String(), order.TotalAmount.String()),
		})
		return
	}

	auth, err := h.payments.Authorize(r.Context(), order.ID, order.TotalAmount)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentDeclined) && auth != nil {
			respondJSON(w, http.StatusPaymentRequired, envelope{Data: auth, Error: err.Error()})
			return
		}
		respondError(w, r, h.logger, err)
		return
	}

	if _, err := h.orders.ConfirmPayment(r.Context(), req.OrderID); err != nil {
		h.logger.Error("confirm_failed", fmt.Sprintf("Payment %s authorized but order not confirmed", auth.TransactionID), requestID(r), map[string]interface{}{
			"order_id": req.OrderID,
		}, err)
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, auth)
}

type CheckoutHandler struct {
	service interfaces.CheckoutService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.Submit(r.Context())
	h.respondReceipt(w, r, receipt, err)
}

func (h *CheckoutHandler) Retry(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.RetryPayment(r.Context(), r.PathValue("id"))
	h.respondReceipt(w, r, receipt, err)
}

// A declined payment still carries the receipt so the client knows which
// order to retry.
func (h *CheckoutHandler) respondReceipt(w http.ResponseWriter, r *http.Request, receipt *interfaces.Receipt, err error) {
	switch {
	case err == nil:
		respondData(w, http.StatusCreated, receipt)
	case errors.Is(err, domain.ErrPaymentDeclined) && receipt != nil:
		respondJSON(w, http.StatusPaymentRequired, envelope{Data: receipt, Error: err.Error()})
	default:
		respondError(w, r, h.logger, err)
	}
}
