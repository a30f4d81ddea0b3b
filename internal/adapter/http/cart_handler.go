package http

import (
	"net/http"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

// CartHandler answers with the bare cart view; errors still use the envelope.
type CartHandler struct {
	service interfaces.CartService
	logger  logger.Logger
}

func NewCartHandler(service interfaces.CartService, logger logger.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

type addToCartRequest struct {
	ID string `json:"id"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.View())
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.AddByID(r.Context(), req.ID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.service.View())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), r.PathValue("id"), req.Quantity); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.service.View())
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveFromCart(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.service.View())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCart(r.Context()); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, h.service.View())
}
