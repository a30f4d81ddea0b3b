package http

import (
	"net/http"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type TrackingHandler struct {
	service interfaces.TrackingService
	logger  logger.Logger
}

func NewTrackingHandler(service interfaces.TrackingService, logger logger.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TrackingHandler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetOrderStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

type RevenueHandler struct {
	service interfaces.RevenueService
	logger  logger.Logger
}

func NewRevenueHandler(service interfaces.RevenueService, logger logger.Logger) *RevenueHandler {
	return &RevenueHandler{
		service: service,
		logger:  logger,
	}
}

func (h *RevenueHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.service.GetRevenue(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, data)
}
