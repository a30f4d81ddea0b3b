package http

import (
	"net/http"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type MenuHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.CatalogService, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields domain.MenuItemFields
	if err := decodeJSON(r, &fields); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), fields)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.logger.Info("menu_item_created", "Menu item created", requestID(r), map[string]interface{}{
		"id": item.ID,
	})
	respondData(w, http.StatusCreated, item)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.MenuItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"success": true})
}
