package http

import (
	"net/http"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

type SessionHandler struct {
	service interfaces.SessionService
	logger  logger.Logger
}

func NewSessionHandler(service interfaces.SessionService, logger logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger,
	}
}

type tableRequest struct {
	TableNumber string `json:"tableNumber"`
}

type loginRequest struct {
	Password string `json:"password"`
}

// ValidateTable always succeeds; validity is reported in the payload.
func (h *SessionHandler) ValidateTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, h.service.ValidateTable(r.Context(), req.TableNumber))
}

func (h *SessionHandler) SetTable(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.SetTable(r.Context(), req.TableNumber); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.Table(w, r)
}

func (h *SessionHandler) Table(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Table(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, tableRequest{TableNumber: table})
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.service.Login(r.Context(), req.Password); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"loggedIn": true})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"loggedIn": false})
}
