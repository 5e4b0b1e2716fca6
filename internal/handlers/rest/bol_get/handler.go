package bol_get

import (
	"net/http"

	"freight/internal/entities"
	"freight/internal/handlers/rest/dto"
	"freight/internal/handlers/rest/httpio"
	"freight/internal/service/mission"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP GET /bols/{id}: накладную видит её водитель и системная роль.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpio.Identity(r)
	if !ok {
		httpio.WriteReason(w, h.log, http.StatusUnauthorized, httpio.ReasonUnauthenticated)
		return
	}

	bolID, err := httpio.PathInt64(r, "id")
	if err != nil {
		httpio.WriteReason(w, h.log, http.StatusBadRequest, httpio.ReasonInvalidRequest)
		return
	}

	bol, err := h.service.GetBOLWithHistory(r.Context(), bolID)
	if err != nil {
		httpio.WriteError(w, h.log, err)
		return
	}

	if identity.Role != entities.RoleSystem && bol.DriverID != identity.DriverID {
		httpio.WriteError(w, h.log, mission.ErrNotMissionOwner)
		return
	}

	httpio.WriteJSON(w, h.log, http.StatusOK, dto.FromBOL(bol))
}
