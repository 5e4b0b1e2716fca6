package load_reservation_delete

import (
	"net/http"

	"freight/internal/handlers/rest/dto"
	"freight/internal/handlers/rest/httpio"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpio.Identity(r)
	if !ok {
		httpio.WriteReason(w, h.log, http.StatusUnauthorized, httpio.ReasonUnauthenticated)
		return
	}

	loadID, err := httpio.PathInt64(r, "id")
	if err != nil {
		httpio.WriteReason(w, h.log, http.StatusBadRequest, httpio.ReasonInvalidRequest)
		return
	}

	res, err := h.service.CancelReservation(r.Context(), identity.DriverID, loadID)
	if err != nil {
		httpio.WriteError(w, h.log, err)
		return
	}

	httpio.WriteJSON(w, h.log, http.StatusOK, dto.FromRelease(res))
}
