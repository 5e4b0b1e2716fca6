package load_reserve_post

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

// ServeHTTP POST /loads/{id}/reserve; без hold_seconds действует удержание по умолчанию.
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

	var req dto.ReserveRequest
	err = httpio.Decode(r, &req)
	if err != nil {
		httpio.WriteReason(w, h.log, http.StatusBadRequest, httpio.ReasonInvalidRequest)
		return
	}

	res, err := h.service.Reserve(r.Context(), identity.DriverID, loadID, req.ToHold())
	if err != nil {
		httpio.WriteError(w, h.log, err)
		return
	}

	httpio.WriteJSON(w, h.log, http.StatusOK, dto.FromReservation(res))
}
