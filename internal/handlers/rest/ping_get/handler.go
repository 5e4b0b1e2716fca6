package ping_get

import (
	"net/http"
	"time"

	"freight/internal/handlers/rest/dto"
	"freight/internal/handlers/rest/httpio"
)

type Handler struct {
	log handlerLogger
	now func() time.Time
}

func New(log handlerLogger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log: handlerLog,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// ServeHTTP отдает время сервера: по нему водители сверяют часы с окнами доставки.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	httpio.WriteJSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message:    "pong",
		ServerTime: h.now(),
	})
}
