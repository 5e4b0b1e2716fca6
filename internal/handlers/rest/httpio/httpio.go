package httpio

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"freight/internal/entities"
	"freight/internal/pkg/middlewares/auth"
	"freight/pkg/logger"

	"github.com/gorilla/mux"
)

var errBadPathParam = errors.New("bad path parameter")

type errorBody struct {
	Reason Reason `json:"reason"`
}

func WriteJSON(w http.ResponseWriter, log handlerLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func WriteReason(w http.ResponseWriter, log handlerLogger, status int, reason Reason) {
	WriteJSON(w, log, status, errorBody{Reason: reason})
}

// WriteError 5xx логируются с исходной ошибкой, причина наружу уходит обезличенной.
func WriteError(w http.ResponseWriter, log handlerLogger, err error) {
	status, reason := ReasonFor(err)
	if status >= http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
	}
	WriteReason(w, log, status, reason)
}

// Decode пустое тело допустимо: все поля запроса необязательны либо проверяются сервисом.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errBadPathParam
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, errBadPathParam
	}
	return v, nil
}

func PathInt(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errBadPathParam
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errBadPathParam
	}
	return v, nil
}

// Identity водитель из сессии; без неё запрос до обработчика не доходит.
func Identity(r *http.Request) (entities.Identity, bool) {
	return auth.IdentityFrom(r.Context())
}
