package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/noteshq/notes-api/internal/apperr"
	"github.com/noteshq/notes-api/internal/logger"
)

// Response is the envelope wrapping every JSON reply.
// swagger:model Response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries the client-visible error message.
// swagger:model ErrorBody
type ErrorBody struct {
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Error: &ErrorBody{Message: message}})
}

// writeAppError maps an error kind to its status code. Unknown errors
// come out of apperr.KindOf as internal, so the client body never carries
// the original error detail.
func writeAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuthentication:
		status = http.StatusUnauthorized
	case apperr.KindAuthorization, apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		logger.Log.Errorw("internal server error", "err", err)
	}

	writeError(w, status, apperr.MessageOf(err))
}
