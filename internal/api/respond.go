package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/apperr"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes v as a JSON response with the given status
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError maps a service error onto an HTTP status. Errors outside
// the taxonomy get a generic 500 body; their detail goes to the log
// only, never to the client.
func RespondError(w http.ResponseWriter, logger *logrus.Logger, err error) {
	var ve *apperr.ValidationError

	switch {
	case errors.As(err, &ve):
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Error()})
	case errors.Is(err, apperr.ErrDuplicate):
		RespondJSON(w, http.StatusConflict, ErrorResponse{Error: "username or email already registered"})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		RespondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, apperr.ErrNotFound):
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, apperr.ErrEmptyCart):
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "cart is empty"})
	case errors.Is(err, apperr.ErrInvalidTransition):
		RespondJSON(w, http.StatusConflict, ErrorResponse{Error: "invalid status transition"})
	default:
		logger.WithError(err).Error("Internal error")
		RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
