package handle

import (
	"errors"
	"net/http"

	"driver-auth/internal/auth-service/adapters/driver/myhttp/response"
	"driver-auth/internal/auth-service/core/myerrors"
	"driver-auth/internal/mylogger"
)

const (
	// WaitTime bounds request handling and shutdown, in seconds.
	WaitTime = 10

	maxBodyBytes = 1 << 20
)

var errInternal = errors.New("internal server error")

// writeServiceError maps service errors onto status codes. Unexpected errors
// are logged and replaced with a generic message.
func writeServiceError(w http.ResponseWriter, mylog mylogger.Logger, err error) {
	switch {
	case errors.Is(err, myerrors.ErrValidation),
		errors.Is(err, myerrors.ErrEmailRegistered):
		response.JsonError(w, http.StatusBadRequest, err)
	case errors.Is(err, myerrors.ErrInvalidCredentials):
		response.JsonError(w, http.StatusBadRequest, myerrors.ErrInvalidCredentials)
	case errors.Is(err, myerrors.ErrInvalidToken):
		response.JsonError(w, http.StatusUnauthorized, myerrors.ErrInvalidToken)
	case errors.Is(err, myerrors.ErrDriverNotFound):
		response.JsonError(w, http.StatusNotFound, myerrors.ErrDriverNotFound)
	default:
		mylog.Error("request failed", err)
		response.JsonError(w, http.StatusInternalServerError, errInternal)
	}
}
