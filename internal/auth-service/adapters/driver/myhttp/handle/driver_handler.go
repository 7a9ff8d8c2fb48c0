package handle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"driver-auth/internal/auth-service/adapters/driver/myhttp/middleware"
	"driver-auth/internal/auth-service/adapters/driver/myhttp/response"
	"driver-auth/internal/auth-service/core/domain/dto"
	"driver-auth/internal/auth-service/core/myerrors"
	"driver-auth/internal/auth-service/core/ports/driver"
	"driver-auth/internal/mylogger"
)

type DriverHandler struct {
	driverService driver.IDriverService
	mylog         mylogger.Logger
}

func NewDriverHandler(driverService driver.IDriverService, mylog mylogger.Logger) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		mylog:         mylog,
	}
}

func (dh *DriverHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var regReq dto.DriverRegistrationRequest

		mylog := dh.mylog.Action("Register")

		if err := decodeJSON(w, r, &regReq); err != nil {
			mylog.Debug("Failed to parse registration", "error", err.Error())
			response.JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := dh.driverService.Register(ctx, regReq); err != nil {
			writeServiceError(w, mylog, err)
			return
		}

		response.JsonResponse(w, http.StatusCreated, dto.MessageResponse{
			Message: "Registrasi berhasil, status: pending",
		})
	}
}

func (dh *DriverHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var authReq dto.DriverAuthRequest

		mylog := dh.mylog.Action("Login")

		if err := decodeJSON(w, r, &authReq); err != nil {
			mylog.Debug("Failed to parse login", "error", err.Error())
			response.JsonError(w, http.StatusBadRequest, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		token, profile, err := dh.driverService.Login(ctx, authReq)
		if err != nil {
			writeServiceError(w, mylog, err)
			return
		}

		response.JsonResponse(w, http.StatusOK, dto.LoginResponse{
			Message: "Login berhasil",
			Token:   token,
			Driver:  profile,
		})
	}
}

func (dh *DriverHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := dh.mylog.Action("Profile")

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.JsonError(w, http.StatusUnauthorized, myerrors.ErrInvalidToken)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		profile, err := dh.driverService.GetProfile(ctx, claims.DriverID)
		if err != nil {
			writeServiceError(w, mylog, err)
			return
		}

		response.JsonResponse(w, http.StatusOK, dto.ProfileResponse{Driver: profile})
	}
}

func (dh *DriverHandler) Coba() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Text(w, http.StatusOK, "POST /coba berhasil")
	}
}

func (dh *DriverHandler) Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Text(w, http.StatusOK, "Auth service jalan")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to parse JSON", myerrors.ErrValidation)
	}
	return nil
}
