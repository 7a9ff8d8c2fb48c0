package myhttp

import (
	"net/http"

	"driver-auth/internal/auth-service/adapters/driver/myhttp/handle"
	"driver-auth/internal/auth-service/adapters/driver/myhttp/middleware"
	"driver-auth/internal/mylogger"
)

// Router wires the public routes. Only /profile sits behind the auth gate.
func Router(
	driverHandler *handle.DriverHandler,
	healthHandler *handle.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	mylog mylogger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /register", driverHandler.Register())
	mux.Handle("POST /login", driverHandler.Login())
	mux.Handle("GET /profile", authMiddleware.Wrap(driverHandler.Profile()))
	mux.Handle("POST /coba", driverHandler.Coba())
	mux.Handle("GET /healthz", healthHandler.Health())
	mux.Handle("GET /{$}", driverHandler.Root())

	return middleware.RequestLogger(mylog, mux)
}
