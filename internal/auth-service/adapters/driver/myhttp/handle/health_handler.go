package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"driver-auth/internal/auth-service/adapters/driver/myhttp/response"
	"driver-auth/internal/mylogger"
)

type pinger interface {
	IsAlive(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	mylog mylogger.Logger
}

func NewHealthHandler(db pinger, mylog mylogger.Logger) *HealthHandler {
	return &HealthHandler{db: db, mylog: mylog}
}

func (hh *HealthHandler) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := hh.db.IsAlive(ctx); err != nil {
			hh.mylog.Action("health").Error("database ping failed", err)
			response.JsonError(w, http.StatusServiceUnavailable, errors.New("database unavailable"))
			return
		}
		response.JsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
