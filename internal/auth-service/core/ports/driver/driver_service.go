package driver

import (
	"context"

	"driver-auth/internal/auth-service/core/domain/dto"
	"driver-auth/internal/auth-service/core/domain/models"
)

type IDriverService interface {
	Register(ctx context.Context, regReq dto.DriverRegistrationRequest) error
	Login(ctx context.Context, authReq dto.DriverAuthRequest) (string, models.Profile, error)
	GetProfile(ctx context.Context, driverID int64) (models.Profile, error)
}

type ITokenVerifier interface {
	Verify(token string) (models.Claims, error)
}
