package driven

import (
	"context"

	"driver-auth/internal/auth-service/core/domain/models"
)

type IDriverRepo interface {
	// driver id and error
	Create(ctx context.Context, driver models.Driver) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (models.Driver, error)
	GetProfileByID(ctx context.Context, id int64) (models.Profile, error)
}
