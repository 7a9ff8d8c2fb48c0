package driven

import (
	"context"

	"driver-auth/internal/auth-service/core/domain/dto"
)

// IDriverEventPublisher hands driver lifecycle events to the message broker.
type IDriverEventPublisher interface {
	PublishDriverRegistered(ctx context.Context, event dto.DriverRegisteredEvent) error
	IsAlive() bool
	Close() error
}
