package bm

import (
	"context"

	"driver-auth/internal/auth-service/core/domain/dto"
	"driver-auth/internal/auth-service/core/ports/driven"
	"driver-auth/internal/mylogger"
)

// NoopPublisher stands in for RabbitMQ when the broker is disabled.
type NoopPublisher struct {
	log mylogger.Logger
}

var _ driven.IDriverEventPublisher = (*NoopPublisher)(nil)

func NewNoopPublisher(log mylogger.Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) PublishDriverRegistered(ctx context.Context, event dto.DriverRegisteredEvent) error {
	p.log.Action("publish").Debug("broker disabled, dropping event", "driver_id", event.DriverID)
	return nil
}

func (p *NoopPublisher) IsAlive() bool { return true }

func (p *NoopPublisher) Close() error { return nil }
