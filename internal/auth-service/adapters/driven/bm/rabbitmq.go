package bm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"driver-auth/internal/auth-service/core/domain/dto"
	"driver-auth/internal/auth-service/core/ports/driven"
	"driver-auth/internal/config"
	"driver-auth/internal/mylogger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	driverExchangeName      = "driver_topic" // topic
	driverRegisteredRouting = "driver.registered"
	reconnInterval          = 5 // seconds
	publishTimeout          = 3 * time.Second
)

var ErrBrokerClosed = errors.New("amqp closed")

type RabbitMQ struct {
	ctx          context.Context
	cfg          config.RabbitMqconfig
	log          mylogger.Logger
	conn         *amqp.Connection
	ch           *amqp.Channel
	reconnecting bool
	mu           *sync.Mutex
}

var _ driven.IDriverEventPublisher = (*RabbitMQ)(nil)

// New dials the broker and declares the driver exchange. ctx bounds the
// lifetime of background reconnect attempts.
func New(ctx context.Context, rabbitmqCfg config.RabbitMqconfig, log mylogger.Logger) (*RabbitMQ, error) {
	r := &RabbitMQ{
		ctx: ctx,
		cfg: rabbitmqCfg,
		log: log,
		mu:  &sync.Mutex{},
	}
	if err := r.connect(); err != nil {
		return nil, fmt.Errorf("rabbit connect: %w", err)
	}
	return r, nil
}

func (r *RabbitMQ) PublishDriverRegistered(ctx context.Context, event dto.DriverRegisteredEvent) error {
	return r.PublishJSON(ctx, driverExchangeName, driverRegisteredRouting, event)
}

func (r *RabbitMQ) PublishJSON(ctx context.Context, exchange, routingKey string, msg any) error {
	if !r.IsAlive() {
		r.log.Action("publish").Error("amqp not alive", ErrBrokerClosed)
		go r.reconnect(r.ctx)
		return ErrBrokerClosed
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	pubctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	r.mu.Lock()
	ch := r.ch
	r.mu.Unlock()

	return ch.PublishWithContext(pubctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (r *RabbitMQ) IsAlive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil || r.conn.IsClosed() {
		return false
	}
	if r.ch == nil || r.ch.IsClosed() {
		return false
	}
	return true
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close channel: %w", err)
		}
	}
	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(r.cfg.URL())
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	if err := ch.ExchangeDeclare(driverExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	r.mu.Lock()
	r.conn = conn
	r.ch = ch
	r.mu.Unlock()
	return nil
}

func (r *RabbitMQ) reconnect(ctx context.Context) {
	r.mu.Lock()
	if r.reconnecting {
		r.mu.Unlock()
		return
	}
	r.reconnecting = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.reconnecting = false
		r.mu.Unlock()
	}()

	t := time.NewTicker(time.Duration(reconnInterval) * time.Second)
	defer t.Stop()
	l := r.log.Action("mb_reconnecting")

	for {
		select {
		case <-t.C:
			if err := r.connect(); err == nil {
				l.Action("mb_reconnection_completed").Info("reconnected")
				return
			}
			l.Info("reconnect failed")
		case <-ctx.Done():
			return
		}
	}
}
