package myhttp

import (
	"context"
	"testing"

	"driver-auth/internal/auth-service/adapters/driven/bm"
	"driver-auth/internal/config"
	"driver-auth/internal/mylogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeCountingPublisher struct {
	*bm.NoopPublisher
	closed int
}

func (p *closeCountingPublisher) Close() error {
	p.closed++
	return nil
}

func newLifecycleTestServer() *Server {
	cfg := &config.Config{RabbitMq: &config.RabbitMqconfig{Enabled: false}}
	return NewServer(context.Background(), context.Background(), mylogger.Discard(), cfg)
}

func TestServer_StopConcurrentWithBrokerInit(t *testing.T) {
	s := newLifecycleTestServer()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.initializeBroker()
	}()

	require.NoError(t, s.Stop(context.Background()))
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.True(t, s.stopped)
}

func TestServer_SetBrokerAfterStopClosesIt(t *testing.T) {
	s := newLifecycleTestServer()
	require.NoError(t, s.Stop(context.Background()))

	pub := &closeCountingPublisher{NoopPublisher: bm.NewNoopPublisher(mylogger.Discard())}
	s.setBroker(pub)

	assert.Equal(t, 1, pub.closed)
	assert.Nil(t, s.mb)
}

func TestServer_SetBrokerBeforeStop(t *testing.T) {
	s := newLifecycleTestServer()

	pub := &closeCountingPublisher{NoopPublisher: bm.NewNoopPublisher(mylogger.Discard())}
	s.setBroker(pub)
	assert.Same(t, pub, s.mb)

	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 1, pub.closed)
}
