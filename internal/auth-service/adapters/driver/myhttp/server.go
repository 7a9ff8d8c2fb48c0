package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"driver-auth/internal/auth-service/adapters/driven/bm"
	"driver-auth/internal/auth-service/adapters/driven/db"
	"driver-auth/internal/auth-service/adapters/driver/myhttp/handle"
	"driver-auth/internal/auth-service/adapters/driver/myhttp/middleware"
	"driver-auth/internal/auth-service/core/ports/driven"
	"driver-auth/internal/auth-service/core/service"
	"driver-auth/internal/config"
	"driver-auth/internal/mylogger"
)

var errServerStopped = errors.New("server stopped")

type Server struct {
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     driven.IDriverEventPublisher
	ctx    context.Context
	appCtx context.Context
	mu      sync.Mutex
	stopped bool
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
	}
}

// Run initializes dependencies and routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	if err := s.initializeDatabase(); err != nil {
		if errors.Is(err, errServerStopped) {
			return nil
		}
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		return err
	}
	mylog.Action("db_connected").Info("Successful database connection")

	s.initializeBroker()

	handler, err := s.Configure()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%v", s.cfg.Srv.AuthServicePort),
		Handler:           handler,
		ReadHeaderTimeout: handle.WaitTime * time.Second,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AuthServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, handle.WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Action("mb_close_failed").Error("Failed to close message broker", err)
		}
	}

	if s.db != nil {
		s.db.Close()
		s.mylog.Action("db_closed").Info("Database closed")
	}

	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure builds repositories, services and handlers and returns the routed handler.
func (s *Server) Configure() (http.Handler, error) {
	driverRepo := db.NewDriverRepo(s.db.Querier())

	tokens, err := service.NewTokenManager(s.cfg.App.PublicJwtSecret)
	if err != nil {
		return nil, err
	}
	driverService := service.NewDriverService(driverRepo, service.NewBcryptHasher(), tokens, s.mb, s.mylog)

	driverHandler := handle.NewDriverHandler(driverService, s.mylog)
	healthHandler := handle.NewHealthHandler(s.db, s.mylog)
	authMiddleware := middleware.NewAuthMiddleware(tokens, s.mylog)

	return Router(driverHandler, healthHandler, authMiddleware, s.mylog), nil
}

func (s *Server) initializeDatabase() error {
	d, err := db.Start(s.ctx, s.cfg.DB, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		d.Close()
		return errServerStopped
	}
	s.db = d
	return nil
}

// initializeBroker never fails the startup: without a broker registrations
// still succeed, they just are not announced.
func (s *Server) initializeBroker() {
	mylog := s.mylog.Action("mb_init")

	var mb driven.IDriverEventPublisher
	if !s.cfg.RabbitMq.Enabled {
		mylog.Info("Message broker disabled")
		mb = bm.NewNoopPublisher(s.mylog)
	} else if rmq, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog); err != nil {
		mylog.Error("Failed to connect to rabbitmq, events will be dropped", err)
		mb = bm.NewNoopPublisher(s.mylog)
	} else {
		mylog.Info("Successful message broker connection")
		mb = rmq
	}

	s.setBroker(mb)
}

// setBroker installs mb unless Stop already ran, in which case mb is closed.
func (s *Server) setBroker(mb driven.IDriverEventPublisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		if err := mb.Close(); err != nil {
			s.mylog.Action("mb_close_failed").Error("Failed to close message broker", err)
		}
		return
	}
	s.mb = mb
}
