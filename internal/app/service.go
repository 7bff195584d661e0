// Package service provides the catalog service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/foodie/internal/adapters/repository"
	"github.com/okian/foodie/pkg/logger"
	"github.com/okian/foodie/pkg/metrics"
)

// Service answers catalog queries against a single shared store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store

	// Configuration
	dbPath   string
	readOnly bool

	// State
	started bool
	ownsDB  bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects an already opened store. Stop still closes it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDBPath sets the SQLite file opened by Start when no store is injected.
func WithDBPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dbPath = path
		}
	}
}

// WithReadOnly controls whether Start opens the file read-only.
func WithReadOnly(readOnly bool) Option {
	return func(s *Service) {
		s.readOnly = readOnly
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dbPath:   "./database1.sqlite",
		readOnly: true,
		logger:   nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the store if needed and verifies it answers. Queries are
// refused with ErrNotReady until Start succeeds.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting catalog service...", logger.String("db_path", s.dbPath))

	if s.store == nil {
		store, err := repository.Open(ctx, s.dbPath,
			repository.WithLogger(s.logger.Named("repository")),
			repository.WithReadOnly(s.readOnly),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
		s.store = store
		s.ownsDB = true
	} else if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	s.started = true
	metrics.SetStoreReady(true)
	s.logger.Info(ctx, "catalog service started", logger.Bool("read_only", s.readOnly))

	return nil
}

// Stop marks the service not ready and closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping catalog service...")

	s.started = false
	metrics.SetStoreReady(false)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
		}
		if s.ownsDB {
			s.store = nil
			s.ownsDB = false
		}
	}

	s.logger.Info(context.Background(), "catalog service stopped")
}

// Started reports whether Start has succeeded and Stop has not been called.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Ready returns nil when the service is started and the store answers a ping.
func (s *Service) Ready(ctx context.Context) error {
	store, err := s.current()
	if err != nil {
		return err
	}
	if err := store.Ping(ctx); err != nil {
		metrics.SetStoreReady(false)
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	metrics.SetStoreReady(true)
	return nil
}

// GetStats returns service state for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"started":  s.started,
		"dbPath":   s.dbPath,
		"readOnly": s.readOnly,
	}
}

func (s *Service) current() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.store == nil {
		return nil, ErrNotReady
	}
	return s.store, nil
}
