package kvdocs

import (
	"context"
	"time"
)

// Store wires a Backend together with observability and gates every document
// operation behind an established connection.
type Store struct {
	backend   Backend
	logger    Logger
	metrics   Metrics
	connected bool
}

// NewStore creates a new store with no-op logger and metrics.
// The store must be connected via Connect before any collection is used.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		logger:  &NoOpLogger{},
		metrics: &NoOpMetrics{},
	}
}

// NewStoreWithLogger creates a new store with a custom logger
func NewStoreWithLogger(backend Backend, logger Logger) *Store {
	s := NewStore(backend)
	s.logger = logger
	return s
}

// NewStoreWithObservability creates a new store with logging and metrics
func NewStoreWithObservability(backend Backend, logger Logger, metrics Metrics) *Store {
	s := NewStore(backend)
	s.logger = logger
	s.metrics = metrics
	return s
}

// Connect creates a store on backend and verifies the backend is reachable.
// This is the usual entry point:
//
//	store, err := kvdocs.Connect(ctx, kvdocs.NewRedisBackend(client))
func Connect(ctx context.Context, backend Backend) (*Store, error) {
	s := NewStore(backend)
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Connect pings the backend and marks the store usable. Collection
// operations issued before a successful Connect fail with ErrNotConnected.
// Connect must complete before the store is shared across goroutines.
func (s *Store) Connect(ctx context.Context) error {
	if err := s.backend.Ping(ctx); err != nil {
		return err
	}
	s.connected = true
	s.logger.Info("store connected")
	return nil
}

// SetLogger updates the logger for this store
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// SetMetrics updates the metrics collector for this store
func (s *Store) SetMetrics(metrics Metrics) {
	s.metrics = metrics
}

// Collection returns the CRUD surface for one named collection.
// All its documents share the key prefix "<name>:".
func (s *Store) Collection(name string) *Collection {
	return &Collection{store: s, name: name}
}

// CollectionWithSchema returns a schema-bound collection: on Create, every
// declared field absent from the input is stored as an explicit null.
func (s *Store) CollectionWithSchema(name string, schema Schema) *Collection {
	return &Collection{store: s, name: name, schema: schema}
}

// Ping checks backend health
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Backend returns the underlying backend (for advanced use cases)
func (s *Store) Backend() Backend {
	return s.backend
}

// Close releases resources held by the store and backend
func (s *Store) Close() error {
	s.connected = false
	return s.backend.Close()
}

func (s *Store) ensureConnected() error {
	if !s.connected {
		return ErrNotConnected
	}
	return nil
}

// get/put/delete wrap the backend's single-key primitives with metrics.
// Backend errors propagate verbatim: no retries, no backoff.

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.backend.Get(ctx, key)
	s.metrics.Timing(MetricGetDuration, time.Since(start))

	if err != nil {
		if !IsNotFound(err) {
			s.metrics.Increment(MetricGetError)
		}
		return nil, err
	}

	s.metrics.Increment(MetricGetSuccess)
	return data, nil
}

func (s *Store) put(ctx context.Context, key string, data []byte) error {
	start := time.Now()
	err := s.backend.Put(ctx, key, data)
	s.metrics.Timing(MetricPutDuration, time.Since(start))

	if err != nil {
		s.metrics.Increment(MetricPutError)
		return err
	}

	s.metrics.Increment(MetricPutSuccess)
	return nil
}

func (s *Store) delete(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	count, err := s.backend.Delete(ctx, key)
	s.metrics.Timing(MetricDeleteDuration, time.Since(start))

	if err != nil {
		s.metrics.Increment(MetricDeleteError)
		return 0, err
	}

	s.metrics.Increment(MetricDeleteSuccess)
	return count, nil
}
