package kvdocs

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryMetrics(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Increment("a")
	m.Increment("a")
	m.Gauge("g", 4.2)
	m.Histogram("h", 1)
	m.Histogram("h", 2)
	m.Timing("t", time.Second)

	if m.Counter("a") != 2 {
		t.Errorf("counter = %d, want 2", m.Counter("a"))
	}
	if m.Gauges["g"] != 4.2 {
		t.Errorf("gauge = %v, want 4.2", m.Gauges["g"])
	}
	if len(m.Histograms["h"]) != 2 {
		t.Errorf("histogram has %d samples, want 2", len(m.Histograms["h"]))
	}
	if len(m.Timings["t"]) != 1 {
		t.Errorf("timing has %d samples, want 1", len(m.Timings["t"]))
	}
}

// TestStore_OperationMetrics tests that CRUD operations are instrumented
func TestStore_OperationMetrics(t *testing.T) {
	ctx := context.Background()
	metrics := NewInMemoryMetrics()
	store := NewStoreWithObservability(NewMemoryBackend(), &NoOpLogger{}, metrics)
	if err := store.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	users := store.Collection("users")

	created, _ := users.Create(ctx, Document{"name": "Alice"})
	users.FindById(ctx, created.ID())
	users.Delete(ctx, created.ID())

	if metrics.Counter(MetricPutSuccess) != 1 {
		t.Errorf("put success = %d, want 1", metrics.Counter(MetricPutSuccess))
	}
	if metrics.Counter(MetricGetSuccess) != 1 {
		t.Errorf("get success = %d, want 1", metrics.Counter(MetricGetSuccess))
	}
	if metrics.Counter(MetricDeleteSuccess) != 1 {
		t.Errorf("delete success = %d, want 1", metrics.Counter(MetricDeleteSuccess))
	}
	if len(metrics.Timings[MetricPutDuration]) != 1 {
		t.Errorf("put duration samples = %d, want 1", len(metrics.Timings[MetricPutDuration]))
	}
}
