package kvdocs

import (
	"context"
	"errors"
	"testing"
)

// TestStore_OperationsBeforeConnect tests that every collection operation is
// gated behind an established connection
func TestStore_OperationsBeforeConnect(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())
	users := store.Collection("users")

	if _, err := users.Create(ctx, Document{"name": "Alice"}); !IsNotConnected(err) {
		t.Errorf("Create before Connect: expected ErrNotConnected, got %v", err)
	}
	if _, err := users.FindById(ctx, "x"); !IsNotConnected(err) {
		t.Errorf("FindById before Connect: expected ErrNotConnected, got %v", err)
	}
	if _, err := users.Delete(ctx, "x"); !IsNotConnected(err) {
		t.Errorf("Delete before Connect: expected ErrNotConnected, got %v", err)
	}
	if _, err := users.Find(Query{}).Exec(ctx); !IsNotConnected(err) {
		t.Errorf("Find before Connect: expected ErrNotConnected, got %v", err)
	}
	if _, err := users.CountDocuments(ctx, Query{}); !IsNotConnected(err) {
		t.Errorf("CountDocuments before Connect: expected ErrNotConnected, got %v", err)
	}
}

// TestStore_ConnectThenOperate tests the normal connect-then-use flow
func TestStore_ConnectThenOperate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())

	if err := store.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if _, err := store.Collection("users").Create(ctx, Document{"name": "Alice"}); err != nil {
		t.Errorf("Create after Connect failed: %v", err)
	}
}

// TestStore_ConnectPingFailure tests that a failing ping blocks the connection
func TestStore_ConnectPingFailure(t *testing.T) {
	ctx := context.Background()
	backend := &failingPingBackend{MemoryBackend: NewMemoryBackend()}
	store := NewStore(backend)

	if err := store.Connect(ctx); err == nil {
		t.Fatal("expected Connect to fail when ping fails")
	}

	if _, err := store.Collection("users").Create(ctx, Document{}); !IsNotConnected(err) {
		t.Errorf("expected ErrNotConnected after failed Connect, got %v", err)
	}
}

// TestStore_CloseDisconnects tests that Close revokes the connection gate
func TestStore_CloseDisconnects(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := store.Collection("users").Create(ctx, Document{}); !IsNotConnected(err) {
		t.Errorf("expected ErrNotConnected after Close, got %v", err)
	}
}

// TestStore_ConnectHelper tests the package-level Connect convenience
func TestStore_ConnectHelper(t *testing.T) {
	ctx := context.Background()

	store, err := Connect(ctx, NewMemoryBackend())
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if store.Ping(ctx) != nil {
		t.Error("Ping on a connected store should succeed")
	}
}

type failingPingBackend struct {
	*MemoryBackend
}

func (b *failingPingBackend) Ping(ctx context.Context) error {
	return errors.New("backend down")
}
