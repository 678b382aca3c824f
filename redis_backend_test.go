package kvdocs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisTestBackend(t *testing.T) *RedisBackend {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisBackend(client)
}

func TestRedisBackend_Contract(t *testing.T) {
	backendContract(t, newRedisTestBackend(t))
}

// TestRedisBackend_ScanPatternEscaping tests that glob metacharacters in a
// prefix are matched literally
func TestRedisBackend_ScanPatternEscaping(t *testing.T) {
	ctx := context.Background()
	backend := newRedisTestBackend(t)

	backend.Put(ctx, "c[1]:a", []byte("x"))
	backend.Put(ctx, "c1:a", []byte("y"))

	keys, err := backend.Keys(ctx, "c[1]:")
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "c[1]:a" {
		t.Errorf("expected literal prefix match, got %v", keys)
	}
}

// TestRedisBackend_CollectionCRUD runs the document layer end to end over Redis
func TestRedisBackend_CollectionCRUD(t *testing.T) {
	ctx := context.Background()

	store, err := Connect(ctx, newRedisTestBackend(t))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	users := store.Collection("users")
	seedPeople(t, users)

	docs, err := users.Find(Query{"age": Query{OpGTE: 30}}).
		Sort(Desc("age")).
		Exec(ctx)
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if len(docs) != 2 || docs[0]["name"] != "Charlie" || docs[1]["name"] != "Bob" {
		t.Errorf("expected [Charlie, Bob], got %v", docs)
	}

	count, err := users.UpdateMany(ctx, Query{"age": Query{OpLT: 28}}, Document{"age": 26})
	if err != nil {
		t.Fatalf("UpdateMany failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	n, err := users.DeleteMany(ctx, Query{})
	if err != nil {
		t.Fatalf("DeleteMany failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 deletions, got %d", n)
	}
}

// TestRedisBackend_PingFailure tests that a dead server surfaces as unavailable
func TestRedisBackend_PingFailure(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	backend := NewRedisBackend(client)

	mr.Close()

	err := backend.Ping(ctx)
	if err == nil {
		t.Fatal("expected ping failure")
	}
	if !IsRetryable(err) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
}
