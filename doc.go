// Package kvdocs emulates a document database on top of any schemaless
// key-value store that offers only get/set/delete and prefix key enumeration.
// It provides Mongo-flavored collections (create, find, update, delete,
// filtering, sorting, pagination) without requiring an actual document
// database: Redis, S3, the local filesystem or an in-process map all work as
// backends.
//
// # Overview
//
// Every document is one key-value pair. The key is "<collection>:<id>", the
// value is the JSON encoding of the document including its "id" field.
// Queries are answered by a full scan of the collection namespace filtered
// through a predicate evaluator; there are no secondary indexes, so every
// multi-document operation is O(collection size) in backend round-trips.
//
// # Quick Start
//
// Basic usage with the in-memory backend:
//
//	store, err := kvdocs.Connect(ctx, kvdocs.NewMemoryBackend())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	users := store.Collection("users")
//
//	// Create: an id is generated when absent
//	doc, _ := users.Create(ctx, kvdocs.Document{"name": "Alice", "age": 25})
//
//	// Point lookup: absence returns (nil, nil), never an error
//	doc, _ = users.FindById(ctx, doc.ID())
//
//	// Query with operators, then sort/skip/limit
//	docs, _ := users.Find(kvdocs.Query{"age": kvdocs.Query{kvdocs.OpGTE: 30}}).
//	    Sort(kvdocs.Desc("age")).
//	    Limit(10).
//	    Exec(ctx)
//
// Production setup with Redis and observability:
//
//	redisClient := redis.NewClient(kvdocs.RedisOptions())
//	backend := kvdocs.NewRedisBackend(redisClient)
//
//	logger, _ := kvdocs.NewProductionZapLogger()
//	metrics := kvdocs.NewPrometheusMetrics(prometheus.DefaultRegisterer)
//	store := kvdocs.NewStoreWithObservability(backend, logger, metrics)
//	if err := store.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Core Concepts
//
// Backend: the minimal key-value contract (Get, Put, Delete with a removed
// count, Keys by prefix, Ping, Close). Redis is the canonical production
// backend; filesystem and memory backends serve development and tests, and
// an S3 backend stores one object per document.
//
// Store: wraps a Backend with structured logging and metrics and gates all
// collection operations behind Connect. Operations on an unconnected store
// fail with ErrNotConnected.
//
// Collection: the CRUD surface over one key namespace. Create is a blind
// overwrite by id (never existence-checked). Update merges shallowly.
// UpdateMany/DeleteMany apply mutations document by document with no
// cross-key atomicity: a failure partway leaves earlier documents mutated.
//
// Query: conjunctive field conditions, either literal values (strict,
// type-sensitive equality) or operator objects ($gt, $gte, $lt, $lte, $in,
// $nin, $ne). Unknown operators fail closed.
//
// FindBuilder: a deferred sort/skip/limit pipeline over one materialized
// scan. Exec always evaluates sort, then skip, then limit, regardless of the
// order the methods were chained in.
//
// For type-safe access backed by Go structs, see the typed subpackage.
package kvdocs
