package kvdocs

import (
	"context"
	"time"
)

// Collection is the public CRUD surface over one key namespace. Every
// multi-document operation runs a full scan of the namespace; there is no
// index, so find/updateMany/deleteMany/count are all O(collection size) in
// backend round-trips.
type Collection struct {
	store  *Store
	name   string
	schema Schema // zero value = schemaless
}

// Name returns the collection name
func (c *Collection) Name() string {
	return c.name
}

// Key returns the backend key addressing one document
func (c *Collection) Key(id string) string {
	return c.name + ":" + id
}

// FindOneAndUpdateOptions controls FindOneAndUpdate behavior
type FindOneAndUpdateOptions struct {
	// ReturnNew selects whether the post-update document is returned.
	// The default (false) returns the pre-update document, matching the
	// common cause of caller surprise: opt in explicitly for the new one.
	ReturnNew bool
}

// Create persists a document and returns the stored copy. An id is generated
// when the input lacks one; a caller-supplied id is kept. Create never checks
// for an existing document with the same id: it is a blind overwrite
// (idempotent-by-id upsert), by contract. For a schema-bound collection,
// declared fields absent from the input are stored as explicit nulls.
func (c *Collection) Create(ctx context.Context, doc Document) (Document, error) {
	if err := c.store.ensureConnected(); err != nil {
		return nil, err
	}

	stored := doc.Clone()
	if stored == nil {
		stored = Document{}
	}

	id := stored.ID()
	if id == "" {
		id = NewID()
		stored[IDField] = id
	}

	c.schema.applyDefaults(stored)

	data, err := EncodeDocument(stored)
	if err != nil {
		return nil, err
	}

	if err := c.store.put(ctx, c.Key(id), data); err != nil {
		return nil, err
	}

	c.store.logger.Debug("document created", "collection", c.name, "id", id)
	return stored, nil
}

// InsertMany creates documents sequentially and returns the ids stored so
// far. The first failure aborts; earlier documents stay persisted.
func (c *Collection) InsertMany(ctx context.Context, docs []Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		stored, err := c.Create(ctx, doc)
		if err != nil {
			return ids, err
		}
		ids = append(ids, stored.ID())
	}
	return ids, nil
}

// FindById retrieves a document by id with a single backend get.
// Absence is a normal outcome: it returns (nil, nil), never an error.
func (c *Collection) FindById(ctx context.Context, id string) (Document, error) {
	if err := c.store.ensureConnected(); err != nil {
		return nil, err
	}

	data, err := c.store.get(ctx, c.Key(id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return DecodeDocument(data)
}

// Exists reports whether a document with the given id is stored
func (c *Collection) Exists(ctx context.Context, id string) (bool, error) {
	doc, err := c.FindById(ctx, id)
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}

// Update applies a shallow merge to the document with the given id: supplied
// fields overwrite, others stay untouched, nested values are replaced
// wholesale. Returns (nil, nil) when the id does not exist.
func (c *Collection) Update(ctx context.Context, id string, patch Document) (Document, error) {
	doc, err := c.FindById(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}

	doc.Merge(patch)

	data, err := EncodeDocument(doc)
	if err != nil {
		return nil, err
	}

	if err := c.store.put(ctx, c.Key(id), data); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes the document with the given id and returns the number of
// keys the backend removed (0 or 1), not a boolean.
func (c *Collection) Delete(ctx context.Context, id string) (int64, error) {
	if err := c.store.ensureConnected(); err != nil {
		return 0, err
	}
	return c.store.delete(ctx, c.Key(id))
}

// Find starts a deferred query over the collection. The returned builder
// executes a full scan on Exec and then applies sort, skip and limit.
func (c *Collection) Find(query Query) *FindBuilder {
	return &FindBuilder{
		coll:  c,
		query: query,
		limit: -1, // No limit by default
	}
}

// FindOne returns the first matching document in scan order, which is the
// backend's key-enumeration order and therefore arbitrary.
// Returns (nil, nil) when nothing matches.
func (c *Collection) FindOne(ctx context.Context, query Query) (Document, error) {
	return c.findFirst(ctx, query)
}

// UpdateMany merges patch into every matching document, one at a time.
// Returns the number of documents actually processed. There is no atomicity:
// an error partway leaves earlier documents updated and later ones untouched
// (at-least-once, non-transactional).
func (c *Collection) UpdateMany(ctx context.Context, query Query, patch Document) (int, error) {
	docs, err := c.scan(ctx, query)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, doc := range docs {
		doc.Merge(patch)

		data, err := EncodeDocument(doc)
		if err != nil {
			return count, err
		}
		if err := c.store.put(ctx, c.Key(doc.ID()), data); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// DeleteMany deletes every matching document, one at a time. Returns the
// number of documents processed, not a backend-reported count. Same
// non-transactional semantics as UpdateMany.
func (c *Collection) DeleteMany(ctx context.Context, query Query) (int, error) {
	docs, err := c.scan(ctx, query)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, doc := range docs {
		if _, err := c.store.delete(ctx, c.Key(doc.ID())); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// FindOneAndUpdate merges patch into the first matching document in scan
// order and persists it. With a nil opts or ReturnNew false it returns the
// pre-update document; set ReturnNew to get the stored result.
// Returns (nil, nil) when nothing matches.
func (c *Collection) FindOneAndUpdate(ctx context.Context, query Query, patch Document, opts *FindOneAndUpdateOptions) (Document, error) {
	doc, err := c.findFirst(ctx, query)
	if err != nil || doc == nil {
		return nil, err
	}

	before := doc.Clone()
	doc.Merge(patch)

	data, err := EncodeDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := c.store.put(ctx, c.Key(doc.ID()), data); err != nil {
		return nil, err
	}

	if opts != nil && opts.ReturnNew {
		return doc, nil
	}
	return before, nil
}

// FindOneAndDelete deletes the first matching document in scan order and
// returns it, or (nil, nil) when nothing matches.
func (c *Collection) FindOneAndDelete(ctx context.Context, query Query) (Document, error) {
	doc, err := c.findFirst(ctx, query)
	if err != nil || doc == nil {
		return nil, err
	}

	if _, err := c.store.delete(ctx, c.Key(doc.ID())); err != nil {
		return nil, err
	}

	return doc, nil
}

// CountDocuments returns the number of matching documents. It materializes
// the full result set rather than short-circuit counting, a deliberate
// simplicity trade-off.
func (c *Collection) CountDocuments(ctx context.Context, query Query) (int, error) {
	docs, err := c.scan(ctx, query)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// scan is the universal substrate beneath every multi-document operation: it
// enumerates all keys in the collection namespace, decodes each entry and
// filters through the query. Malformed stored entries are skipped with a
// warning and a metric, never aborting the scan. The context is checked
// between keys so large scans can be cancelled.
func (c *Collection) scan(ctx context.Context, query Query) ([]Document, error) {
	if err := c.store.ensureConnected(); err != nil {
		return nil, err
	}

	start := time.Now()

	keys, err := c.store.backend.Keys(ctx, c.name+":")
	if err != nil {
		return nil, err
	}

	var docs []Document
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		data, err := c.store.get(ctx, key)
		if err != nil {
			if IsNotFound(err) {
				continue // Deleted between enumeration and read
			}
			return nil, err
		}

		doc, err := DecodeDocument(data)
		if err != nil {
			c.store.logger.Warn("skipping undecodable document", "key", key, "error", err)
			c.store.metrics.Increment(MetricScanDecodeSkip)
			continue
		}

		if query.Matches(doc) {
			docs = append(docs, doc)
		}
	}

	duration := time.Since(start)
	c.store.metrics.Timing(MetricScanDuration, duration, "collection", c.name)
	c.store.metrics.Histogram(MetricScanResults, float64(len(docs)), "collection", c.name)
	c.store.logger.Debug("collection scanned",
		"collection", c.name,
		"keys", len(keys),
		"matches", len(docs),
		"duration_ms", duration.Milliseconds(),
	)

	return docs, nil
}

// findFirst is the single-result variant of scan: it stops at the first
// match instead of materializing the full result set.
func (c *Collection) findFirst(ctx context.Context, query Query) (Document, error) {
	if err := c.store.ensureConnected(); err != nil {
		return nil, err
	}

	keys, err := c.store.backend.Keys(ctx, c.name+":")
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		data, err := c.store.get(ctx, key)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}

		doc, err := DecodeDocument(data)
		if err != nil {
			c.store.logger.Warn("skipping undecodable document", "key", key, "error", err)
			c.store.metrics.Increment(MetricScanDecodeSkip)
			continue
		}

		if query.Matches(doc) {
			return doc, nil
		}
	}

	return nil, nil
}
