// Package typed provides type-safe collections over the dynamic kvdocs API.
// Items are converted through the JSON codec, so the identity field is
// whichever struct field carries the `json:"id"` tag.
package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kvdocs/kvdocs"
)

// Collection provides type-safe CRUD operations for a specific entity type.
//
// Example:
//
//	type User struct {
//	    ID    string `json:"id"`
//	    Email string `json:"email"`
//	    Age   int    `json:"age"`
//	}
//
//	users := typed.NewCollection[User](store, "users")
//	user, err := users.Create(ctx, &User{Email: "alice@example.com", Age: 25})
type Collection[T any] struct {
	coll *kvdocs.Collection
}

// NewCollection creates a type-safe collection with the given name
func NewCollection[T any](store *kvdocs.Store, name string) *Collection[T] {
	return &Collection[T]{coll: store.Collection(name)}
}

// Create stores a new item and returns a copy with its id populated.
// The input is not modified.
func (c *Collection[T]) Create(ctx context.Context, item *T) (*T, error) {
	if item == nil {
		return nil, fmt.Errorf("item cannot be nil")
	}

	doc, err := toDocument(item)
	if err != nil {
		return nil, err
	}

	created, err := c.coll.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	return fromDocument[T](created)
}

// Get retrieves an item by id. Absence returns (nil, nil).
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.coll.FindById(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return fromDocument[T](doc)
}

// Update shallow-merges patch into the stored item and returns the result.
// Returns (nil, nil) when the id does not exist.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (*T, error) {
	doc, err := c.coll.Update(ctx, id, kvdocs.Document(patch))
	if err != nil || doc == nil {
		return nil, err
	}
	return fromDocument[T](doc)
}

// Delete removes an item by id and returns the backend's removed-key count
func (c *Collection[T]) Delete(ctx context.Context, id string) (int64, error) {
	return c.coll.Delete(ctx, id)
}

// Find returns every item matching the query, in scan order
func (c *Collection[T]) Find(ctx context.Context, query kvdocs.Query) ([]*T, error) {
	docs, err := c.coll.Find(query).Exec(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*T, 0, len(docs))
	for _, doc := range docs {
		item, err := fromDocument[T](doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// All returns every item in the collection.
// WARNING: loads everything into memory, like any full scan here.
func (c *Collection[T]) All(ctx context.Context) ([]*T, error) {
	return c.Find(ctx, kvdocs.Query{})
}

// Count returns the number of items matching the query
func (c *Collection[T]) Count(ctx context.Context, query kvdocs.Query) (int, error) {
	return c.coll.CountDocuments(ctx, query)
}

func toDocument(v interface{}) (kvdocs.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	var doc kvdocs.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert item: %w", err)
	}
	return doc, nil
}

func fromDocument[T any](doc kvdocs.Document) (*T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &item, nil
}
