package kvdocs

import (
	"context"
	"sort"
)

// SortKey is one component of a sort specification: a field name and a
// direction (+1 ascending, -1 descending).
type SortKey struct {
	Field     string
	Direction int
}

// Asc sorts a field in ascending order
func Asc(field string) SortKey { return SortKey{Field: field, Direction: 1} }

// Desc sorts a field in descending order
func Desc(field string) SortKey { return SortKey{Field: field, Direction: -1} }

// FindBuilder is a deferred, chainable result pipeline over one collection
// scan. The builder records intents, not a pipeline order: Exec always
// applies sort, then skip, then limit, regardless of the syntactic order the
// methods were chained in.
//
// Example:
//
//	docs, err := users.Find(kvdocs.Query{"age": kvdocs.Query{kvdocs.OpGTE: 30}}).
//	    Sort(kvdocs.Desc("age")).
//	    Skip(10).
//	    Limit(5).
//	    Exec(ctx)
type FindBuilder struct {
	coll  *Collection
	query Query
	sort  []SortKey
	skip  int
	limit int
}

// Sort sets the sort specification: a stable multi-key comparator, keys
// applied in the order given, first unequal key decides. Documents with
// missing or mixed-type values for a key compare as ties; the comparator is
// not total-order-safe for such sets.
func (b *FindBuilder) Sort(keys ...SortKey) *FindBuilder {
	b.sort = keys
	return b
}

// Skip drops the first n documents of the sorted result. n <= 0 is a no-op.
func (b *FindBuilder) Skip(n int) *FindBuilder {
	b.skip = n
	return b
}

// Limit truncates the result (after skip) to at most n documents.
// A negative n means unbounded, which is also the default.
func (b *FindBuilder) Limit(n int) *FindBuilder {
	b.limit = n
	return b
}

// Exec runs the scan and materializes the final ordered result
func (b *FindBuilder) Exec(ctx context.Context) ([]Document, error) {
	docs, err := b.coll.scan(ctx, b.query)
	if err != nil {
		return nil, err
	}

	sortDocuments(docs, b.sort)

	if b.skip > 0 {
		if b.skip >= len(docs) {
			docs = nil
		} else {
			docs = docs[b.skip:]
		}
	}

	if b.limit >= 0 && len(docs) > b.limit {
		docs = docs[:b.limit]
	}

	return docs, nil
}

// Count returns the cardinality of the filtered result, before skip/limit
func (b *FindBuilder) Count(ctx context.Context) (int, error) {
	docs, err := b.coll.scan(ctx, b.query)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func sortDocuments(docs []Document, keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			c, ok := compareValues(docs[i][k.Field], docs[j][k.Field])
			if !ok || c == 0 {
				continue // Tie falls through to the next key
			}
			if k.Direction < 0 {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}
