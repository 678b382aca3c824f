package kvdocs

// Schema is a metadata-only field list for a collection. It is never
// validated or enforced at runtime; its single job is to fill declared fields
// the caller omitted with explicit JSON nulls when a document is created, so
// every document in a schema-bound collection carries the full field set.
type Schema struct {
	fields []string
}

// NewSchema declares the field set for a schema-bound collection
func NewSchema(fields ...string) Schema {
	return Schema{fields: append([]string(nil), fields...)}
}

// Fields returns the declared field names
func (s Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

// applyDefaults fills declared-but-absent fields with explicit nulls.
// The identity field is managed by Create and skipped here.
func (s Schema) applyDefaults(doc Document) {
	for _, f := range s.fields {
		if f == IDField {
			continue
		}
		if _, ok := doc[f]; !ok {
			doc[f] = nil
		}
	}
}
