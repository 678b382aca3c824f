package kvdocs

import (
	"encoding/json"
)

// IDField is the reserved identity field name. It is present and non-empty on
// every persisted document, immutable after create, and unique within a
// collection.
const IDField = "id"

// Document is one stored record: an open mapping from field name to a JSON
// scalar (string, number, bool, null) or an array of scalars, plus the
// reserved identity field.
type Document map[string]interface{}

// ID returns the document's identity field value, or "" when unset
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns an independent copy of the document.
// Array values are copied; scalars are immutable and shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		if arr, ok := v.([]interface{}); ok {
			cp := make([]interface{}, len(arr))
			copy(cp, arr)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}

// Merge applies a shallow merge: every field in patch overwrites the
// corresponding field in d, untouched fields remain. Nested values are
// replaced wholesale, never deep-merged. The identity field is immutable and
// silently ignored in patches.
func (d Document) Merge(patch Document) {
	for k, v := range patch {
		if k == IDField {
			continue
		}
		d[k] = v
	}
}

// EncodeDocument serializes a document to its stored byte representation.
// Values JSON cannot represent faithfully (NaN, Inf, cycles) surface as
// ErrEncoding rather than being silently dropped.
func EncodeDocument(d Document) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, WithContext(ErrEncoding, map[string]interface{}{
			"cause": err.Error(),
		})
	}
	return data, nil
}

// DecodeDocument parses the stored byte representation of a document
func DecodeDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, WithContext(ErrDecoding, map[string]interface{}{
			"cause": err.Error(),
		})
	}
	return d, nil
}
