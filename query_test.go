package kvdocs

import "testing"

// TestQuery_EmptyMatchesEverything tests that an empty query matches any document
func TestQuery_EmptyMatchesEverything(t *testing.T) {
	docs := []Document{
		{},
		{"id": "a"},
		{"id": "b", "name": "Alice", "age": float64(25)},
	}

	for _, doc := range docs {
		if !(Query{}).Matches(doc) {
			t.Errorf("empty query should match %v", doc)
		}
	}
}

// TestQuery_Equality tests strict, type-sensitive equality
func TestQuery_Equality(t *testing.T) {
	doc := Document{"name": "Alice", "age": float64(25), "active": true, "note": nil}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"string match", Query{"name": "Alice"}, true},
		{"string mismatch", Query{"name": "Bob"}, false},
		{"number match", Query{"age": 25}, true},
		{"number match float", Query{"age": 25.0}, true},
		{"string does not match number", Query{"age": "25"}, false},
		{"number does not match string", Query{"name": 5}, false},
		{"bool match", Query{"active": true}, true},
		{"bool mismatch", Query{"active": false}, false},
		{"null match", Query{"note": nil}, true},
		{"absent field", Query{"missing": "x"}, false},
		{"conjunction all match", Query{"name": "Alice", "age": 25}, true},
		{"conjunction one fails", Query{"name": "Alice", "age": 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(doc); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// TestQuery_OrderingOperators tests $gt/$gte/$lt/$lte semantics
func TestQuery_OrderingOperators(t *testing.T) {
	doc := Document{"age": float64(30), "name": "Bob"}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"gt true", Query{"age": Query{OpGT: 25}}, true},
		{"gt false equal", Query{"age": Query{OpGT: 30}}, false},
		{"gte true equal", Query{"age": Query{OpGTE: 30}}, true},
		{"gte false", Query{"age": Query{OpGTE: 31}}, false},
		{"lt true", Query{"age": Query{OpLT: 31}}, true},
		{"lt false equal", Query{"age": Query{OpLT: 30}}, false},
		{"lte true equal", Query{"age": Query{OpLTE: 30}}, true},
		{"lte false", Query{"age": Query{OpLTE: 29}}, false},
		{"range match", Query{"age": Query{OpGTE: 25, OpLT: 65}}, true},
		{"range miss", Query{"age": Query{OpGT: 30, OpLT: 65}}, false},
		{"string ordering", Query{"name": Query{OpGT: "Alice"}}, true},
		{"string vs number incomparable", Query{"name": Query{OpGT: 5}}, false},
		{"ordering against absent field", Query{"missing": Query{OpGT: 0}}, false},
		{"lte against absent field", Query{"missing": Query{OpLTE: 1000}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(doc); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// TestQuery_MembershipOperators tests $in/$nin
func TestQuery_MembershipOperators(t *testing.T) {
	doc := Document{"role": "admin", "age": float64(30)}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"in match", Query{"role": Query{OpIn: []interface{}{"admin", "owner"}}}, true},
		{"in miss", Query{"role": Query{OpIn: []interface{}{"viewer", "editor"}}}, false},
		{"in typed slice", Query{"age": Query{OpIn: []int{25, 30}}}, true},
		{"nin match", Query{"role": Query{OpNin: []interface{}{"viewer"}}}, true},
		{"nin miss", Query{"role": Query{OpNin: []interface{}{"admin"}}}, false},
		{"in absent field", Query{"missing": Query{OpIn: []interface{}{nil, "x"}}}, false},
		{"nin absent field", Query{"missing": Query{OpNin: []interface{}{"x"}}}, true},
		{"in malformed operand", Query{"role": Query{OpIn: "admin"}}, false},
		{"nin malformed operand", Query{"role": Query{OpNin: "admin"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(doc); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// TestQuery_NotEqual tests $ne, including absent fields
func TestQuery_NotEqual(t *testing.T) {
	doc := Document{"role": "admin"}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"ne match", Query{"role": Query{OpNe: "viewer"}}, true},
		{"ne miss", Query{"role": Query{OpNe: "admin"}}, false},
		{"ne matches absent field", Query{"missing": Query{OpNe: "anything"}}, true},
		{"ne type sensitive", Query{"role": Query{OpNe: 5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Matches(doc); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

// TestQuery_UnknownOperatorFailsClosed tests that an unrecognized operator key
// makes the whole document a non-match, even when other operators would match
func TestQuery_UnknownOperatorFailsClosed(t *testing.T) {
	doc := Document{"age": float64(30)}

	if (Query{"age": Query{"$regex": ".*"}}).Matches(doc) {
		t.Error("unknown operator should fail closed")
	}

	if (Query{"age": Query{OpGT: 25, "$near": 30}}).Matches(doc) {
		t.Error("unknown operator alongside a matching one should still fail closed")
	}
}

// TestQuery_OperatorShortCircuit tests conjunctive operator evaluation
func TestQuery_OperatorShortCircuit(t *testing.T) {
	doc := Document{"age": float64(30)}

	if !(Query{"age": Query{OpGT: 25, OpLT: 35, OpNe: 31}}).Matches(doc) {
		t.Error("all operators hold, document should match")
	}

	if (Query{"age": Query{OpGT: 25, OpLT: 29}}).Matches(doc) {
		t.Error("one failing operator should reject the document")
	}
}

// TestQuery_ArrayEquality tests element-wise array comparison
func TestQuery_ArrayEquality(t *testing.T) {
	doc := Document{"tags": []interface{}{"a", "b"}}

	if !(Query{"tags": []interface{}{"a", "b"}}).Matches(doc) {
		t.Error("identical arrays should be equal")
	}
	if (Query{"tags": []interface{}{"b", "a"}}).Matches(doc) {
		t.Error("array equality is order-sensitive")
	}
	if (Query{"tags": []interface{}{"a"}}).Matches(doc) {
		t.Error("arrays of different length are not equal")
	}
}
