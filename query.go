package kvdocs

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Query operators. A field condition is either a literal value (strict,
// type-sensitive equality) or a map of operators, combined conjunctively.
const (
	OpGT  = "$gt"
	OpGTE = "$gte"
	OpLT  = "$lt"
	OpLTE = "$lte"
	OpIn  = "$in"
	OpNin = "$nin"
	OpNe  = "$ne"
)

// Query is a mapping from field name to a condition. All field conditions
// must hold for a document to match (logical AND). The empty query matches
// every document.
//
// Example:
//
//	kvdocs.Query{
//	    "status": "active",                      // strict equality
//	    "age":    kvdocs.Query{kvdocs.OpGTE: 30, kvdocs.OpLT: 65},
//	}
type Query map[string]interface{}

// Matches reports whether doc satisfies every condition in q.
//
// Unknown operator keys fail closed: the whole document is treated as a
// non-match rather than the operator being ignored.
func (q Query) Matches(doc Document) bool {
	for field, cond := range q {
		value, present := doc[field]
		if !matchCondition(value, present, cond) {
			return false
		}
	}
	return true
}

func matchCondition(value interface{}, present bool, cond interface{}) bool {
	ops, ok := conditionMap(cond)
	if !ok {
		return present && equalValues(value, cond)
	}

	for op, operand := range ops {
		if !matchOperator(value, present, op, operand) {
			return false
		}
	}
	return true
}

func conditionMap(cond interface{}) (map[string]interface{}, bool) {
	switch m := cond.(type) {
	case Query:
		return m, true
	case map[string]interface{}:
		return m, true
	}
	return nil, false
}

// matchOperator evaluates one operator against a field value. A field absent
// from the document is false for every ordering operator; only $ne and $nin
// can match an absent field.
func matchOperator(value interface{}, present bool, op string, operand interface{}) bool {
	switch op {
	case OpGT:
		c, ok := compareValues(value, operand)
		return present && ok && c > 0
	case OpGTE:
		c, ok := compareValues(value, operand)
		return present && ok && c >= 0
	case OpLT:
		c, ok := compareValues(value, operand)
		return present && ok && c < 0
	case OpLTE:
		c, ok := compareValues(value, operand)
		return present && ok && c <= 0
	case OpIn:
		items, ok := operandSlice(operand)
		if !ok {
			return false
		}
		return present && containsValue(items, value)
	case OpNin:
		items, ok := operandSlice(operand)
		if !ok {
			return false
		}
		return !present || !containsValue(items, value)
	case OpNe:
		return !present || !equalValues(value, operand)
	default:
		// Fail closed on unknown operators
		return false
	}
}

// equalValues implements strict, type-sensitive equality over JSON values.
// Numeric Go types are normalized to float64 first, so an int operand matches
// a stored JSON number, but a string never equals a number ("5" != 5).
func equalValues(a, b interface{}) bool {
	if na, ok := toFloat(a); ok {
		nb, ok2 := toFloat(b)
		return ok2 && na == nb
	}

	switch va := a.(type) {
	case nil:
		return b == nil
	case string:
		vb, ok := b.(string)
		return ok && va == vb
	case bool:
		vb, ok := b.(bool)
		return ok && va == vb
	case []interface{}:
		vb, ok := operandSlice(b)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !equalValues(va[i], vb[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// compareValues orders two JSON scalars. ok is false when the values have no
// mutual ordering (mixed types, bools, nulls, arrays).
func compareValues(a, b interface{}) (int, bool) {
	if na, ok := toFloat(a); ok {
		nb, ok2 := toFloat(b)
		if !ok2 {
			return 0, false
		}
		switch {
		case na < nb:
			return -1, true
		case na > nb:
			return 1, true
		}
		return 0, true
	}

	if sa, ok := a.(string); ok {
		sb, ok2 := b.(string)
		if !ok2 {
			return 0, false
		}
		return strings.Compare(sa, sb), true
	}

	return 0, false
}

func containsValue(items []interface{}, value interface{}) bool {
	for _, item := range items {
		if equalValues(value, item) {
			return true
		}
	}
	return false
}

// operandSlice normalizes an $in/$nin operand to []interface{}. Typed Go
// slices ([]int, []string) are accepted for caller convenience.
func operandSlice(operand interface{}) ([]interface{}, bool) {
	if items, ok := operand.([]interface{}); ok {
		return items, true
	}
	rv := reflect.ValueOf(operand)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
