package edn

import "reflect"

// Value is any value the EDN reader can produce or the writer can consume.
// The closed set of concrete types is:
//
//	nil                 EDN nil
//	bool                true / false
//	int64               integers
//	float64             floats
//	string              strings, keywords (":"-prefixed), bare symbols,
//	                    and single-character literals
//	time.Time           #inst values, always zone-aware
//	uuid.UUID           #uuid values
//	Vector              vectors and lists
//	Set                 sets
//	Map                 maps
//
// Lists and vectors collapse into Vector; keywords and symbols collapse
// into plain strings. Both collapses match the wire-format expectations of
// the Datomic REST API and are intentional.
type Value = interface{}

// Vector is an ordered sequence of values. Both [...] vectors and (...)
// lists read as Vector.
type Vector []Value

// Set holds the elements of a #{...} form in encounter order. Elements of
// comparable type are deduplicated by equality; elements Go cannot compare
// (nested collections) are kept as-is rather than failing the parse.
type Set []Value

// Map is an EDN {...} map. Iteration order is not the source order.
type Map map[Value]Value

// skipType marks a value elided by an unknown or discarding tag. It only
// exists inside a read; parsed trees never contain it.
type skipType struct{}

// Skip is returned by tag handlers that want the tagged form dropped from
// the enclosing collection. The built-in #_ discard handler returns it, and
// custom handlers may too. It never appears in the result of a read.
var Skip Value = skipType{}

func isSkip(v Value) bool {
	_, ok := v.(skipType)
	return ok
}

// isComparable reports whether v can be a map key or set member. Nested
// collections cannot; they make sets degrade and map keys error out.
func isComparable(v Value) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// namedChars maps the EDN named character literals to the character they
// denote. Order matters only for deterministic matching.
var namedChars = []struct {
	name  string
	value string
}{
	{"newline", "\n"},
	{"space", " "},
	{"tab", "\t"},
	{"return", "\r"},
}
