// Package edn reads and writes EDN (Extensible Data Notation), the textual
// wire format of the Datomic REST API.
//
// # Reading
//
// Parse reads exactly one value from a string; ParseBytes additionally
// validates UTF-8 first:
//
//	v, err := edn.Parse(`{:name "Alice" :age 30}`)
//	// v is edn.Map{":name": "Alice", ":age": int64(30)}
//
// Custom depth limits and tag registries go through the Reader builder:
//
//	reg := edn.NewTagRegistry()
//	reg.Register("my/tag", func(v edn.Value, pos int) (edn.Value, error) {
//	    return v, nil
//	})
//	v, err := edn.NewReader(src).WithMaxDepth(50).WithRegistry(reg).Read()
//
// Tagged forms with no registered handler vanish from the enclosing
// collection: map pairs are dropped whole, and elements disappear from
// vectors, lists and sets. The #_ discard form drops exactly the next
// value.
//
// # Writing
//
// Marshal is the structural inverse over the same value model:
//
//	text, err := edn.Marshal(edn.Vector{int64(1), ":keyword", "text"})
//	// text is `[1 :keyword "text"]`
//
// Strings beginning with ':' are treated as already-encoded keywords and
// emitted verbatim; values outside the closed model are an error.
//
// Parsing and serialization are synchronous in-memory computations with no
// I/O of their own; timeouts and cancellation belong to the caller.
package edn
