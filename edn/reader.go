package edn

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxDepth bounds collection nesting during a read. Exceeding it is
// a parse error rather than a stack exhaustion crash.
const DefaultMaxDepth = 100

// tokenDelims terminate symbol, keyword and named-character tokens.
const tokenDelims = " \t\n\r,()[]{}\"\\;"

// Reader is a single-pass recursive-descent EDN parser over an in-memory
// source string. There is no separate tokenizer; the next significant
// character fully determines the production.
//
// A Reader is single-use and not safe for concurrent use. The depth counter
// belongs to one top-level Read.
type Reader struct {
	src      string
	pos      int
	maxDepth int
	depth    int
	registry *TagRegistry
}

// NewReader returns a reader over src with the default depth limit and tag
// registry.
func NewReader(src string) *Reader {
	return &Reader{src: src, maxDepth: DefaultMaxDepth, registry: defaultRegistry}
}

// NewReaderBytes validates b as UTF-8 and returns a reader over it. Invalid
// UTF-8 is an encoding error, reported before any parsing begins.
func NewReaderBytes(b []byte) (*Reader, error) {
	if !utf8.Valid(b) {
		return nil, &ParseError{Msg: "input is not valid UTF-8", Pos: -1, kind: ErrEncoding}
	}
	return NewReader(string(b)), nil
}

// WithMaxDepth sets the nesting depth limit for this reader.
func (r *Reader) WithMaxDepth(maxDepth int) *Reader {
	r.maxDepth = maxDepth
	return r
}

// WithRegistry sets the tag registry consulted for #tag forms.
func (r *Reader) WithRegistry(registry *TagRegistry) *Reader {
	r.registry = registry
	return r
}

// Pos returns the current byte offset into the source. Since Read returns
// nil both for EDN nil and for empty input, callers that care about the
// difference can compare Pos before and after the call: empty input
// consumes nothing but whitespace.
func (r *Reader) Pos() int {
	return r.pos
}

// Read parses exactly one EDN value starting at the first significant
// character. Empty or whitespace-only input reads as nil.
func (r *Reader) Read() (Value, error) {
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if isSkip(v) {
		// A top-level unknown tag has no enclosing collection to vanish
		// from, so it reads as nil.
		return nil, nil
	}
	return v, nil
}

// Parse reads one EDN value from src with default settings.
func Parse(src string) (Value, error) {
	return NewReader(src).Read()
}

// ParseBytes decodes b as UTF-8 and reads one EDN value from it. Invalid
// UTF-8 is an encoding error, distinguishable from syntax errors via
// IsEncodingError.
func ParseBytes(b []byte) (Value, error) {
	r, err := NewReaderBytes(b)
	if err != nil {
		return nil, err
	}
	return r.Read()
}

// skipWhitespace advances past whitespace, commas and ;-comments. Commas
// are whitespace in EDN.
func (r *Reader) skipWhitespace() {
	for r.pos < len(r.src) {
		switch c := r.src[r.pos]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			r.pos++
		case c == ';':
			for r.pos < len(r.src) && r.src[r.pos] != '\n' {
				r.pos++
			}
			if r.pos < len(r.src) {
				r.pos++
			}
		default:
			return
		}
	}
}

// readValue reads the next value, which may be the skip sentinel when a
// tagged form was elided. Callers inside collections drop sentinel values.
func (r *Reader) readValue() (Value, error) {
	r.skipWhitespace()

	if r.pos >= len(r.src) {
		return nil, nil
	}

	switch c := r.src[r.pos]; c {
	case '"':
		r.pos++
		return r.readString()
	case '[':
		r.pos++
		items, err := r.readCollection(']')
		if err != nil {
			return nil, err
		}
		return Vector(items), nil
	case '(':
		r.pos++
		items, err := r.readCollection(')')
		if err != nil {
			return nil, err
		}
		return Vector(items), nil
	case '{':
		r.pos++
		return r.readMap()
	case '#':
		r.pos++
		return r.readDispatch()
	case '\\':
		r.pos++
		return r.readCharacter()
	case ':':
		return r.readToken(), nil
	}

	c := r.src[r.pos]
	if isDigit(c) || ((c == '-' || c == '+') && r.startsNumber()) || c == '.' {
		return r.readNumber()
	}

	// true, false and nil look like symbols until fully read.
	if c == 't' || c == 'f' || c == 'n' {
		switch word := r.readToken(); word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "nil":
			return nil, nil
		default:
			return word, nil
		}
	}

	// Any other non-delimiter character starts a bare symbol. @ is not a
	// valid symbol start in EDN.
	if !strings.ContainsRune("()[]{}\"\\;,@", rune(c)) {
		return r.readToken(), nil
	}

	ru, _ := utf8.DecodeRuneInString(r.src[r.pos:])
	return nil, syntaxErrorf(r.pos, "unexpected character %q", ru)
}

// startsNumber reports whether the character after the current +/- sign
// makes this a numeric literal rather than a symbol.
func (r *Reader) startsNumber() bool {
	if r.pos+1 >= len(r.src) {
		return false
	}
	next := r.src[r.pos+1]
	return isDigit(next) || next == '.'
}

// readString reads a string literal; the opening quote is already consumed.
func (r *Reader) readString() (Value, error) {
	start := r.pos - 1
	var b strings.Builder
	for {
		if r.pos >= len(r.src) {
			return nil, syntaxErrorf(start, "unterminated string")
		}
		c := r.src[r.pos]
		r.pos++
		if c == '"' {
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if r.pos >= len(r.src) {
			return nil, syntaxErrorf(start, "unterminated string")
		}
		esc := r.src[r.pos]
		r.pos++
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			// \" and \\ fall out here, and any other escaped character
			// passes through as itself.
			b.WriteByte(esc)
		}
	}
}

// readToken consumes a symbol or keyword token: everything up to the next
// whitespace, comma, delimiter, quote, backslash or semicolon.
func (r *Reader) readToken() string {
	start := r.pos
	for r.pos < len(r.src) && !strings.ContainsRune(tokenDelims, rune(r.src[r.pos])) {
		r.pos++
	}
	return r.src[start:r.pos]
}

// readNumber reads an integer or float literal. The presence of '.' or an
// exponent decides which; a second '.' is an error.
func (r *Reader) readNumber() (Value, error) {
	start := r.pos
	hasDecimal := r.src[r.pos] == '.'
	r.pos++
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if c == '.' {
			if hasDecimal {
				return nil, syntaxErrorf(start, "invalid number: multiple decimal points")
			}
			hasDecimal = true
			r.pos++
		} else if isDigit(c) || c == '-' || c == '+' || c == 'e' || c == 'E' {
			r.pos++
		} else {
			break
		}
	}

	text := r.src[start:r.pos]
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, syntaxErrorf(start, "invalid number %q", text)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, syntaxErrorf(start, "invalid number %q", text)
	}
	return n, nil
}

// readCharacter reads a character literal; the backslash is already
// consumed. Named characters (\newline, \space, \tab, \return) match only
// when the name is followed by a delimiter or end of input, so a longer
// token like \spaceship falls through to single-character consumption.
func (r *Reader) readCharacter() (Value, error) {
	start := r.pos - 1
	if r.pos >= len(r.src) {
		return nil, syntaxErrorf(start, "unexpected end of input reading character")
	}

	rest := r.src[r.pos:]
	for _, nc := range namedChars {
		if !strings.HasPrefix(rest, nc.name) {
			continue
		}
		end := r.pos + len(nc.name)
		if end >= len(r.src) || strings.ContainsRune(tokenDelims, rune(r.src[end])) {
			r.pos = end
			return nc.value, nil
		}
	}

	ru, size := utf8.DecodeRuneInString(rest)
	r.pos += size
	return string(ru), nil
}

// readCollection reads values until the closing delimiter; the opening one
// is already consumed. Values elided by unknown tags never land in items.
func (r *Reader) readCollection(end byte) ([]Value, error) {
	start := r.pos - 1
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.maxDepth {
		return nil, depthError(r.maxDepth, start)
	}

	items := make([]Value, 0, 4)
	for {
		r.skipWhitespace()
		if r.pos >= len(r.src) {
			return nil, syntaxErrorf(start, "unterminated collection, expected %q", string(end))
		}
		if r.src[r.pos] == end {
			r.pos++
			return items, nil
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if !isSkip(v) {
			items = append(items, v)
		}
	}
}

// readMap reads key/value pairs until '}'. A pair whose key or value was
// elided by an unknown tag is dropped entirely.
func (r *Reader) readMap() (Value, error) {
	start := r.pos - 1
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.maxDepth {
		return nil, depthError(r.maxDepth, start)
	}

	result := make(Map)
	for {
		r.skipWhitespace()
		if r.pos >= len(r.src) {
			return nil, syntaxErrorf(start, "unterminated map")
		}
		if r.src[r.pos] == '}' {
			r.pos++
			return result, nil
		}
		key, err := r.readValue()
		if err != nil {
			return nil, err
		}
		r.skipWhitespace()
		value, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if isSkip(key) || isSkip(value) {
			continue
		}
		if !isComparable(key) {
			return nil, syntaxErrorf(start, "unhashable map key of type %T", key)
		}
		result[key] = value
	}
}

// readDispatch handles the forms behind '#': sets, the discard form and
// tagged values. The '#' is already consumed.
func (r *Reader) readDispatch() (Value, error) {
	dispatchPos := r.pos - 1
	if r.pos >= len(r.src) {
		return nil, syntaxErrorf(dispatchPos, "unexpected end of input after #")
	}

	switch r.src[r.pos] {
	case '{':
		r.pos++
		items, err := r.readCollection('}')
		if err != nil {
			return nil, err
		}
		return makeSet(items), nil
	case '_':
		// Discard: read and drop exactly one value, then produce the next.
		r.pos++
		r.skipWhitespace()
		if _, err := r.readValue(); err != nil {
			return nil, err
		}
		return r.readValue()
	default:
		tag := r.readToken()
		return r.readTagged(tag, dispatchPos)
	}
}

// readTagged decodes the payload of #tag and routes it through the active
// registry. Unregistered tags elide the whole form.
func (r *Reader) readTagged(tag string, tagPos int) (Value, error) {
	r.skipWhitespace()
	value, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if handler, ok := r.registry.Handler(tag); ok {
		return handler(value, tagPos)
	}
	return Skip, nil
}

// makeSet deduplicates comparable elements by equality, preserving
// encounter order. Elements Go cannot hash (nested collections) degrade to
// plain ordered membership instead of failing the parse.
func makeSet(items []Value) Set {
	set := make(Set, 0, len(items))
	seen := make(map[Value]bool, len(items))
	for _, v := range items {
		if isComparable(v) {
			if seen[v] {
				continue
			}
			seen[v] = true
		}
		set = append(set, v)
	}
	return set
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
