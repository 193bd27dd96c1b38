package edn

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure kinds. Every error returned by this
// package unwraps to exactly one of them, so callers can classify failures
// with errors.Is without parsing messages.
var (
	// ErrSyntax covers malformed input: unterminated strings, collections
	// and maps, unexpected characters, bad numbers, bad datetime text.
	ErrSyntax = errors.New("invalid EDN syntax")

	// ErrDepthExceeded is returned when nesting exceeds the reader's
	// configured maximum depth. Distinct from ErrSyntax so callers can
	// raise the limit without reinterpreting arbitrary parse failures.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")

	// ErrEncoding is returned for byte input that is not valid UTF-8,
	// before any character-level parsing begins.
	ErrEncoding = errors.New("invalid UTF-8 encoding")

	// ErrSerialize is returned by Marshal for values outside the closed
	// value model.
	ErrSerialize = errors.New("cannot serialize value to EDN")
)

// ParseError is a positioned read failure. Pos is a byte offset into the
// source, or -1 when no position is available.
type ParseError struct {
	Msg  string
	Pos  int
	kind error
}

func (e *ParseError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.kind
}

func syntaxErrorf(pos int, format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: pos, kind: ErrSyntax}
}

func depthError(maxDepth, pos int) error {
	return &ParseError{
		Msg:  fmt.Sprintf("maximum nesting depth (%d) exceeded", maxDepth),
		Pos:  pos,
		kind: ErrDepthExceeded,
	}
}

// IsSyntaxError reports whether err is a malformed-input error.
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// IsDepthError reports whether err is a nesting-depth error.
func IsDepthError(err error) bool {
	return errors.Is(err, ErrDepthExceeded)
}

// IsEncodingError reports whether err is a UTF-8 decoding error.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrEncoding)
}

// IsSerializeError reports whether err came from marshaling an unsupported
// type.
func IsSerializeError(err error) bool {
	return errors.Is(err, ErrSerialize)
}
