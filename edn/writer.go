package edn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Marshal serializes v to compact single-line EDN text. The value model is
// closed-world: any type outside it returns an error wrapping ErrSerialize
// rather than being stringified.
func Marshal(v Value) (string, error) {
	var b strings.Builder
	if err := marshalValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MarshalIndent is accepted for API symmetry but emits the same compact
// single-line form as Marshal; indent is reserved.
func MarshalIndent(v Value, indent string) (string, error) {
	return Marshal(v)
}

func marshalValue(b *strings.Builder, v Value) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
	case bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int:
		b.WriteString(strconv.Itoa(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString(formatFloat(x))
	case string:
		// Strings starting with ':' are already-encoded keywords/symbols
		// and pass through verbatim.
		if strings.HasPrefix(x, ":") {
			b.WriteString(x)
		} else {
			marshalString(b, x)
		}
	case time.Time:
		b.WriteString(`#inst "`)
		b.WriteString(FormatInstant(x))
		b.WriteString(`"`)
	case uuid.UUID:
		b.WriteString(`#uuid "`)
		b.WriteString(x.String())
		b.WriteString(`"`)
	case Vector:
		return marshalSeq(b, x, "[", "]")
	case []Value:
		return marshalSeq(b, x, "[", "]")
	case Set:
		return marshalSeq(b, x, "#{", "}")
	case Map:
		return marshalMap(b, x)
	case map[Value]Value:
		return marshalMap(b, x)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrSerialize, v)
	}
	return nil
}

// formatFloat keeps a decimal point or exponent in the text so the value
// reads back as a float, not an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func marshalString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

func marshalSeq(b *strings.Builder, items []Value, open, closing string) error {
	b.WriteString(open)
	for i, item := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		if err := marshalValue(b, item); err != nil {
			return err
		}
	}
	b.WriteString(closing)
	return nil
}

func marshalMap(b *strings.Builder, m map[Value]Value) error {
	b.WriteByte('{')
	first := true
	for k, v := range m {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		if err := marshalValue(b, k); err != nil {
			return err
		}
		b.WriteByte(' ')
		if err := marshalValue(b, v); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}
