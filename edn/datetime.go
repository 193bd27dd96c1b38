package edn

import (
	"strings"
	"time"
)

// Layouts tried in order after suffix normalization. Offset-less layouts
// parse as UTC, which is exactly the assumption the wire format wants.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInstant parses the ISO 8601 text of a #inst literal. pos is the
// source offset used in error messages, or -1 when unknown.
//
// Three temporal suffix conventions normalize to one before parsing: a
// trailing "Z" and a trailing "-00:00" are both rewritten to "+00:00".
// Text carrying no offset at all is assumed UTC, so the result is always
// zone-aware.
func ParseInstant(value string, pos int) (time.Time, error) {
	normalized := value
	if strings.HasSuffix(normalized, "Z") {
		normalized = normalized[:len(normalized)-1] + "+00:00"
	}
	if strings.HasSuffix(normalized, "-00:00") {
		normalized = normalized[:len(normalized)-6] + "+00:00"
	}

	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		return t, nil
	}

	return time.Time{}, syntaxErrorf(pos, "invalid datetime format: %q", value)
}

// FormatInstant renders t for a #inst literal: RFC 3339 with a "Z" suffix
// for UTC and a numeric offset otherwise. Sub-second digits appear only
// when the instant has them, at microsecond precision.
func FormatInstant(t time.Time) string {
	if t.Nanosecond() != 0 {
		return t.Format("2006-01-02T15:04:05.000000Z07:00")
	}
	return t.Format("2006-01-02T15:04:05Z07:00")
}
