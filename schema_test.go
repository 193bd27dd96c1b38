package datomic

import (
	"strings"
	"testing"

	"github.com/peregrinedb/datomic-go/edn"
)

func TestAttributeMinimal(t *testing.T) {
	got := NewAttribute(":person/name", TypeString).Build()

	want := "{:db/ident :person/name\n" +
		" :db/valueType :db.type/string\n" +
		" :db/cardinality :db.cardinality/one}"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestAttributeAllOptions(t *testing.T) {
	got := NewAttribute(":person/aliases", TypeString).
		Cardinality(CardinalityMany).
		Doc("Alternate names").
		Unique(UniqueValue).
		Index().
		Fulltext().
		NoHistory().
		Build()

	for _, part := range []string{
		":db/ident :person/aliases",
		":db/valueType :db.type/string",
		":db/cardinality :db.cardinality/many",
		`:db/doc "Alternate names"`,
		":db/unique :db.unique/value",
		":db/index true",
		":db/fulltext true",
		":db/noHistory true",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("Build() missing %q in %q", part, got)
		}
	}
}

func TestAttributeDocEscaping(t *testing.T) {
	got := NewAttribute(":note/text", TypeString).
		Doc(`The "raw" text`).
		Build()

	if !strings.Contains(got, `:db/doc "The \"raw\" text"`) {
		t.Errorf("Doc quotes not escaped: %q", got)
	}
}

// every builder output must itself be valid EDN
func TestAttributeParses(t *testing.T) {
	src := NewAttribute(":person/email", TypeString).
		Unique(UniqueIdentity).
		Doc("Primary email").
		Build()

	v, err := edn.Parse(src)
	if err != nil {
		t.Fatalf("Build() output does not parse: %v", err)
	}
	m, ok := v.(edn.Map)
	if !ok {
		t.Fatalf("Expected map, got %T", v)
	}
	if m[":db/ident"] != ":person/email" {
		t.Errorf("Unexpected :db/ident: %v", m[":db/ident"])
	}
	if m[":db/unique"] != ":db.unique/identity" {
		t.Errorf("Unexpected :db/unique: %v", m[":db/unique"])
	}
}

func TestSchema(t *testing.T) {
	attrs := Schema(
		NewAttribute(":person/name", TypeString).Build(),
		NewAttribute(":person/age", TypeLong).Build(),
	)
	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attribute definitions, got %d", len(attrs))
	}
	for _, a := range attrs {
		if _, err := edn.Parse(a); err != nil {
			t.Errorf("Attribute does not parse: %v", err)
		}
	}
}
