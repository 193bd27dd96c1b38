package datomic

import "strings"

// Schema attribute constants. These are the keyword values Datomic expects
// in attribute definition maps.
const (
	// Cardinality
	CardinalityOne  = ":db.cardinality/one"
	CardinalityMany = ":db.cardinality/many"

	// Uniqueness
	UniqueIdentity = ":db.unique/identity"
	UniqueValue    = ":db.unique/value"

	// Value types
	TypeString  = ":db.type/string"
	TypeBoolean = ":db.type/boolean"
	TypeLong    = ":db.type/long"
	TypeBigInt  = ":db.type/bigint"
	TypeFloat   = ":db.type/float"
	TypeDouble  = ":db.type/double"
	TypeBigDec  = ":db.type/bigdec"
	TypeInstant = ":db.type/instant"
	TypeUUID    = ":db.type/uuid"
	TypeURI     = ":db.type/uri"
	TypeKeyword = ":db.type/keyword"
	TypeRef     = ":db.type/ref"
	TypeBytes   = ":db.type/bytes"
)

// AttributeBuilder assembles a Datomic attribute definition as an EDN map
// fragment. It is plain string templating: the output feeds verbatim into
// a transaction.
type AttributeBuilder struct {
	ident     string
	valueType string
	doc       string
	card      string
	unique    string
	index     bool
	fulltext  bool
	noHistory bool
}

// NewAttribute starts an attribute definition for ident (e.g.
// ":person/name") with the given value type. Cardinality defaults to one.
func NewAttribute(ident, valueType string) *AttributeBuilder {
	return &AttributeBuilder{ident: ident, valueType: valueType, card: CardinalityOne}
}

// Doc sets the documentation string
func (b *AttributeBuilder) Doc(doc string) *AttributeBuilder {
	b.doc = doc
	return b
}

// Cardinality sets CardinalityOne or CardinalityMany
func (b *AttributeBuilder) Cardinality(card string) *AttributeBuilder {
	b.card = card
	return b
}

// Unique sets UniqueIdentity or UniqueValue
func (b *AttributeBuilder) Unique(unique string) *AttributeBuilder {
	b.unique = unique
	return b
}

// Index requests an index on the attribute
func (b *AttributeBuilder) Index() *AttributeBuilder {
	b.index = true
	return b
}

// Fulltext enables fulltext search on the attribute
func (b *AttributeBuilder) Fulltext() *AttributeBuilder {
	b.fulltext = true
	return b
}

// NoHistory excludes the attribute from history
func (b *AttributeBuilder) NoHistory() *AttributeBuilder {
	b.noHistory = true
	return b
}

// Build renders the attribute definition. Optional parts appear only when
// set to a non-default value.
func (b *AttributeBuilder) Build() string {
	parts := []string{
		":db/ident " + b.ident,
		":db/valueType " + b.valueType,
		":db/cardinality " + b.card,
	}
	if b.doc != "" {
		parts = append(parts, `:db/doc "`+strings.ReplaceAll(b.doc, `"`, `\"`)+`"`)
	}
	if b.unique != "" {
		parts = append(parts, ":db/unique "+b.unique)
	}
	if b.index {
		parts = append(parts, ":db/index true")
	}
	if b.fulltext {
		parts = append(parts, ":db/fulltext true")
	}
	if b.noHistory {
		parts = append(parts, ":db/noHistory true")
	}
	return "{" + strings.Join(parts, "\n ") + "}"
}

// Schema collects attribute definitions into the transaction form expected
// by Transact.
func Schema(attributes ...string) []string {
	return attributes
}
