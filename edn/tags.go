package edn

import (
	"sort"

	"github.com/google/uuid"
)

// TagHandler post-processes the decoded payload of a #tag form. pos is the
// byte offset of the '#' in the source, or -1. Returning Skip drops the
// whole tagged form from the enclosing collection.
type TagHandler func(value Value, pos int) (Value, error)

// TagRegistry maps tag names (without the leading '#') to handlers.
//
// Mutation is not synchronized: register custom tags before handing the
// registry to concurrent reads, or treat it as immutable after setup.
type TagRegistry struct {
	handlers map[string]TagHandler
}

// NewTagRegistry returns a fresh registry pre-populated with the built-in
// handlers: inst, uuid, db/fn and the #_ discard tag. Independent
// registries let callers add project-specific tags without affecting other
// users of the package.
func NewTagRegistry() *TagRegistry {
	r := &TagRegistry{handlers: make(map[string]TagHandler)}
	r.Register("inst", handleInst)
	r.Register("uuid", handleUUID)
	r.Register("db/fn", handleDBFn)
	r.Register("_", handleDiscard)
	return r
}

// Register installs a handler for tag, overwriting any existing one.
func (r *TagRegistry) Register(tag string, handler TagHandler) {
	r.handlers[tag] = handler
}

// Unregister removes the handler for tag. Removing an absent tag is a
// no-op. A read that then encounters the tag elides the tagged form.
func (r *TagRegistry) Unregister(tag string) {
	delete(r.handlers, tag)
}

// Handler returns the handler for tag and whether one is registered.
func (r *TagRegistry) Handler(tag string) (TagHandler, bool) {
	h, ok := r.handlers[tag]
	return h, ok
}

// IsKnown reports whether tag has a registered handler.
func (r *TagRegistry) IsKnown(tag string) bool {
	_, ok := r.handlers[tag]
	return ok
}

// KnownTags returns all registered tag names, sorted.
func (r *TagRegistry) KnownTags() []string {
	tags := make([]string, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// The shared default. Built once and never mutated; readers fall back to it
// when no registry is supplied. Callers wanting custom tags construct their
// own via NewTagRegistry.
var defaultRegistry = NewTagRegistry()

func handleInst(value Value, pos int) (Value, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	return ParseInstant(s, pos)
}

func handleUUID(value Value, pos int) (Value, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, syntaxErrorf(pos, "invalid UUID %q: %v", s, err)
	}
	return u, nil
}

func handleDBFn(value Value, pos int) (Value, error) {
	return value, nil
}

func handleDiscard(value Value, pos int) (Value, error) {
	return Skip, nil
}
