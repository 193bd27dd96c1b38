package edn

import (
	"reflect"
	"testing"
)

func TestNewTagRegistryDefaults(t *testing.T) {
	reg := NewTagRegistry()

	want := []string{"_", "db/fn", "inst", "uuid"}
	if got := reg.KnownTags(); !reflect.DeepEqual(got, want) {
		t.Errorf("KnownTags() = %v, want %v", got, want)
	}

	for _, tag := range want {
		if !reg.IsKnown(tag) {
			t.Errorf("IsKnown(%q) = false, want true", tag)
		}
	}
	if reg.IsKnown("no-such-tag") {
		t.Error("IsKnown reports an unregistered tag")
	}
}

func TestRegisterOverwrites(t *testing.T) {
	reg := NewTagRegistry()
	reg.Register("inst", func(v Value, pos int) (Value, error) {
		return "overridden", nil
	})

	got, err := NewReader(`#inst "2023-01-15T10:30:00Z"`).WithRegistry(reg).Read()
	if err != nil {
		t.Fatal(err)
	}
	if got != "overridden" {
		t.Errorf("got %#v, want overridden handler result", got)
	}
}

func TestUnregister(t *testing.T) {
	reg := NewTagRegistry()
	reg.Unregister("inst")

	if reg.IsKnown("inst") {
		t.Error("inst still known after Unregister")
	}

	// Unregistering an absent tag is a no-op.
	reg.Unregister("never-registered")

	// With inst unregistered, #inst forms elide like any unknown tag.
	got, err := NewReader(`[1 #inst "2023-01-15T10:30:00Z" 2]`).WithRegistry(reg).Read()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, Vector{int64(1), int64(2)}) {
		t.Errorf("got %#v, want elided vector", got)
	}
}

func TestHandlerLookup(t *testing.T) {
	reg := NewTagRegistry()

	if _, ok := reg.Handler("uuid"); !ok {
		t.Error("Handler(uuid) not found")
	}
	if _, ok := reg.Handler("missing"); ok {
		t.Error("Handler(missing) unexpectedly found")
	}
}

func TestHandlerReceivesPosition(t *testing.T) {
	reg := NewTagRegistry()
	var gotPos int
	reg.Register("here", func(v Value, pos int) (Value, error) {
		gotPos = pos
		return v, nil
	})

	if _, err := NewReader(`[1 #here 2]`).WithRegistry(reg).Read(); err != nil {
		t.Fatal(err)
	}
	if gotPos != 3 {
		t.Errorf("handler position = %d, want 3 (offset of '#')", gotPos)
	}
}

func TestIndependentRegistries(t *testing.T) {
	a := NewTagRegistry()
	b := NewTagRegistry()

	a.Register("only-a", func(v Value, pos int) (Value, error) { return v, nil })

	if b.IsKnown("only-a") {
		t.Error("registration leaked between registries")
	}
}
