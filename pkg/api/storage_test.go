package api

import (
	"testing"
)

// stubFlow is a stubHandler that also carries storage.
type stubFlow struct {
	stubHandler
	storage Storage
}

func newStubFlow(name string) *stubFlow {
	f := &stubFlow{storage: Storage{}}
	f.Base = NewBase("StubFlow")
	f.SetName(name)
	return f
}

func (f *stubFlow) Storage() Storage { return f.storage }

func TestStorageExpand(t *testing.T) {
	s := Storage{"x": 5, "who": "world"}

	got, err := s.Expand("value=@{x}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "value=5" {
		t.Fatalf("got %q", got)
	}

	got, err = s.Expand("hello @{who}, x=@{x}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world, x=5" {
		t.Fatalf("got %q", got)
	}

	// No placeholders is a pass-through.
	got, err = s.Expand("plain")
	if err != nil || got != "plain" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestStorageExpandMissing(t *testing.T) {
	s := Storage{}
	_, err := s.Expand("value=@{absent}")
	if !IsStorageError(err) {
		t.Fatalf("got %v, want StorageError", err)
	}
}

func TestPadExtractIsPlaceholder(t *testing.T) {
	if Pad("x") != "@{x}" || Pad("@{x}") != "@{x}" {
		t.Fatal("Pad broken")
	}
	if Extract("@{x}") != "x" || Extract("x") != "x" {
		t.Fatal("Extract broken")
	}
	if !IsPlaceholder("@{x}") {
		t.Fatal("lone placeholder not detected")
	}
	if IsPlaceholder("a @{x}") || IsPlaceholder("@{a}@{b}") || IsPlaceholder("x") {
		t.Fatal("false positive placeholder")
	}
}

func TestResolveOptionLivePlaceholder(t *testing.T) {
	flow := newStubFlow("flow")
	flow.storage["threshold"] = 42

	a := newCollector("out")
	flow.add(a)
	a.Config()["limit"] = "@{threshold}"

	// A lone placeholder resolves to the live value, type preserved.
	if got := ResolveOption(a, "limit", nil); got != 42 {
		t.Fatalf("got %v (%T)", got, got)
	}

	flow.storage["threshold"] = 7
	if got := ResolveOption(a, "limit", nil); got != 7 {
		t.Fatalf("stale value %v", got)
	}
}

func TestResolveOptionDefaults(t *testing.T) {
	a := newCollector("out")
	if got := ResolveOption(a, "missing", "def"); got != "def" {
		t.Fatalf("got %v", got)
	}
	a.Config()["literal"] = "plain"
	if got := ResolveOption(a, "literal", nil); got != "plain" {
		t.Fatalf("got %v", got)
	}
	// Placeholder without a storage handler in the tree falls back.
	a.Config()["orphan"] = "@{x}"
	if got := ResolveOption(a, "orphan", "def"); got != "def" {
		t.Fatalf("got %v", got)
	}
}

func TestOptionAccessors(t *testing.T) {
	a := newCollector("out")
	a.Config()["s"] = "text"
	a.Config()["b"] = true
	a.Config()["i"] = 3
	a.Config()["f"] = float64(4) // JSON numbers decode as float64
	a.Config()["list"] = []any{"a", "b"}

	if OptionString(a, "s", "") != "text" {
		t.Fatal("OptionString")
	}
	if OptionString(a, "absent", "def") != "def" {
		t.Fatal("OptionString default")
	}
	if !OptionBool(a, "b", false) {
		t.Fatal("OptionBool")
	}
	if OptionInt(a, "i", 0) != 3 || OptionInt(a, "f", 0) != 4 {
		t.Fatal("OptionInt")
	}
	if got := OptionStrings(a, "list"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("OptionStrings %v", got)
	}
}

func TestStorageHandlerOf(t *testing.T) {
	flow := newStubFlow("flow")
	inner := newStubHandler("seq")
	leaf := newCollector("out")
	flow.add(inner)
	inner.add(leaf)

	if sh := StorageHandlerOf(leaf); sh == nil || sh.Storage() == nil {
		t.Fatal("storage handler not found through ancestors")
	}

	orphan := newCollector("lost")
	if StorageHandlerOf(orphan) != nil {
		t.Fatal("found storage handler with none in tree")
	}
}
