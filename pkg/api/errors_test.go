package api

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	a := newCollector("out")

	cfg := NewConfigError(a, "bad option")
	if !IsConfigError(cfg) || IsExecError(cfg) {
		t.Fatal("ConfigError misclassified")
	}
	if !strings.Contains(cfg.Error(), "out") {
		t.Fatalf("actor name missing: %v", cfg)
	}

	in := NewInputError(a, "wrong payload")
	if !IsInputError(in) || IsConfigError(in) {
		t.Fatal("InputError misclassified")
	}

	se := &StorageError{Name: "x", Str: "v=@{x}"}
	if !IsStorageError(se) {
		t.Fatal("StorageError misclassified")
	}
	if !strings.Contains(se.Error(), "'x'") {
		t.Fatalf("storage name missing: %v", se)
	}
}

func TestExecErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	ee := &ExecError{Actor: "flow.out", Err: cause}
	if !errors.Is(ee, cause) {
		t.Fatal("Unwrap broken")
	}
	// Wrapping must remain detectable through further wrapping.
	wrapped := fmt.Errorf("outer: %w", ee)
	if !IsExecError(wrapped) {
		t.Fatal("errors.As through wrapping failed")
	}
}
