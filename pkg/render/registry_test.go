package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, Document, Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "stub"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("stub")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "stub" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "stub"})

	err := registry.Register(stubRenderer{name: "stub"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}
}

func TestRegistry_UnknownRenderer(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "zeta"})
	registry.MustRegister(stubRenderer{name: "alpha"})

	if diff := cmp.Diff([]string{"alpha", "zeta"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
