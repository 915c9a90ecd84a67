package template

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_GetUnknownReturnsNotFound(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("missing")
	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Name != "missing" {
		t.Fatalf("expected error to carry the requested name, got %q", notFound.Name)
	}
}

func TestRegistry_ReRegisterOverwrites(t *testing.T) {
	registry := NewRegistry()

	registry.MustRegister(MustNew("demo", WithTemplateDescription("first")))
	registry.MustRegister(MustNew("demo", WithTemplateDescription("second")))

	tpl, err := registry.Get("demo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tpl.Description() != "second" {
		t.Fatalf("expected overwrite, got description %q", tpl.Description())
	}
	if registry.Len() != 1 {
		t.Fatalf("expected a single entry after overwrite, got %d", registry.Len())
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(MustNew("zeta"))
	registry.MustRegister(MustNew("alpha"))
	registry.MustRegister(MustNew("mid"))

	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_RejectsUnnamedTemplate(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Template{}); err == nil {
		t.Fatalf("expected error registering the zero template")
	}
}
