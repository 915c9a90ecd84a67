package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("expected error without a base dir or fs.FS")
	}
}

func TestRenderTemplate(t *testing.T) {
	files := fstest.MapFS{
		"greeting.tmpl": &fstest.MapFile{Data: []byte("Hello {{ name }}!")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := engine.RenderTemplate("greeting", map[string]any{"name": "World"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello World!" {
		t.Fatalf("output: %q", out)
	}
}

func TestRenderTemplate_AppendsExtensionOnce(t *testing.T) {
	files := fstest.MapFS{
		"greeting.tmpl": &fstest.MapFile{Data: []byte("hi")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := engine.RenderTemplate("greeting.tmpl", nil); err != nil {
		t.Fatalf("render with explicit extension: %v", err)
	}
}

func TestRenderString(t *testing.T) {
	files := fstest.MapFS{}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := engine.RenderString("{% for x in items %}{{ x }},{% endfor %}", map[string]any{
		"items": []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "a,b," {
		t.Fatalf("output: %q", out)
	}
}

func TestRender_DispatchesOnContent(t *testing.T) {
	files := fstest.MapFS{
		"plain.tmpl": &fstest.MapFile{Data: []byte("from file")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	fromFile, err := engine.Render("plain", nil)
	if err != nil || fromFile != "from file" {
		t.Fatalf("file dispatch: %q, %v", fromFile, err)
	}

	inline, err := engine.Render("inline {{ value }}", map[string]any{"value": 7})
	if err != nil || inline != "inline 7" {
		t.Fatalf("inline dispatch: %q, %v", inline, err)
	}
}

func TestGlobalContext(t *testing.T) {
	files := fstest.MapFS{
		"site.tmpl": &fstest.MapFile{Data: []byte("{{ site_name }}")},
	}
	engine, err := New(WithFS(files), WithGlobalData(map[string]any{"site_name": "formval"}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := engine.RenderTemplate("site", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "formval") {
		t.Fatalf("output: %q", out)
	}
}
