package htmlwriter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/taplist/internal/placeholder"
)

func testTemplates() Templates {
	return Templates{
		Page:    "<html><head>{header}</head>{body}</html>",
		Head:    "<style>p {{ margin: 0 }}</style>",
		Body:    "<body><main>{beer_snippets}</main>{script}</body>",
		Snippet: "<h2>{title}</h2>",
		Script:  "<script>if (x) { y() }</script>",
	}
}

func TestCompose(t *testing.T) {
	got, err := Compose(testTemplates(), "<h2>1. A</h2>\n<h2>2. B</h2>")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	// Head and script are inserted verbatim, braces included.
	want := "<html><head><style>p {{ margin: 0 }}</style></head>" +
		"<body><main><h2>1. A</h2>\n<h2>2. B</h2></main>" +
		"<script>if (x) { y() }</script></body></html>"
	if got != want {
		t.Fatalf("Compose =\n%s\nwant\n%s", got, want)
	}
}

func TestComposeMissingKey(t *testing.T) {
	tpl := testTemplates()
	tpl.Page = "<html>{header}{footer}</html>"

	if _, err := Compose(tpl, ""); !errors.Is(err, placeholder.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestTemplatesCheck(t *testing.T) {
	if err := testTemplates().Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	tpl := testTemplates()
	tpl.Snippet = "<h2>{title}</h2><p>{ibu}</p>"
	if err := tpl.Check(); !errors.Is(err, placeholder.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestWriteReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "index.html")

	if err := Write(path, "first version, longer than the second"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(path, "second"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Fatalf("file = %q, want %q", data, "second")
	}
}

func TestWriteNewFileIsPublic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	if err := Write(path, "page"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o644 {
		t.Fatalf("mode = %o, want 644", got)
	}
}

func TestWriteKeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}

	if err := Write(path, "new"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o640 {
		t.Fatalf("mode = %o, want 640", got)
	}
}

func TestMinify(t *testing.T) {
	page := "<!DOCTYPE html>\n<html>\n  <head>\n    <style>\n      body { color : red ; }\n    </style>\n  </head>\n" +
		"  <body>\n    <!-- taps -->\n    <h2>1. Golden Ale</h2>\n" +
		"    <script>\n      var ready = true ;\n    </script>\n  </body>\n</html>\n"

	got, err := Minify(page)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}

	if len(got) >= len(page) {
		t.Fatalf("minified page is not smaller:\n%s", got)
	}
	for _, want := range []string{"<h2>1. Golden Ale</h2>", "color:red"} {
		if !strings.Contains(got, want) {
			t.Fatalf("minified page does not contain %q:\n%s", want, got)
		}
	}
	for _, gone := range []string{"\n    ", "<!-- taps -->"} {
		if strings.Contains(got, gone) {
			t.Fatalf("minified page still contains %q:\n%s", gone, got)
		}
	}

	again, err := Minify(page)
	if err != nil {
		t.Fatalf("Minify: %v", err)
	}
	if again != got {
		t.Fatal("Minify is not deterministic")
	}
}
