package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/cattree/internal/render"
	"github.com/temirov/cattree/internal/traverse"
)

// fiveLineContent exercises the truncation cap.
const fiveLineContent = "line1\nline2\nline3\nline4\nline5\n"

// truncationMarker mirrors the marker appended to cut content blocks.
const truncationMarker = "..."

func writeFixtureFile(t *testing.T, rootDirectory string, fileName string, content []byte) string {
	t.Helper()
	filePath := filepath.Join(rootDirectory, fileName)
	if writeError := os.WriteFile(filePath, content, 0o600); writeError != nil {
		t.Fatalf("failed to write %s: %v", filePath, writeError)
	}
	return filePath
}

func TestRenderTruncatesAtMaxLines(t *testing.T) {
	rootDirectory := t.TempDir()
	filePath := writeFixtureFile(t, rootDirectory, "long.py", []byte(fiveLineContent))

	entries := []traverse.Entry{
		{Path: rootDirectory, Depth: 0},
		{Path: filePath, Depth: 1},
	}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{MaxLines: 2})
	if renderError != nil {
		t.Fatalf("unexpected render error: %v", renderError)
	}

	if !strings.Contains(renderedOutput, "line1\nline2\n"+truncationMarker) {
		t.Fatalf("expected the first two lines followed by the marker, got:\n%s", renderedOutput)
	}
	if strings.Contains(renderedOutput, "line3") {
		t.Fatalf("expected no content beyond the cap, got:\n%s", renderedOutput)
	}
}

func TestRenderCompactsWhitespace(t *testing.T) {
	rootDirectory := t.TempDir()
	filePath := writeFixtureFile(t, rootDirectory, "spaced.py", []byte("  a \t  b  \n\t c\n"))

	entries := []traverse.Entry{
		{Path: rootDirectory, Depth: 0},
		{Path: filePath, Depth: 1},
	}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{Compact: true})
	if renderError != nil {
		t.Fatalf("unexpected render error: %v", renderError)
	}

	if !strings.Contains(renderedOutput, "a b\nc") {
		t.Fatalf("expected compacted content, got:\n%s", renderedOutput)
	}
}

func TestRenderMarksUndecodableFilesInline(t *testing.T) {
	rootDirectory := t.TempDir()
	binaryPath := writeFixtureFile(t, rootDirectory, "blob.py", []byte{0x00, 0x01, 0x02})
	textPath := writeFixtureFile(t, rootDirectory, "ok.py", []byte("fine\n"))

	entries := []traverse.Entry{
		{Path: rootDirectory, Depth: 0},
		{Path: binaryPath, Depth: 1},
		{Path: textPath, Depth: 1},
	}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{})
	if renderError == nil {
		t.Fatal("expected the first undecodable file to surface as an error")
	}
	if !strings.Contains(renderedOutput, "[Error reading file:") {
		t.Fatalf("expected an inline error marker, got:\n%s", renderedOutput)
	}
	if !strings.Contains(renderedOutput, "fine") {
		t.Fatalf("expected the remaining file to render its content, got:\n%s", renderedOutput)
	}
}

func TestRenderConnectorGlyphs(t *testing.T) {
	rootDirectory := t.TempDir()
	firstPath := writeFixtureFile(t, rootDirectory, "alpha.py", []byte("a\n"))
	secondPath := writeFixtureFile(t, rootDirectory, "beta.py", []byte("b\n"))

	entries := []traverse.Entry{
		{Path: rootDirectory, Depth: 0},
		{Path: firstPath, Depth: 1},
		{Path: secondPath, Depth: 1},
	}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{})
	if renderError != nil {
		t.Fatalf("unexpected render error: %v", renderError)
	}

	if !strings.Contains(renderedOutput, "├── alpha.py") {
		t.Fatalf("expected the interior connector for alpha.py, got:\n%s", renderedOutput)
	}
	if !strings.Contains(renderedOutput, "└── beta.py") {
		t.Fatalf("expected the closing connector for beta.py, got:\n%s", renderedOutput)
	}
}

func TestRenderNestedIndentation(t *testing.T) {
	rootDirectory := t.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, "pkg")
	if mkdirError := os.MkdirAll(nestedDirectory, 0o750); mkdirError != nil {
		t.Fatalf("failed to create %s: %v", nestedDirectory, mkdirError)
	}
	nestedPath := writeFixtureFile(t, nestedDirectory, "mod.py", []byte("x\n"))

	entries := []traverse.Entry{
		{Path: rootDirectory, Depth: 0},
		{Path: nestedDirectory, Depth: 1},
		{Path: nestedPath, Depth: 2},
	}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{})
	if renderError != nil {
		t.Fatalf("unexpected render error: %v", renderError)
	}

	if !strings.Contains(renderedOutput, "└── pkg\n    └── mod.py") {
		t.Fatalf("expected one indent unit before the nested connector, got:\n%s", renderedOutput)
	}
}

func TestRenderTreeLabelUsesRootBaseName(t *testing.T) {
	rootDirectory := t.TempDir()

	entries := []traverse.Entry{{Path: rootDirectory, Depth: 0}}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{})
	if renderError != nil {
		t.Fatalf("unexpected render error: %v", renderError)
	}

	if !strings.HasPrefix(renderedOutput, filepath.Base(rootDirectory)+"\n") {
		t.Fatalf("expected the output to open with the root label, got:\n%s", renderedOutput)
	}
}

func TestRenderContentBlockHeaderIsRelativePath(t *testing.T) {
	rootDirectory := t.TempDir()
	nestedDirectory := filepath.Join(rootDirectory, "src")
	if mkdirError := os.MkdirAll(nestedDirectory, 0o750); mkdirError != nil {
		t.Fatalf("failed to create %s: %v", nestedDirectory, mkdirError)
	}
	nestedPath := writeFixtureFile(t, nestedDirectory, "main.py", []byte("print()\n"))

	entries := []traverse.Entry{
		{Path: rootDirectory, Depth: 0},
		{Path: nestedDirectory, Depth: 1},
		{Path: nestedPath, Depth: 2},
	}
	renderedOutput, renderError := render.Render(entries, rootDirectory, render.Options{})
	if renderError != nil {
		t.Fatalf("unexpected render error: %v", renderError)
	}

	if !strings.Contains(renderedOutput, "src/main.py\nprint()") {
		t.Fatalf("expected the content block to open with the relative path, got:\n%s", renderedOutput)
	}
}
