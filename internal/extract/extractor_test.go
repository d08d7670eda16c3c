package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractBytes_plain(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("Hello world\nLine 2"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Hello world\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_plainInvalidUTF8(t *testing.T) {
	e := NewExtractor()
	got, err := e.ExtractBytes([]byte("hello\x80world"), ".md")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "hello�world" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_unknownExtension(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("raw"), ".xyz"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if e.Supported(".xyz") {
		t.Error(".xyz should not be supported")
	}
	if !e.Supported(".PDF") {
		t.Error("extension check should be case-insensitive")
	}
}

// zipFixture builds an in-memory zip with the given entries.
func zipFixture(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractBytes_docx(t *testing.T) {
	docXML := `<w:document><w:body><w:p w:rsidR="00A"><w:r><w:t>Quick sort</w:t></w:r><w:r><w:t xml:space="preserve">is divide and conquer</w:t></w:r></w:p></w:body></w:document>`
	content := zipFixture(t, map[string]string{"word/document.xml": docXML})

	e := NewExtractor()
	got, err := e.ExtractBytes(content, ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Quick sort is divide and conquer" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_pptx(t *testing.T) {
	slide1 := `<p:sld><a:t>Lecture 1</a:t><a:t>Arrays</a:t></p:sld>`
	slide2 := `<p:sld><a:t>Linked lists</a:t></p:sld>`
	content := zipFixture(t, map[string]string{
		"ppt/slides/slide1.xml": slide1,
		"ppt/slides/slide2.xml": slide2,
		"ppt/other.xml":         `<a:t>ignored</a:t>`,
	})

	e := NewExtractor()
	got, err := e.ExtractBytes(content, ".pptx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Lecture 1 Arrays\n\nLinked lists" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_odp(t *testing.T) {
	contentXML := `<office:document-content><text:h>Heaps</text:h><text:p>A heap is a tree</text:p></office:document-content>`
	content := zipFixture(t, map[string]string{"content.xml": contentXML})

	e := NewExtractor()
	got, err := e.ExtractBytes(content, ".odp")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "A heap is a tree Heaps" {
		t.Errorf("got %q", got)
	}
}

func TestExtractBytes_excel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Problem")
	f.SetCellValue("Sheet1", "A2", "1")
	f.SetCellValue("Sheet1", "B2", "Implement quicksort")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	e := NewExtractor()
	got, err := e.ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if got != "Problem\n1\tImplement quicksort" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_plainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("File content"), 0600); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	got, err := e.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "File content" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_nonexistent(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract("/nonexistent/path/file.txt"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
