// Package extract provides plain-text extraction from course material files.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor extracts plain text from supported document formats.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether files with the given extension (leading dot,
// any case) can be extracted. Unsupported files are skipped by the loader
// rather than treated as errors.
func (e *Extractor) Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".md", ".pdf", ".pptx", ".docx", ".odp", ".xlsx":
		return true
	}
	return false
}

// Extract reads the file at path and returns its text content.
// Plain text files (.txt, .md) are returned as-is, UTF-8 validated. PDF,
// DOCX, PPTX, ODP, and XLSX are decoded from their binary formats.
// Returns an error if the file cannot be read or decoded; a format whose
// content yields no text returns an empty string, not an error.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, filepath.Ext(path))
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".pptx":
		return extractPPTX(content)
	case ".odp":
		return extractODP(content)
	case ".xlsx":
		return extractExcel(content)
	case ".txt", ".md":
		return extractPlain(content)
	default:
		return "", fmt.Errorf("unsupported extension %q", ext)
	}
}
