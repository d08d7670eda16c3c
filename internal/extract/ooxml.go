package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Office Open XML and OpenDocument files are ZIP archives; slide decks and
// handouts only need their text runs, so each format is reduced to pulling
// the relevant XML parts and collecting text-node matches.

// wtTag matches <w:t>text</w:t> with any attributes (e.g. xml:space="preserve").
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// atTag matches <a:t>text</a:t> text runs inside pptx slides.
var atTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)

// odpTextTags match OpenDocument paragraph, span, and heading elements.
var (
	odpTextP    = regexp.MustCompile(`<text:p[^>]*>([^<]*)</text:p>`)
	odpTextSpan = regexp.MustCompile(`<text:span[^>]*>([^<]*)</text:span>`)
	odpTextH    = regexp.MustCompile(`<text:h[^>]*>([^<]*)</text:h>`)
)

// readZipEntry returns the contents of the named entry, or nil if absent.
func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, nil
}

// collectMatches appends the first submatch of every match to b, space-separated.
func collectMatches(b *strings.Builder, re *regexp.Regexp, s string) {
	for _, p := range re.FindAllStringSubmatch(s, -1) {
		t := strings.TrimSpace(p[1])
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
}

// extractDOCX extracts text from .docx bytes by collecting every <w:t> text
// run in word/document.xml, so real-world documents with run attributes
// still yield their content.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	docXML, err := readZipEntry(zr, "word/document.xml")
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	if docXML == nil {
		return "", fmt.Errorf("extract DOCX: word/document.xml not found")
	}
	var b strings.Builder
	collectMatches(&b, wtTag, string(docXML))
	return b.String(), nil
}

// extractPPTX extracts text from .pptx bytes: each ppt/slides/slideN.xml part
// contributes its <a:t> text runs, slides separated by newlines so one slide
// stays one logical block for chunking.
func extractPPTX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract PPTX: not a zip: %w", err)
	}
	var out strings.Builder
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "ppt/slides/slide") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		data, err := readZipEntry(zr, f.Name)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: %w", err)
		}
		var slide strings.Builder
		collectMatches(&slide, atTag, string(data))
		if slide.Len() == 0 {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(slide.String())
	}
	return strings.TrimSpace(out.String()), nil
}

// extractODP extracts text from .odp bytes (OpenDocument presentation):
// content.xml holds all slides; paragraph, span, and heading elements carry
// the text.
func extractODP(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract ODP: not a zip: %w", err)
	}
	contentXML, err := readZipEntry(zr, "content.xml")
	if err != nil {
		return "", fmt.Errorf("extract ODP: %w", err)
	}
	if contentXML == nil {
		return "", fmt.Errorf("extract ODP: content.xml not found")
	}
	s := string(contentXML)
	var b strings.Builder
	collectMatches(&b, odpTextP, s)
	collectMatches(&b, odpTextSpan, s)
	collectMatches(&b, odpTextH, s)
	return b.String(), nil
}
