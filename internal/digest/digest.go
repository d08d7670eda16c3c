// Package digest builds the global course-materials digest handed verbatim
// to every answering agent.
//
// The digest is deliberately exhaustive: no query scoring, filtering, or
// retrieval happens here. A single coherent corpus lets the model itself
// decide which chapters matter for a question ("review chapters 1-10" style
// requests), at the cost of tokens. Do not replace this with ranked
// retrieval.
package digest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/studyhall/kyoshi/internal/models"
)

// Digest is the immutable result of grouping all chunks by source document.
// It is built once per materials scan and shared read-only across sessions.
type Digest struct {
	// Sources lists source paths in first-seen chunk order.
	Sources []string
	// Sections maps source path to its concatenated chunk text.
	Sections map[string]string
	// Text is the rendered digest: header, table of contents, and one
	// delimited section per source.
	Text string
	// NumChunks is the chunk count the digest was built from.
	NumChunks int
	// Truncated reports how many trailing sections were dropped to fit the
	// character budget.
	Truncated int
}

const digestHeader = `[Course Materials Digest]

Below are all lecture slides, handouts, and exercises loaded for this course.
Each material roughly corresponds to a chapter or topic. Reference whichever
parts fit the student's question (e.g. only chapters 1-10, or everything).
`

// Build groups chunks by source (preserving first-seen order) and renders the
// digest text. An empty chunk set yields an empty digest (Text == "").
//
// maxChars caps the rendered text in runes; 0 means unlimited. When the cap
// is hit, whole trailing sections are dropped (a section is never split
// mid-chunk) and an omission line is appended.
func Build(chunks []models.Chunk, maxChars int) *Digest {
	d := &Digest{
		Sections:  make(map[string]string),
		NumChunks: len(chunks),
	}
	if len(chunks) == 0 {
		return d
	}

	grouped := make(map[string][]string)
	for _, ch := range chunks {
		if _, seen := grouped[ch.Source]; !seen {
			d.Sources = append(d.Sources, ch.Source)
		}
		grouped[ch.Source] = append(grouped[ch.Source], ch.Text)
	}
	for _, src := range d.Sources {
		d.Sections[src] = strings.Join(grouped[src], "\n")
	}

	d.Text = d.render(maxChars)
	return d
}

// render produces the digest text, enforcing the character budget by
// dropping whole trailing sections.
func (d *Digest) render(maxChars int) string {
	var b strings.Builder
	b.WriteString(digestHeader)
	for i, src := range d.Sources {
		fmt.Fprintf(&b, "%d. %s\n", i+1, filepath.Base(src))
	}
	b.WriteString("\n[Detailed Content by Material]\n")

	used := len([]rune(b.String()))
	for i, src := range d.Sources {
		section := fmt.Sprintf("\n===== Material %d: %s =====\n%s\n", i+1, filepath.Base(src), d.Sections[src])
		cost := len([]rune(section))
		if maxChars > 0 && used+cost > maxChars {
			d.Truncated = len(d.Sources) - i
			fmt.Fprintf(&b, "\n(%d material(s) omitted to fit the context budget)\n", d.Truncated)
			break
		}
		b.WriteString(section)
		used += cost
	}
	return b.String()
}
