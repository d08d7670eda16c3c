// Package materials loads a course-materials directory into text chunks.
package materials

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/studyhall/kyoshi/internal/extract"
	"github.com/studyhall/kyoshi/internal/models"
)

// Loader walks a materials directory, extracts text per supported file type,
// and splits each document into overlapping character windows.
type Loader struct {
	extractor    *extract.Extractor
	chunkSize    int
	chunkOverlap int
	logger       *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for per-file load diagnostics.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// NewLoader creates a loader with the given chunk window size and overlap
// (both in characters).
func NewLoader(extractor *extract.Extractor, chunkSize, chunkOverlap int, opts ...LoaderOption) *Loader {
	ld := &Loader{
		extractor:    extractor,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load scans dir recursively and returns the chunk sequence covering every
// regular file with a supported extension. A missing directory is created
// empty. A file that fails extraction is logged and skipped; one bad file
// never aborts the scan. Unsupported extensions are skipped silently.
// Walk order is lexical, so identical input yields an identical sequence.
func (l *Loader) Load(dir string) ([]models.Chunk, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat materials dir: %w", err)
		}
		l.logger.Info("materials directory missing, creating empty", zap.String("dir", dir))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create materials dir: %w", err)
		}
		return nil, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("materials path %s is not a directory", dir)
	}

	var chunks []models.Chunk
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("walk error, skipping", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !l.extractor.Supported(filepath.Ext(path)) {
			return nil
		}
		text, err := l.extractor.Extract(path)
		if err != nil {
			l.logger.Warn("extraction failed, skipping file", zap.String("path", path), zap.Error(err))
			return nil
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}
		parts := ChunkText(text, l.chunkSize, l.chunkOverlap)
		for _, p := range parts {
			chunks = append(chunks, models.Chunk{Source: path, Text: p})
		}
		l.logger.Debug("loaded material",
			zap.String("path", path),
			zap.Int("chunks", len(parts)),
		)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk materials dir: %w", walkErr)
	}
	l.logger.Info("materials loaded", zap.String("dir", dir), zap.Int("total_chunks", len(chunks)))
	return chunks, nil
}
