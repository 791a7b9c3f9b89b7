// Package file provides a document source reading course material from a
// local directory. PDF files contribute one document per page; plain-text
// and markdown files are treated as single-page documents.
package file

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
	"github.com/edupath/edubot/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source loads documents from a local directory tree.
type Source struct{}

// NewSource creates a local-directory document source.
func NewSource() *Source {
	return &Source{}
}

// Load reads every supported file under dir and returns one document per
// extracted page. Hidden files and directories are skipped.
func (s *Source) Load(ctx context.Context, dir string) ([]domain.Document, int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, dir)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s is not a directory", domain.ErrSourceUnavailable, dir)
	}

	var docs []domain.Document
	var files int

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var pages []domain.Document
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			pages, err = loadPDF(path)
		case ".txt", ".md":
			pages, err = loadText(path)
		default:
			return nil
		}
		if err != nil {
			return err
		}

		logger.Debug("Loaded %s: %d page(s)", filepath.Base(path), len(pages))
		docs = append(docs, pages...)
		files++
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if files == 0 {
		return nil, 0, fmt.Errorf("%w: no supported files in %s", domain.ErrInvalidInput, dir)
	}

	return docs, files, nil
}

// loadPDF extracts one document per page of a PDF file.
func loadPDF(path string) ([]domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrExtractionFailed, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrExtractionFailed, path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrExtractionFailed, path, err)
	}

	name := filepath.Base(path)
	var docs []domain.Document

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Skipping page %d of %s: %v", i, name, err)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		docs = append(docs, domain.Document{
			ID:         uuid.NewString(),
			SourceFile: name,
			Page:       i,
			Text:       text,
		})
	}

	return docs, nil
}

// loadText reads a plain-text or markdown file as a single-page document.
func loadText(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrExtractionFailed, path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	return []domain.Document{
		{
			ID:         uuid.NewString(),
			SourceFile: filepath.Base(path),
			Page:       1,
			Text:       text,
		},
	}, nil
}
