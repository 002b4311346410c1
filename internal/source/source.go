// Package source adapts external document-parsing libraries into a uniform
// shape: an ordered sequence of paragraph-level text lines plus zero or more
// raw table regions. The structuring pipeline treats these adapters as
// opaque producers.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/prodkb/prodkb/internal/tables"
)

// Document is the raw material for structuring: ordered text lines and the
// table regions extracted alongside them.
type Document struct {
	Lines      []string
	Tables     tables.Result
	SourceType string // origin format tag: docx, pdf, md, html, txt
	Pages      int    // page count for paginated sources (0 if N/A)
}

// Source converts raw document bytes into a Document.
type Source interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".txt":      true,
}

// ForFile returns the appropriate source adapter for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXSource{}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".txt":
		return &TextSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
