// Package document loads the PDF under extraction and prepares its upload
// payload.
package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Document is a loaded PDF, validated and encoded for upload. It is
// immutable after Load and safe to share across concurrent batch executors.
type Document struct {
	path    string
	pages   int
	payload string
}

// Load reads a PDF from disk, verifies it parses as a PDF with at least one
// page, and encodes it as a base64 data URL for the extraction backend.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF file: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%s is not a readable PDF: %w", path, err)
	}
	if pages == 0 {
		return nil, fmt.Errorf("%s has no pages", path)
	}

	return &Document{
		path:    path,
		pages:   pages,
		payload: encodePayload(data),
	}, nil
}

// encodePayload wraps raw PDF bytes in a data URL.
func encodePayload(data []byte) string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)
}

// Path returns the path the document was loaded from.
func (d *Document) Path() string { return d.path }

// Pages returns the document's page count.
func (d *Document) Pages() int { return d.pages }

// Payload returns the base64 data URL sent to the extraction backend.
func (d *Document) Payload() string { return d.payload }

// Filename returns the base name used when attaching the document to a
// request.
func (d *Document) Filename() string { return filepath.Base(d.path) }
