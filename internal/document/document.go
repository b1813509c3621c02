// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document owns the page-oriented document model consumed by the
// extraction engine, plus the readers that produce it from source files.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Row is an ordered sequence of table cells. Absent cells are empty strings.
type Row []string

// Table is an ordered sequence of rows.
type Table []Row

// Page holds the extracted text and tables of one document page. A page
// whose text or table extraction failed carries empty text and no tables;
// page-level failures never abort the document.
type Page struct {
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// Document is the reader-independent representation of one source file.
type Document struct {
	SourceFile string `json:"source_file"`
	Pages      []Page `json:"pages"`
}

// Text concatenates the page texts in page order, separated by newlines.
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Tables returns all tables across all pages in page order.
func (d *Document) Tables() []Table {
	var tables []Table
	for _, p := range d.Pages {
		tables = append(tables, p.Tables...)
	}
	return tables
}

// Reader turns one source file format into a Document.
type Reader interface {
	// CanRead checks if this reader handles the given file.
	CanRead(filePath string) bool

	// Read extracts pages from the file. A failure to open or decode the
	// file returns an *OpenError; page-level failures are absorbed.
	Read(filePath string) (*Document, error)
}

// DefaultReaders returns the readers for all supported formats.
func DefaultReaders() []Reader {
	return []Reader{
		NewPDFReader(),
		NewTextReader(),
		NewJSONReader(),
	}
}

// Read dispatches a file to the first reader that can handle it.
func Read(filePath string, readers []Reader) (*Document, error) {
	for _, r := range readers {
		if r.CanRead(filePath) {
			return r.Read(filePath)
		}
	}
	return nil, &OpenError{
		File: filepath.Base(filePath),
		Err:  fmt.Errorf("unsupported file type %q", filepath.Ext(filePath)),
	}
}
