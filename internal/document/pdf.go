// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFReader extracts page text and tabular regions from PDF files using
// ledongthuc/pdf for content and pdfcpu for up-front validation.
type PDFReader struct {
	// MaxPages limits processing for very large PDFs.
	MaxPages int

	pdfConfig *model.Configuration
}

// NewPDFReader creates a PDF reader with default limits.
func NewPDFReader() *PDFReader {
	config := model.NewDefaultConfiguration()
	config.ValidationMode = model.ValidationRelaxed

	return &PDFReader{
		MaxPages:  50,
		pdfConfig: config,
	}
}

// CanRead checks if this reader handles the given file.
func (pr *PDFReader) CanRead(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".pdf")
}

// Read extracts every page's text rows and reconstructed tables.
// Individual pages that fail to extract yield empty pages; only a file
// that cannot be opened or validated returns an *OpenError.
func (pr *PDFReader) Read(filePath string) (*Document, error) {
	base := filepath.Base(filePath)

	// Validate the PDF structure before attempting content extraction.
	if err := api.ValidateFile(filePath, pr.pdfConfig); err != nil {
		return nil, &OpenError{File: base, Err: fmt.Errorf("invalid PDF: %w", err)}
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, &OpenError{File: base, Err: err}
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > pr.MaxPages {
		pageCount = pr.MaxPages
	}

	doc := &Document{SourceFile: base}
	for i := 1; i <= pageCount; i++ {
		doc.Pages = append(doc.Pages, pr.readPage(r, i))
	}
	return doc, nil
}

// readPage extracts one page, degrading to an empty page on failure.
func (pr *PDFReader) readPage(r *pdf.Reader, pageNum int) Page {
	defer func() {
		// ledongthuc/pdf panics on some malformed content streams.
		_ = recover()
	}()

	p := r.Page(pageNum)
	if p.V.IsNull() {
		return Page{}
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		// Fallback to plain text extraction; no tables for this page.
		text, err := p.GetPlainText(nil)
		if err != nil {
			return Page{}
		}
		return Page{Text: text}
	}

	// Sort rows top-to-bottom for proper reading order.
	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	var buf strings.Builder
	var table Table
	for _, row := range sorted {
		cells := splitRowCells(row.Content)
		line := strings.TrimSpace(strings.Join(cells, " "))
		if line == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")

		// Rows that split into multiple cells form the page's tabular region.
		if len(cells) >= 2 {
			table = append(table, Row(cells))
		}
	}

	page := Page{Text: buf.String()}
	if len(table) > 0 {
		page.Tables = []Table{table}
	}
	return page
}

// averageY calculates the average Y coordinate of a row's text elements.
func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

// splitRowCells reconstructs a row's cells from positioned text elements.
// Elements separated by a small gap are joined with a space into one cell;
// a gap wider than two font heights starts a new cell.
func splitRowCells(elements []pdf.Text) []string {
	if len(elements) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var cells []string
	var cell strings.Builder

	for i, e := range sorted {
		cell.WriteString(e.S)

		if i == len(sorted)-1 {
			break
		}
		next := sorted[i+1]
		gap := next.X - (e.X + e.W)

		fontSize := e.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}

		switch {
		case gap > fontSize*2:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		case gap > fontSize*0.2:
			cell.WriteString(" ")
		}
	}
	if s := strings.TrimSpace(cell.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}
