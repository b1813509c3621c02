// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"os"
	"path/filepath"
	"strings"
)

// TextReader handles plain text documents. The whole file is one page;
// lines with pipe or tab separators additionally form table rows so that
// delimited reports keep their structure.
type TextReader struct{}

// NewTextReader creates a plain text reader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// CanRead checks if this reader handles the given file.
func (tr *TextReader) CanRead(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".txt", ".text":
		return true
	}
	return false
}

// Read loads the file as a single-page document.
func (tr *TextReader) Read(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &OpenError{File: filepath.Base(filePath), Err: err}
	}

	text := string(data)
	page := Page{Text: text}

	var table Table
	for _, line := range strings.Split(text, "\n") {
		row := splitDelimitedLine(line)
		if len(row) >= 2 {
			table = append(table, row)
		}
	}
	if len(table) > 0 {
		page.Tables = []Table{table}
	}

	return &Document{
		SourceFile: filepath.Base(filePath),
		Pages:      []Page{page},
	}, nil
}

// splitDelimitedLine splits a line on pipe or tab separators into trimmed
// cells. Lines without a separator return nil.
func splitDelimitedLine(line string) Row {
	var sep string
	switch {
	case strings.Contains(line, "|"):
		sep = "|"
	case strings.Contains(line, "\t"):
		sep = "\t"
	default:
		return nil
	}

	parts := strings.Split(line, sep)
	row := make(Row, 0, len(parts))
	for _, p := range parts {
		row = append(row, strings.TrimSpace(p))
	}
	return row
}
