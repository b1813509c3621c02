// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JSONReader loads documents already expressed in the page model, as
// produced by an upstream parsing service:
//
//	{"pages": [{"text": "...", "tables": [[["label", "value"]]]}]}
//
// Null page text and null cells map to empty strings.
type JSONReader struct{}

// NewJSONReader creates a JSON document reader.
func NewJSONReader() *JSONReader {
	return &JSONReader{}
}

// CanRead checks if this reader handles the given file.
func (jr *JSONReader) CanRead(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".json")
}

type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

type jsonPage struct {
	Text   *string      `json:"text"`
	Tables [][][]*string `json:"tables"`
}

// Read decodes the page model from the file.
func (jr *JSONReader) Read(filePath string) (*Document, error) {
	base := filepath.Base(filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &OpenError{File: base, Err: err}
	}

	var raw jsonDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &OpenError{File: base, Err: fmt.Errorf("invalid document JSON: %w", err)}
	}

	doc := &Document{SourceFile: base}
	for _, p := range raw.Pages {
		page := Page{}
		if p.Text != nil {
			page.Text = *p.Text
		}
		for _, t := range p.Tables {
			table := make(Table, 0, len(t))
			for _, r := range t {
				row := make(Row, 0, len(r))
				for _, c := range r {
					if c == nil {
						row = append(row, "")
					} else {
						row = append(row, *c)
					}
				}
				table = append(table, row)
			}
			if len(table) > 0 {
				page.Tables = append(page.Tables, table)
			}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
