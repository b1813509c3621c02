// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"

	"property-scan/internal/document"
	"property-scan/internal/normalize"
)

// ExtractFromTables scans every row of every table for canonical field
// names. A row contributes a field when the field name starts the row's
// joined text or, failing that, appears anywhere in it; the candidate
// value is the row's last non-empty cell. Rows with fewer than two
// non-empty cells are skipped (a label with no value). Later rows
// overwrite earlier matches for the same field.
//
// The contains-check can match a field name inside an unrelated longer
// label; that substring collision is a known precision gap.
func (e *Engine) ExtractFromTables(tables []document.Table) map[string]string {
	extracted := make(map[string]string)

	for _, table := range tables {
		for _, row := range table {
			rowText := joinRow(row)
			if rowText == "" {
				continue
			}

			var nonEmpty []string
			for _, cell := range row {
				if strings.TrimSpace(cell) != "" {
					nonEmpty = append(nonEmpty, cell)
				}
			}
			if len(nonEmpty) < 2 {
				continue
			}

			lowerRow := strings.ToLower(rowText)
			for _, field := range e.registry.FieldNames() {
				if !e.rowStart[field].MatchString(rowText) &&
					!strings.Contains(lowerRow, strings.ToLower(field)) {
					continue
				}
				extracted[field] = normalize.Normalize(nonEmpty[len(nonEmpty)-1])
			}
		}
	}
	return extracted
}

// joinRow renders a row's cells as a single delimited string.
func joinRow(row document.Row) string {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = strings.TrimSpace(c)
	}
	return strings.TrimSpace(strings.Join(cells, " | "))
}
