// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"bytes"
	"encoding/csv"

	"property-scan/internal/formatters"
	"property-scan/internal/registry"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements CSV output: one row per property, columns in
// catalog order.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "CSV output with one row per property"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format renders the registry as CSV.
func (f *Formatter) Format(keys []string, records map[string]registry.Record, fields []string, options formatters.FormatterOptions) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Key"}, fields...)
	header = append(header, "Source File")
	if options.Verbose {
		header = append(header, "Raw Text Preview")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, key := range keys {
		rec, ok := records[key]
		if !ok {
			continue
		}
		row := make([]string, 0, len(header))
		row = append(row, key)
		for _, field := range fields {
			row = append(row, rec.Fields[field])
		}
		row = append(row, rec.SourceFile)
		if options.Verbose {
			row = append(row, rec.RawTextPreview)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
