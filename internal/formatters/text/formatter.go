// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"property-scan/internal/formatters"
	"property-scan/internal/registry"

	"github.com/fatih/color"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements human-readable text output for property records
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable property listing with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// Format renders one block per property in registry order, each field on
// its own line in catalog order.
func (f *Formatter) Format(keys []string, records map[string]registry.Record, fields []string, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	if len(keys) == 0 {
		return "No properties stored.", nil
	}

	// Align field values on the widest field name.
	width := 0
	for _, field := range fields {
		if len(field) > width {
			width = len(field)
		}
	}

	var sb strings.Builder
	for _, key := range keys {
		rec, ok := records[key]
		if !ok {
			continue
		}

		address := rec.Address()
		if address == "" {
			address = "(no address)"
		}
		sb.WriteString(f.colors["white"].Sprintf("%s — %s", key, address))
		sb.WriteString("\n")
		sb.WriteString(f.colors["cyan"].Sprintf("  Source: %s", rec.SourceFile))
		sb.WriteString("\n")

		for _, field := range fields {
			value := rec.Fields[field]
			if value == "" {
				value = "-"
			}
			sb.WriteString(fmt.Sprintf("  %-*s  %s\n", width+1, field+":", f.colors["green"].Sprint(value)))
		}

		if options.Verbose && rec.RawTextPreview != "" {
			sb.WriteString(f.colors["yellow"].Sprintf("  Preview: %s", rec.RawTextPreview))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Total properties stored: %d", len(keys)))
	return sb.String(), nil
}
