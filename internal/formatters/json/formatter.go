// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"property-scan/internal/formatters"
	"property-scan/internal/registry"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements JSON output for property records. Field keys are
// emitted in catalog order, which is the serialization contract external
// stores rely on; a plain map marshal would lose that order.
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "JSON output with catalog-ordered field keys"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// Format renders the registry as a JSON document.
func (f *Formatter) Format(keys []string, records map[string]registry.Record, fields []string, options formatters.FormatterOptions) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"properties\": [")

	first := true
	for _, key := range keys {
		rec, ok := records[key]
		if !ok {
			continue
		}
		if !first {
			buf.WriteString(",")
		}
		first = false

		buf.WriteString("\n    {\n")
		writePair(&buf, 6, "key", key)
		buf.WriteString(",\n")
		writePair(&buf, 6, "source_file", rec.SourceFile)
		buf.WriteString(",\n      \"fields\": {")
		for i, field := range fields {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
			writePair(&buf, 8, field, rec.Fields[field])
		}
		buf.WriteString("\n      }")
		if options.Verbose {
			buf.WriteString(",\n")
			writePair(&buf, 6, "raw_text_preview", rec.RawTextPreview)
		}
		buf.WriteString("\n    }")
	}

	if !first {
		buf.WriteString("\n  ")
	}
	fmt.Fprintf(&buf, "],\n  \"total\": %d\n}", len(keys))
	return buf.String(), nil
}

// writePair writes an indented, JSON-escaped key/value pair.
func writePair(buf *bytes.Buffer, indent int, key, value string) {
	k, _ := json.Marshal(key)
	v, _ := json.Marshal(value)
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	buf.Write(k)
	buf.WriteString(": ")
	buf.Write(v)
}
