// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-scan/internal/extract"
	"property-scan/internal/formatters"
	"property-scan/internal/registry"
)

func testSnapshot() ([]string, map[string]registry.Record, []string) {
	fields := []string{"Property Address", "Total Units", "Windows"}
	keys := []string{"Property_001", "Property_002"}
	records := map[string]registry.Record{
		"Property_001": registry.NewRecord(extract.Result{
			"Property Address": "123 Main St",
			"Total Units":      "4",
		}, "report.pdf", "preview text"),
		"Property_002": registry.NewRecord(extract.Result{}, "other.txt", ""),
	}
	return keys, records, fields
}

func TestFormat_Empty(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(nil, nil, nil, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "No properties stored.", out)
}

func TestFormat_ListsPropertiesInOrder(t *testing.T) {
	keys, records, fields := testSnapshot()

	out, err := NewFormatter().Format(keys, records, fields, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)

	assert.Contains(t, out, "Property_001")
	assert.Contains(t, out, "123 Main St")
	assert.Contains(t, out, "(no address)", "a record without an address gets the placeholder")
	assert.Contains(t, out, "Total properties stored: 2")

	// Insertion order is preserved.
	assert.Less(t, strings.Index(out, "Property_001"), strings.Index(out, "Property_002"))

	// Empty fields render as a dash.
	assert.Contains(t, out, "Windows:")
	assert.NotContains(t, out, "Preview:", "preview only appears in verbose mode")
}

func TestFormat_Verbose(t *testing.T) {
	keys, records, fields := testSnapshot()

	out, err := NewFormatter().Format(keys, records, fields, formatters.FormatterOptions{Verbose: true, NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Preview: preview text")
}
