// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	gocsv "encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-scan/internal/extract"
	"property-scan/internal/formatters"
	"property-scan/internal/registry"
)

func TestFormat_HeaderAndRows(t *testing.T) {
	fields := []string{"Property Address", "Total Units"}
	keys := []string{"Property_001", "Property_002"}
	records := map[string]registry.Record{
		"Property_001": registry.NewRecord(extract.Result{
			"Property Address": "123 Main St, Apt 4",
			"Total Units":      "4",
		}, "report.pdf", "preview"),
		"Property_002": registry.NewRecord(extract.Result{}, "other.txt", ""),
	}

	out, err := NewFormatter().Format(keys, records, fields, formatters.FormatterOptions{})
	require.NoError(t, err)

	rows, err := gocsv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err, "output must be parseable CSV even with commas in values")

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Key", "Property Address", "Total Units", "Source File"}, rows[0])
	assert.Equal(t, []string{"Property_001", "123 Main St, Apt 4", "4", "report.pdf"}, rows[1])
	assert.Equal(t, []string{"Property_002", "", "", "other.txt"}, rows[2])
}

func TestFormat_VerboseAddsPreviewColumn(t *testing.T) {
	keys := []string{"Property_001"}
	records := map[string]registry.Record{
		"Property_001": registry.NewRecord(extract.Result{}, "a.txt", "the preview"),
	}

	out, err := NewFormatter().Format(keys, records, nil, formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)

	rows, err := gocsv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Key", "Source File", "Raw Text Preview"}, rows[0])
	assert.Equal(t, []string{"Property_001", "a.txt", "the preview"}, rows[1])
}

func TestFormat_EmptyRegistry(t *testing.T) {
	out, err := NewFormatter().Format(nil, nil, []string{"Property Address"}, formatters.FormatterOptions{})
	require.NoError(t, err)

	rows, err := gocsv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
