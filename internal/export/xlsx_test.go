// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"property-scan/internal/extract"
	"property-scan/internal/registry"
)

func TestExportXLSX(t *testing.T) {
	fields := []string{"Property Address", "Total Units"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(fields, logger)

	reg := registry.New()
	reg.AssignOrUpdate(registry.NewRecord(extract.Result{
		"Property Address": "1 First St",
		"Total Units":      "4",
	}, "first.pdf", "first preview"))
	reg.AssignOrUpdate(registry.NewRecord(extract.Result{
		"Property Address": "2 Second St",
	}, "second.pdf", ""))

	data, err := svc.ExportXLSX(reg)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Properties")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Key", "Property Address", "Total Units", "Source File", "Raw Text Preview"}, rows[0])
	assert.Equal(t, "Property_001", rows[1][0])
	assert.Equal(t, "1 First St", rows[1][1])
	assert.Equal(t, "4", rows[1][2])
	assert.Equal(t, "first.pdf", rows[1][3])
	assert.Equal(t, "Property_002", rows[2][0])
}

func TestExportXLSX_EmptyRegistry(t *testing.T) {
	svc := NewService([]string{"Property Address"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	data, err := svc.ExportXLSX(registry.New())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Properties")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
