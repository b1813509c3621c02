// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package processor

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-scan/internal/catalog"
	"property-scan/internal/document"
	"property-scan/internal/extract"
	"property-scan/internal/observability"
	"property-scan/internal/registry"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	engine := extract.NewEngine(catalog.MustRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(engine, document.DefaultReaders(), registry.New(), logger, nil)
}

func writeReport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFile_AssignsKey(t *testing.T) {
	p := newTestProcessor(t)
	path := writeReport(t, t.TempDir(), "report.txt", "Property Address: 12 Oak St\nTotal Units: 3\n")

	res := p.ProcessFile(path)
	require.NoError(t, res.Err)

	assert.Equal(t, "Property_001", res.Key)
	assert.False(t, res.Updated)
	assert.Equal(t, "12 Oak St", res.Record.Address())
	assert.Equal(t, "report.txt", res.Record.SourceFile)
	assert.Equal(t, 1, p.Registry().Len())
}

func TestProcessFile_UpdatesExistingProperty(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()

	first := writeReport(t, dir, "first.txt", "Property Address: 12 Oak St\nTotal Units: 3\n")
	second := writeReport(t, dir, "second.txt", "Property Address: 12 OAK ST\nTotal Units: 5\n")

	res1 := p.ProcessFile(first)
	res2 := p.ProcessFile(second)

	require.NoError(t, res1.Err)
	require.NoError(t, res2.Err)
	assert.Equal(t, res1.Key, res2.Key)
	assert.True(t, res2.Updated)

	stored, ok := p.Registry().Get(res1.Key)
	require.True(t, ok)
	assert.Equal(t, "5", stored.Fields["Total Units"])
}

func TestProcessBatch_FailureIsolation(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()

	good1 := writeReport(t, dir, "good1.txt", "Property Address: 1 First St\n")
	missing := filepath.Join(dir, "missing.txt")
	good2 := writeReport(t, dir, "good2.txt", "Property Address: 2 Second St\n")

	results := p.ProcessBatch([]string{good1, missing, good2})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "Property_001", results[0].Key)

	assert.Error(t, results[1].Err, "the missing file fails alone")
	assert.Empty(t, results[1].Key)

	assert.NoError(t, results[2].Err, "a failure must not abort the rest of the batch")
	assert.Equal(t, "Property_002", results[2].Key)

	assert.Equal(t, 2, p.Registry().Len())
}

func TestProcessFile_ObservabilityFields(t *testing.T) {
	var buf bytes.Buffer
	observer := observability.NewStandardObserver(observability.ObservabilityDebug, &buf)

	engine := extract.NewEngine(catalog.MustRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(engine, document.DefaultReaders(), registry.New(), logger, observer)

	path := writeReport(t, t.TempDir(), "report.txt", "Property Address: 12 Oak St\n")
	res := p.ProcessFile(path)
	require.NoError(t, res.Err)

	out := buf.String()
	assert.Contains(t, out, `"session_id":"`+p.Registry().SessionID+`"`)
	assert.Contains(t, out, `"page_count":1`)
	assert.Contains(t, out, `"fields_found":1`)
	assert.Contains(t, out, `"property_key":"Property_001"`)
}

func TestParseDocument_PreviewBound(t *testing.T) {
	p := newTestProcessor(t)
	p.PreviewLength = 10
	path := writeReport(t, t.TempDir(), "long.txt", "Property Address: 12 Oak Street in a very long report body\n")

	res := p.ProcessFile(path)
	require.NoError(t, res.Err)
	assert.Equal(t, "Property A...", res.Record.RawTextPreview)
}
