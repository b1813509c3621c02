// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDocument_TextAndTables(t *testing.T) {
	doc := &Document{
		SourceFile: "multi.pdf",
		Pages: []Page{
			{Text: "page one", Tables: []Table{{{"a", "b"}}}},
			{Text: ""},
			{Text: "page three", Tables: []Table{{{"c", "d"}}, {{"e", "f"}}}},
		},
	}

	assert.Equal(t, "page one\npage three", doc.Text())
	assert.Len(t, doc.Tables(), 3)
}

func TestTextReader_CanRead(t *testing.T) {
	tr := NewTextReader()
	assert.True(t, tr.CanRead("report.txt"))
	assert.True(t, tr.CanRead("REPORT.TXT"))
	assert.True(t, tr.CanRead("notes.text"))
	assert.False(t, tr.CanRead("report.pdf"))
}

func TestTextReader_Read(t *testing.T) {
	path := writeTempFile(t, "report.txt", "Property Address: 1 Oak St\nTotal Units | 4\nRoofing | Asphalt | 2019\n")

	doc, err := NewTextReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, "report.txt", doc.SourceFile)
	require.Len(t, doc.Pages, 1)
	assert.Contains(t, doc.Pages[0].Text, "Property Address: 1 Oak St")

	tables := doc.Tables()
	require.Len(t, tables, 1)
	require.Len(t, tables[0], 2)
	assert.Equal(t, Row{"Total Units", "4"}, tables[0][0])
	assert.Equal(t, Row{"Roofing", "Asphalt", "2019"}, tables[0][1])
}

func TestTextReader_ReadTabDelimited(t *testing.T) {
	path := writeTempFile(t, "report.txt", "Total Units\t6\n")

	doc, err := NewTextReader().Read(path)
	require.NoError(t, err)
	require.Len(t, doc.Tables(), 1)
	assert.Equal(t, Row{"Total Units", "6"}, doc.Tables()[0][0])
}

func TestTextReader_ReadMissingFile(t *testing.T) {
	_, err := NewTextReader().Read("/nonexistent/report.txt")
	require.Error(t, err)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, "report.txt", openErr.File)
}

func TestJSONReader_Read(t *testing.T) {
	content := `{"pages": [
		{"text": "Property Address: 9 Elm St", "tables": [[["Total Units", null, "6"]]]},
		{"text": null}
	]}`
	path := writeTempFile(t, "doc.json", content)

	doc, err := NewJSONReader().Read(path)
	require.NoError(t, err)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "Property Address: 9 Elm St", doc.Pages[0].Text)
	assert.Equal(t, "", doc.Pages[1].Text, "null page text maps to empty")

	tables := doc.Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, Row{"Total Units", "", "6"}, tables[0][0], "null cell maps to empty string")
}

func TestJSONReader_ReadInvalid(t *testing.T) {
	path := writeTempFile(t, "doc.json", "{not json")

	_, err := NewJSONReader().Read(path)
	require.Error(t, err)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
}

func TestRead_DispatchesByExtension(t *testing.T) {
	path := writeTempFile(t, "report.txt", "hello")

	doc, err := Read(path, DefaultReaders())
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Text())
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("photo.tiff", DefaultReaders())
	require.Error(t, err)

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Contains(t, err.Error(), ".tiff")
}
