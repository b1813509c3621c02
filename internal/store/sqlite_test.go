// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-scan/internal/extract"
	"property-scan/internal/registry"
)

var testFields = []string{"Property Address", "Total Units"}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(filepath.Join(t.TempDir(), "session.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reg := registry.New()
	reg.AssignOrUpdate(registry.NewRecord(extract.Result{
		"Property Address": "1 First St",
		"Total Units":      "4",
	}, "first.pdf", "first preview"))
	reg.AssignOrUpdate(registry.NewRecord(extract.Result{
		"Property Address": "2 Second St",
	}, "second.pdf", "second preview"))

	require.NoError(t, s.Save(ctx, reg, testFields))

	restored := registry.New()
	require.NoError(t, s.Load(ctx, reg.SessionID, restored))

	assert.Equal(t, reg.SessionID, restored.SessionID)
	assert.Equal(t, []string{"Property_001", "Property_002"}, restored.Keys())

	rec, ok := restored.Get("Property_001")
	require.True(t, ok)
	assert.Equal(t, "1 First St", rec.Fields["Property Address"])
	assert.Equal(t, "4", rec.Fields["Total Units"])
	assert.Equal(t, "first.pdf", rec.SourceFile)
	assert.Equal(t, "first preview", rec.RawTextPreview)
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	reg := registry.New()
	reg.AssignOrUpdate(registry.NewRecord(extract.Result{"Property Address": "1 First St"}, "a.pdf", ""))
	require.NoError(t, s.Save(ctx, reg, testFields))

	reg.AssignOrUpdate(registry.NewRecord(extract.Result{"Property Address": "2 Second St"}, "b.pdf", ""))
	require.NoError(t, s.Save(ctx, reg, testFields))

	restored := registry.New()
	require.NoError(t, s.Load(ctx, reg.SessionID, restored))
	assert.Equal(t, 2, restored.Len())
}

func TestLoad_UnknownSession(t *testing.T) {
	s := openTestStore(t)

	err := s.Load(context.Background(), "no-such-session", registry.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_SessionsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	regA := registry.New()
	regA.AssignOrUpdate(registry.NewRecord(extract.Result{"Property Address": "1 A St"}, "a.pdf", ""))
	require.NoError(t, s.Save(ctx, regA, testFields))

	regB := registry.New()
	regB.AssignOrUpdate(registry.NewRecord(extract.Result{"Property Address": "1 B St"}, "b.pdf", ""))
	regB.AssignOrUpdate(registry.NewRecord(extract.Result{"Property Address": "2 B St"}, "b2.pdf", ""))
	require.NoError(t, s.Save(ctx, regB, testFields))

	restored := registry.New()
	require.NoError(t, s.Load(ctx, regA.SessionID, restored))
	assert.Equal(t, 1, restored.Len())
}
