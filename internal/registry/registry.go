// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the per-session collection of property records
// and the identity resolution that deduplicates them by address.
package registry

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"property-scan/internal/extract"
)

// PreviewLength bounds the raw text preview stored on each record.
const PreviewLength = 1000

// addressField is the canonical field that drives identity resolution.
const addressField = "Property Address"

// Record is the latest-known snapshot for one property: the full
// extraction result plus source metadata and a bounded text preview.
type Record struct {
	Fields         extract.Result
	SourceFile     string
	RawTextPreview string
}

// NewRecord builds a record from an extraction result. The preview is a
// bounded prefix of the normalized full text, marked when truncated.
func NewRecord(fields extract.Result, sourceFile, normalizedText string) Record {
	return NewRecordPreview(fields, sourceFile, normalizedText, PreviewLength)
}

// NewRecordPreview builds a record with a custom preview bound. A bound
// of zero or less falls back to the default.
func NewRecordPreview(fields extract.Result, sourceFile, normalizedText string, limit int) Record {
	if limit <= 0 {
		limit = PreviewLength
	}
	preview := normalizedText
	if len(preview) > limit {
		// Never cut a multi-byte rune in half; addresses carry accented
		// street names.
		cut := limit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}
	return Record{
		Fields:         fields,
		SourceFile:     sourceFile,
		RawTextPreview: preview,
	}
}

// Address returns the record's property address field.
func (r Record) Address() string {
	return r.Fields[addressField]
}

// Registry maps generated identity keys to property records. Keys are
// assigned sequentially and never reassigned. The mutex covers the whole
// lookup-or-insert sequence so concurrent uploads of the same address
// cannot create two keys.
type Registry struct {
	// SessionID identifies the operator session that owns this registry.
	SessionID string

	mu      sync.Mutex
	keys    []string
	records map[string]Record
}

// New creates an empty registry for a fresh session.
func New() *Registry {
	return &Registry{
		SessionID: uuid.NewString(),
		records:   make(map[string]Record),
	}
}

// AssignOrUpdate resolves the record's identity and stores it. When the
// record's address matches an existing entry case-insensitively (scanned
// in insertion order), the new record replaces that entry's snapshot and
// the existing key is returned. Otherwise a fresh sequential key is
// allocated. The second return reports whether an existing entry was
// updated.
func (reg *Registry) AssignOrUpdate(rec Record) (string, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if address := rec.Address(); address != "" {
		for _, key := range reg.keys {
			stored := reg.records[key].Address()
			if stored != "" && strings.EqualFold(stored, address) {
				reg.records[key] = rec
				return key, true
			}
		}
	}

	key := fmt.Sprintf("Property_%03d", len(reg.keys)+1)
	reg.keys = append(reg.keys, key)
	reg.records[key] = rec
	return key, false
}

// Get returns the record stored under a key.
func (reg *Registry) Get(key string) (Record, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	rec, ok := reg.records[key]
	return rec, ok
}

// Keys returns the identity keys in insertion order.
func (reg *Registry) Keys() []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	keys := make([]string, len(reg.keys))
	copy(keys, reg.keys)
	return keys
}

// Len returns the number of distinct properties.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.keys)
}

// Snapshot returns the keys and records in insertion order, for output
// formatting and persistence.
func (reg *Registry) Snapshot() ([]string, map[string]Record) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	keys := make([]string, len(reg.keys))
	copy(keys, reg.keys)

	records := make(map[string]Record, len(reg.records))
	for k, v := range reg.records {
		records[k] = v
	}
	return keys, records
}

// Restore rebuilds registry state from persisted entries, preserving key
// order. It is used when loading a saved session snapshot.
func (reg *Registry) Restore(keys []string, records map[string]Record) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.keys = make([]string, len(keys))
	copy(reg.keys, keys)

	reg.records = make(map[string]Record, len(records))
	for k, v := range records {
		reg.records[k] = v
	}
}
