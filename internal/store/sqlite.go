// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store persists registry snapshots. The record shape (ordered
// field mapping, source name, bounded preview) is preserved verbatim; the
// in-memory registry remains the unit of truth during a session.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"property-scan/internal/extract"
	"property-scan/internal/registry"
)

// ErrNotFound reports a session with no persisted snapshot.
var ErrNotFound = errors.New("session snapshot not found")

const schema = `
CREATE TABLE IF NOT EXISTS properties (
	session_id       TEXT    NOT NULL,
	position         INTEGER NOT NULL,
	property_key     TEXT    NOT NULL,
	source_file      TEXT    NOT NULL,
	raw_text_preview TEXT    NOT NULL,
	fields_json      TEXT    NOT NULL,
	updated_at       TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, property_key)
);
`

// Store is a SQLite-backed snapshot store for property registries.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the store at the given path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the persisted snapshot for the registry's session.
func (s *Store) Save(ctx context.Context, reg *registry.Registry, fields []string) error {
	keys, records := reg.Snapshot()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE session_id = ?`, reg.SessionID); err != nil {
		return err
	}

	now := time.Now().UTC()
	for pos, key := range keys {
		rec := records[key]
		fieldsJSON, err := marshalFields(rec.Fields, fields)
		if err != nil {
			return fmt.Errorf("encode fields for %s: %w", key, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO properties
				(session_id, position, property_key, source_file, raw_text_preview, fields_json, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			reg.SessionID, pos, key, rec.SourceFile, rec.RawTextPreview, fieldsJSON, now,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("registry snapshot saved", "session_id", reg.SessionID, "properties", len(keys))
	return nil
}

// Load restores a session's snapshot into the registry, preserving key
// order.
func (s *Store) Load(ctx context.Context, sessionID string, reg *registry.Registry) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT property_key, source_file, raw_text_preview, fields_json
		FROM properties
		WHERE session_id = ?
		ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	var keys []string
	records := make(map[string]registry.Record)

	for rows.Next() {
		var key, sourceFile, preview, fieldsJSON string
		if err := rows.Scan(&key, &sourceFile, &preview, &fieldsJSON); err != nil {
			return err
		}

		var result extract.Result
		if err := json.Unmarshal([]byte(fieldsJSON), &result); err != nil {
			return fmt.Errorf("decode fields for %s: %w", key, err)
		}

		keys = append(keys, key)
		records[key] = registry.Record{
			Fields:         result,
			SourceFile:     sourceFile,
			RawTextPreview: preview,
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return ErrNotFound
	}

	reg.SessionID = sessionID
	reg.Restore(keys, records)
	return nil
}

// marshalFields encodes the field mapping as a JSON object whose keys
// appear in catalog order.
func marshalFields(result extract.Result, fields []string) (string, error) {
	out := make([]byte, 0, 256)
	out = append(out, '{')
	for i, field := range fields {
		if i > 0 {
			out = append(out, ',')
		}
		k, err := json.Marshal(field)
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(result[field])
		if err != nil {
			return "", err
		}
		out = append(out, k...)
		out = append(out, ':')
		out = append(out, v...)
	}
	out = append(out, '}')
	return string(out), nil
}
