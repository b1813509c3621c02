// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract implements the field extraction engine: label pattern
// matching over document text, tabular cell extraction, fallback
// heuristics, and the merge policy that reconciles the three sources.
package extract

import (
	"regexp"

	"property-scan/internal/catalog"
	"property-scan/internal/document"
	"property-scan/internal/normalize"
)

// Result maps every canonical field name to a possibly-empty string value.
// The key set always equals the full field catalog; missing data is an
// empty string, never an absent key.
type Result map[string]string

// Engine runs the full extraction sequence for one document. All patterns
// are compiled at construction; an Engine is safe for concurrent use.
type Engine struct {
	registry *catalog.Registry

	// rowStart matches a table row whose label cell starts with the field
	// name. The looser contains-check is the fallback.
	rowStart map[string]*regexp.Regexp
}

// NewEngine creates an extraction engine over the given pattern registry.
func NewEngine(registry *catalog.Registry) *Engine {
	rowStart := make(map[string]*regexp.Regexp, len(registry.FieldNames()))
	for _, name := range registry.FieldNames() {
		rowStart[name] = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(name) + `[:\s]`)
	}
	return &Engine{
		registry: registry,
		rowStart: rowStart,
	}
}

// Registry returns the engine's pattern registry.
func (e *Engine) Registry() *catalog.Registry {
	return e.registry
}

// Extract produces the reconciled extraction result for a document, plus
// the normalized full text. Precedence per field: tabular value, then
// labeled-text value, then fallback heuristic, then empty.
func (e *Engine) Extract(doc *document.Document) (Result, string) {
	lineText := normalize.Lines(doc.Text())

	labeled := e.ExtractByLabels(lineText)
	tabular := e.ExtractFromTables(doc.Tables())

	result := e.Merge(tabular, labeled)
	e.ApplyFallbacks(lineText, result)

	return result, normalize.Normalize(lineText)
}

// Merge reconciles the tabular and labeled-text extractions into one
// result covering the full field catalog. Tabular values win because
// structurally delimited data is considered most reliable.
func (e *Engine) Merge(tabular map[string]string, labeled Result) Result {
	result := make(Result, len(e.registry.FieldNames()))
	for _, field := range e.registry.FieldNames() {
		if v := tabular[field]; v != "" {
			result[field] = v
		} else {
			result[field] = labeled[field]
		}
	}
	return result
}
