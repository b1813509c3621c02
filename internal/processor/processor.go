// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package processor drives the per-document pipeline: read, normalize,
// extract, reconcile, and registry assignment. Documents in a batch are
// processed sequentially in upload order; a failed document is reported
// and never aborts the rest of the batch.
package processor

import (
	"log/slog"
	"path/filepath"

	"property-scan/internal/document"
	"property-scan/internal/extract"
	"property-scan/internal/observability"
	"property-scan/internal/registry"
)

// FileResult reports the outcome for one file in a batch.
type FileResult struct {
	File    string
	Key     string
	Record  registry.Record
	Err     error
	Updated bool
}

// Processor wires the document readers, extraction engine and registry
// into the batch pipeline.
type Processor struct {
	engine   *extract.Engine
	readers  []document.Reader
	registry *registry.Registry
	logger   *slog.Logger
	observer *observability.StandardObserver

	// PreviewLength overrides the default raw text preview bound when
	// positive.
	PreviewLength int
}

// New creates a processor. A nil logger falls back to slog.Default; the
// observer may be nil when observability is off.
func New(engine *extract.Engine, readers []document.Reader, reg *registry.Registry, logger *slog.Logger, observer *observability.StandardObserver) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		engine:   engine,
		readers:  readers,
		registry: reg,
		logger:   logger,
		observer: observer,
	}
}

// Registry returns the session registry this processor feeds.
func (p *Processor) Registry() *registry.Registry {
	return p.registry
}

// ParseDocument runs extraction for a single file without touching the
// registry. It returns the reconciled result and the normalized full text.
func (p *Processor) ParseDocument(filePath string) (extract.Result, string, error) {
	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("processor", "parse_document", filePath)
	}

	doc, err := document.Read(filePath, p.readers)
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{
				"session_id": p.registry.SessionID,
				"error":      err.Error(),
			})
		}
		return nil, "", err
	}

	result, fullText := p.engine.Extract(doc)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"session_id":   p.registry.SessionID,
			"page_count":   len(doc.Pages),
			"fields_found": countNonEmpty(result),
		})
	}
	return result, fullText, nil
}

// ProcessFile parses one file and assigns or updates its registry entry.
func (p *Processor) ProcessFile(filePath string) FileResult {
	var finishStep func(bool, string)
	if p.observer != nil && p.observer.DebugObserver != nil {
		finishStep = p.observer.DebugObserver.StartStep("processor", "process_file", filePath)
	}

	result, fullText, err := p.ParseDocument(filePath)
	if err != nil {
		if finishStep != nil {
			finishStep(false, err.Error())
		}
		p.logger.Error("document parse failed", "session_id", p.registry.SessionID, "file", filePath, "error", err)
		return FileResult{File: filePath, Err: err}
	}

	rec := registry.NewRecordPreview(result, filepath.Base(filePath), fullText, p.PreviewLength)
	key, updated := p.registry.AssignOrUpdate(rec)

	if p.observer != nil {
		p.observer.LogOperation(observability.ParseObservabilityData{
			Component:   "processor",
			Operation:   "assign_key",
			FilePath:    filePath,
			Success:     true,
			SessionID:   p.registry.SessionID,
			PropertyKey: key,
		})
	}

	p.logger.Info("document parsed",
		"session_id", p.registry.SessionID,
		"file", filePath,
		"key", key,
		"updated", updated,
		"address", rec.Address(),
	)
	if finishStep != nil {
		finishStep(true, "key="+key)
	}
	return FileResult{File: filePath, Key: key, Record: rec, Updated: updated}
}

// ProcessBatch processes files sequentially in upload order. Failures are
// isolated per file: the returned slice holds one result per input file,
// successful or not, in the same order.
func (p *Processor) ProcessBatch(files []string) []FileResult {
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		results = append(results, p.ProcessFile(f))
	}
	return results
}

// countNonEmpty counts fields that received a value.
func countNonEmpty(result extract.Result) int {
	n := 0
	for _, v := range result {
		if v != "" {
			n++
		}
	}
	return n
}
