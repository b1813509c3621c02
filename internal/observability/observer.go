// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"time"
)

// StandardObserver implements observability for the parsing pipeline
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		data := ParseObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}

		o.LogOperation(data)
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(data ParseObservabilityData) {
	if o.level == ObservabilityOff {
		return
	}

	data.promoteMetadata()
	data.RequestID = "req-" + time.Now().Format("20060102-150405")

	// Only log JSON in debug mode
	if o.level == ObservabilityDebug {
		json.NewEncoder(o.writer).Encode(data)
	}
}

// ParseObservabilityData describes one pipeline operation on one document
type ParseObservabilityData struct {
	Component   string                 `json:"component"`
	Operation   string                 `json:"operation"`
	RequestID   string                 `json:"request_id"`
	SessionID   string                 `json:"session_id,omitempty"`
	FilePath    string                 `json:"file_path,omitempty"`
	DurationMs  int64                  `json:"duration_ms,omitempty"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	PageCount   int                    `json:"page_count,omitempty"`
	FieldsFound int                    `json:"fields_found,omitempty"`
	PropertyKey string                 `json:"property_key,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// promoteMetadata lifts well-known metadata keys into their typed fields
// so log consumers can filter on them directly.
func (d *ParseObservabilityData) promoteMetadata() {
	for key, value := range d.Metadata {
		switch key {
		case "session_id":
			if s, ok := value.(string); ok {
				d.SessionID = s
				delete(d.Metadata, key)
			}
		case "error":
			if s, ok := value.(string); ok {
				d.Error = s
				delete(d.Metadata, key)
			}
		case "property_key":
			if s, ok := value.(string); ok {
				d.PropertyKey = s
				delete(d.Metadata, key)
			}
		case "page_count":
			if n, ok := value.(int); ok {
				d.PageCount = n
				delete(d.Metadata, key)
			}
		case "fields_found":
			if n, ok := value.(int); ok {
				d.FieldsFound = n
				delete(d.Metadata, key)
			}
		}
	}
	if len(d.Metadata) == 0 {
		d.Metadata = nil
	}
}
