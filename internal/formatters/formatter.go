// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"strings"

	"property-scan/internal/registry"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // Whether to include the raw text preview
	NoColor bool // Whether to disable colored output
}

// Formatter interface defines methods that all output formatters must implement.
// Formatters receive the registry keys in insertion order plus the canonical
// field names in catalog order, which fixes the output column order.
type Formatter interface {
	// Format renders the registry contents in the formatter's output format
	Format(keys []string, records map[string]registry.Record, fields []string, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// FormatInfo provides metadata about a formatter for web integration
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
	MimeType    string
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export provides unified formatting for both CLI and web output
func Export(format string, keys []string, records map[string]registry.Record, fields []string, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		availableFormats := List()
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(availableFormats, ", "))
	}
	return formatter.Format(keys, records, fields, options)
}

// ExportForWeb provides web-friendly export with proper MIME types and filenames
func ExportForWeb(format string, keys []string, records map[string]registry.Record, fields []string, options FormatterOptions) (content string, mimeType string, filename string, err error) {
	content, err = Export(format, keys, records, fields, options)
	if err != nil {
		return "", "", "", err
	}

	info := GetFormatInfo(format)
	mimeType = info.MimeType
	filename = "property-scan-results" + info.Extension

	return content, mimeType, filename, nil
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "text":
		info.MimeType = "text/plain"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}
