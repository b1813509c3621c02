// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"regexp"
)

// FieldSpec associates a canonical field name with its ordered label variants.
// Variants are regular-expression fragments; the first variant that matches
// the document text wins for that field.
type FieldSpec struct {
	Name   string
	Labels []string
}

// defaultFields is the canonical field catalog in output order. The order of
// the Labels slice is the trial order for label matching; the order of the
// fields themselves only determines output column order.
var defaultFields = []FieldSpec{
	{"Property Address", []string{`Property Address`, `Property\s*Address[:\s]`, `Property Address[:]?`, `Property Address\s*[:\-]?`, `Address:`}},
	{"Total Units", []string{`Total Units`, `Total\s+Units[:\s]`, `Units[:]`}},
	{"Property Type", []string{`Property Type`, `Property\s+Type[:\s]`}},
	{"Building Type", []string{`Building Type`, `Building\s+Type[:\s]`}},
	{"Building Age", []string{`Building Age`, `Building\s+Age[:\s]`}},
	{"Number of Stories", []string{`Number of Stories`, `Number of Stories[:\s]`, `Stories[:]`}},
	{"Sale Amount", []string{`Sale Amount`, `Sale Amount[:\s]`, `Sale[:\s]`}},
	{"Municipal Evaluation", []string{`Municipal Evaluation`, `Municipal\s+Evaluation[:\s]`}},
	{"Building Size", []string{`Building Size`, `Building\s+Size[:\s]`}},
	{"Land Size", []string{`Land Size`, `Land\s+Size[:\s]`}},
	{"Foundation Type", []string{`Foundation Type`, `Foundation\s+Type[:\s]`}},
	{"Exterior Material", []string{`Exterior Material`, `Exterior\s+Material[:\s]`}},
	{"Heating System", []string{`Heating System`, `Heating[:\s]`}},
	{"Windows", []string{`Windows`, `Windows[:]`}},
	{"Roofing", []string{`Roofing`, `Roofing[:]`}},
	{"Electrical", []string{`Electrical`, `Electrical[:]`}},
	{"Plumbing", []string{`Plumbing`, `Plumbing[:]`}},
	{"Sewer Service", []string{`Sewer Service`, `Sewer\s+Service[:]`}},
	{"Fire Incidents", []string{`Fire Incidents`, `Fire\s+Incidents[:]`}},
	{"Windows Age", []string{`Windows Age`, `Windows\s+Age[:]`}},
	{"Plumbing Age", []string{`Plumbing Age`, `Plumbing\s+Age[:]`}},
	{"Water Tank Age", []string{`Water Tank Age`, `Water\s+Tank\s+Age[:]`}},
	{"Sewer Source", []string{`Sewer Source`, `Sewer\s+Source[:]`}},
	{"Document Type", []string{`Document Type`, `Document\s+Type[:]`}},
	{"Report Date", []string{`Report Date`, `Report\s+Date[:]`}},
}

// Registry holds the compiled label patterns for every canonical field.
// It is built once at startup and is safe for concurrent reads afterwards.
type Registry struct {
	fields   []FieldSpec
	names    []string
	patterns map[string][]*regexp.Regexp
}

// NewRegistry compiles the default field catalog, optionally extended with
// extra label variants per field (typically sourced from the config file).
// Extra variants are appended after the built-in ones, so they are only
// tried when no built-in label matched.
func NewRegistry(extraLabels map[string][]string) (*Registry, error) {
	r := &Registry{
		patterns: make(map[string][]*regexp.Regexp, len(defaultFields)),
	}

	for _, spec := range defaultFields {
		labels := make([]string, 0, len(spec.Labels))
		labels = append(labels, spec.Labels...)
		labels = append(labels, extraLabels[spec.Name]...)

		compiled := make([]*regexp.Regexp, 0, len(labels))
		for _, label := range labels {
			// Each label matches at the start of a field reference, followed
			// by an optional separator, then captures the rest of the line.
			re, err := regexp.Compile(`(?i)` + label + `\s*[:\-]?\s*(.+)`)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid label pattern %q: %w", spec.Name, label, err)
			}
			compiled = append(compiled, re)
		}

		r.fields = append(r.fields, FieldSpec{Name: spec.Name, Labels: labels})
		r.names = append(r.names, spec.Name)
		r.patterns[spec.Name] = compiled
	}

	// Reject extra labels for fields that don't exist in the catalog rather
	// than silently ignoring a likely config typo.
	for name := range extraLabels {
		if _, ok := r.patterns[name]; !ok {
			return nil, fmt.Errorf("unknown field %q in extra labels", name)
		}
	}

	return r, nil
}

// MustRegistry builds the default registry with no extra labels.
// It panics only if the built-in patterns fail to compile.
func MustRegistry() *Registry {
	r, err := NewRegistry(nil)
	if err != nil {
		panic(err)
	}
	return r
}

// FieldNames returns the canonical field names in catalog order.
// The returned slice must not be modified.
func (r *Registry) FieldNames() []string {
	return r.names
}

// Patterns returns the compiled label patterns for a field in trial order.
// It returns nil for a field that is not in the catalog.
func (r *Registry) Patterns(field string) []*regexp.Regexp {
	return r.patterns[field]
}

// Fields returns the full field specs in catalog order.
func (r *Registry) Fields() []FieldSpec {
	return r.fields
}

// Has reports whether a field name is part of the catalog.
func (r *Registry) Has(field string) bool {
	_, ok := r.patterns[field]
	return ok
}
