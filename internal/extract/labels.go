// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import "property-scan/internal/normalize"

// ExtractByLabels scans the line-preserving text for every canonical field
// using the registry's label patterns in trial order. The first pattern
// that matches anywhere in the text wins for that field; its captured
// remainder of the line becomes the value. Fields with no match map to "".
//
// A label may incidentally match inside another field's captured value;
// that is a known precision limitation of label matching, not corrected
// here.
func (e *Engine) ExtractByLabels(text string) Result {
	result := make(Result, len(e.registry.FieldNames()))
	for _, field := range e.registry.FieldNames() {
		found := ""
		for _, re := range e.registry.Patterns(field) {
			if m := re.FindStringSubmatch(text); m != nil {
				found = normalize.Normalize(m[1])
				break
			}
		}
		result[field] = found
	}
	return result
}
