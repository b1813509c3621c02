// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"

	"property-scan/internal/normalize"
)

// Fallback heuristics for fields whose labels are absent or inconsistent.
// Each detector fires only when its field is still empty after label and
// table extraction, and never overwrites a non-empty value.
var (
	// Street number + free text + province letters + postal-code-shaped token.
	reAddressPostal = regexp.MustCompile(`[0-9]{1,5}\s+[A-Za-z0-9\-\.\s]{5,100},?\s*[A-Za-z]{2,}\s*\d[A-Z]\s*\d[A-Z]\d?`)

	// Street number + free text + street-type keyword + rest of line.
	reAddressStreet = regexp.MustCompile(`(?i)[0-9]{1,5}\s+[\w\s\.\-]{3,80}\s+(?:Street|St|Avenue|Ave|Boulevard|Blvd|Rue|Road|Rd|Way|Terrière|Terrier|Terri[èe]re)[^\n\r]*`)

	// Currency token like $299,000.
	reCurrency = regexp.MustCompile(`\$\s?\d{1,3}(?:[,\d]+)?`)
)

// ApplyFallbacks fills still-empty fields in place using the heuristic
// detectors. Address tries the postal-code shape first, then the
// street-keyword shape; the first successful pattern wins.
func (e *Engine) ApplyFallbacks(text string, result Result) {
	if result["Property Address"] == "" {
		if m := reAddressPostal.FindString(text); m != "" {
			result["Property Address"] = normalize.Normalize(m)
		} else if m := reAddressStreet.FindString(text); m != "" {
			result["Property Address"] = normalize.Normalize(m)
		}
	}

	if result["Sale Amount"] == "" {
		if m := reCurrency.FindString(text); m != "" {
			result["Sale Amount"] = normalize.Normalize(m)
		}
	}
}
