// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize provides the whitespace normalization used by every
// matcher in the extraction pipeline.
package normalize

import (
	"regexp"
	"strings"
)

var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reLineSpace   = regexp.MustCompile(`[ \t]+`)
	reBlankLines  = regexp.MustCompile(`\n{2,}`)
	reCRLFNewline = regexp.MustCompile(`\r\n?`)
)

// Normalize collapses every run of whitespace (including newlines) into a
// single space and trims leading/trailing whitespace. Empty input maps to
// the empty string. Idempotent: normalizing an already-normalized string
// returns it unchanged.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// Lines collapses whitespace within each line but preserves line breaks,
// so that label patterns can capture "the rest of the line". Blank lines
// are dropped.
func Lines(s string) string {
	if s == "" {
		return ""
	}
	s = reCRLFNewline.ReplaceAllString(s, "\n")
	s = reLineSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	s = strings.Join(kept, "\n")
	return reBlankLines.ReplaceAllString(s, "\n")
}
