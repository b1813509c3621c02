// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import "fmt"

// OpenError reports a document that could not be opened or decoded at all.
// It is fatal for that single document only; the batch loop records it and
// continues with the next file.
type OpenError struct {
	File string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open document %s: %v", e.File, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
