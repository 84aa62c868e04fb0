// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset indicates that no ratings exist at all, so no user-item
// matrix can be built. This is distinct from "user has no ratings", which
// is a normal empty-result state and never an error.
var ErrEmptyDataset = errors.New("recommend: no ratings in dataset")

// DataIntegrityError reports a malformed record received from the store:
// an out-of-range score or movie metadata that cannot be scored. The engine
// fails fast on these instead of silently coercing values into range.
type DataIntegrityError struct {
	// RecordID names the offending record (rating or movie id).
	RecordID string

	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("recommend: data integrity violation in record %s: %s", e.RecordID, e.Reason)
}

// IsDataIntegrityError reports whether err is (or wraps) a DataIntegrityError.
func IsDataIntegrityError(err error) bool {
	var die *DataIntegrityError
	return errors.As(err, &die)
}
