package storage

import "errors"

// ErrNotFound reports a lookup by id that matched no document. Update and
// Delete report a missing id as (false, nil) instead of an error.
var ErrNotFound = errors.New("document not found")
