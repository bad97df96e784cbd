package errors

import "errors"

// ErrOptimisticLock record was modified by another operation; caller should
// reload and retry.
var ErrOptimisticLock = errors.New("record was modified concurrently, reload and retry")
