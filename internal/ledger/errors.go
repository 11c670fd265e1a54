package ledger

import "errors"

var (
	// ErrReference marks an import that names a record which exists neither
	// locally nor in the incoming batch.
	ErrReference = errors.New("unresolved reference")

	// ErrStorage marks a failure in the durable store; the in-memory state
	// is left untouched when it is returned.
	ErrStorage = errors.New("storage failure")
)
