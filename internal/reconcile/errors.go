package reconcile

import "fmt"

// AmbiguousKeyError reports a catalog in which two entries project onto the
// same alternate key. The catalog is the source of truth, so this is a data
// authoring mistake that has to be fixed there; the run refuses to guess
// which entry wins.
type AmbiguousKeyError struct {
	// Key is the colliding key value, formatted for logs.
	Key string
	// First and Second are the catalog indexes of the colliding entries.
	First  int
	Second int
}

func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("ambiguous alternate key %s: catalog entries %d and %d collide", e.Key, e.First, e.Second)
}

// StoreUnavailableError wraps a storage failure unrelated to the catalog
// data: connection loss, timeouts, failed transactions.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// ConstraintViolationError wraps a uniqueness violation raised by the store
// on insert. Run treats it as a sign that a concurrent run already inserted
// the same key and retries the lookup once before giving up.
type ConstraintViolationError struct {
	Op  string
	Err error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation during %s: %v", e.Op, e.Err)
}

func (e *ConstraintViolationError) Unwrap() error { return e.Err }
