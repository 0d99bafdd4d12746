// Package reconcile makes a persistent store converge on a fixed catalog of
// reference records. Records are matched by an alternate key derived from
// business fields, never by surrogate id, so a run against an already seeded
// store updates rows in place instead of inserting duplicates.
package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// KeyFunc projects a catalog entry onto its alternate key. The key must be
// built from business fields that are stable across runs; store-assigned
// identifiers are blank on catalog entries and must not contribute.
type KeyFunc[E any, K comparable] func(E) K

// Store is the persistence port a reconciliation run drives. Lookup, Insert
// and Update stage changes against the same unit of work; nothing becomes
// visible to other readers until Flush.
type Store[E any, K comparable] interface {
	// Lookup reports whether a record with the given alternate key exists.
	Lookup(ctx context.Context, key K) (bool, error)
	// Insert adds a new record and returns the surrogate id the store
	// assigned to it.
	Insert(ctx context.Context, entry E) (int64, error)
	// Update overwrites the business fields of the record matching key.
	Update(ctx context.Context, key K, entry E) error
	// Flush publishes all staged changes in one step.
	Flush(ctx context.Context) error
}

// Result counts what a run did. Inserted+Updated always equals the catalog
// size on success.
type Result struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Run reconciles the catalog into the store. Every catalog entry ends up as
// exactly one stored record: entries whose alternate key is already present
// are updated in place, the rest are inserted. Rerunning with an unchanged
// catalog inserts nothing.
//
// The catalog is validated first: if two entries project onto the same key,
// Run fails with an AmbiguousKeyError before touching the store. On any
// failure no staged change is flushed, so the store's visible state is the
// state before the run.
func Run[E any, K comparable](ctx context.Context, store Store[E, K], catalog []E, key KeyFunc[E, K]) (Result, error) {
	seen := make(map[K]int, len(catalog))
	for i, entry := range catalog {
		k := key(entry)
		if first, dup := seen[k]; dup {
			return Result{}, &AmbiguousKeyError{Key: fmt.Sprintf("%+v", k), First: first, Second: i}
		}
		seen[k] = i
	}

	var res Result
	for _, entry := range catalog {
		k := key(entry)

		found, err := store.Lookup(ctx, k)
		if err != nil {
			return Result{}, err
		}
		if found {
			if err := store.Update(ctx, k, entry); err != nil {
				return Result{}, err
			}
			res.Updated++
			continue
		}

		if _, err := store.Insert(ctx, entry); err != nil {
			var cv *ConstraintViolationError
			if !errors.As(err, &cv) {
				return Result{}, err
			}
			// A concurrent run claimed the key between our lookup and
			// insert. Confirm the row is there now and fall through to
			// the update path.
			found, lookupErr := store.Lookup(ctx, k)
			if lookupErr != nil {
				return Result{}, lookupErr
			}
			if !found {
				return Result{}, err
			}
			if err := store.Update(ctx, k, entry); err != nil {
				return Result{}, err
			}
			res.Updated++
			continue
		}
		res.Inserted++
	}

	if err := store.Flush(ctx); err != nil {
		return Result{}, err
	}
	return res, nil
}
