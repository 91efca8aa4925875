// Package tributes persists the store-of-record tribute set.
package tributes

import "context"

// Record is a tribute row as the store keeps it. SubmittedAt is unix
// milliseconds, matching the wire protocol's ts field.
type Record struct {
	ID          int64
	Name        string
	Relation    string
	Message     string
	Location    string
	OwnerUUID   string
	SubmittedAt int64
}

// DeleteOutcome distinguishes the three ways a delete can land.
type DeleteOutcome int

const (
	// Deleted: the row existed, belonged to the caller, and is gone.
	Deleted DeleteOutcome = iota
	// NotFound: no row with that id exists.
	NotFound
	// Forbidden: the row exists but belongs to a different owner.
	Forbidden
)

// Repository describes the store operations the HTTP surface needs.
type Repository interface {
	// List returns every tribute, newest first.
	List(ctx context.Context) ([]Record, error)

	// Insert stores a new tribute and returns its assigned id.
	Insert(ctx context.Context, r *Record) (int64, error)

	// Delete removes the tribute with the given id if ownerUUID matches.
	Delete(ctx context.Context, id int64, ownerUUID string) (DeleteOutcome, error)
}
