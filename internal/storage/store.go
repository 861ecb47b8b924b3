package storage

import "context"

// Collection names persisted by the application.
const (
	Customers  = "customers"
	Cards      = "cards"
	Orders     = "orders"
	Menu       = "menu"
	Promotions = "promotions"
)

// Document is a whole collection as stored: a JSON array plus the version
// observed at load time. Replace must present that version back, so two
// sessions racing on the same load-mutate-save cycle cannot lose an update.
type Document struct {
	Body    []byte
	Version int64
}

type Store interface {
	// Load returns the current document for the collection. A collection
	// that does not exist yet is materialized as an empty array, version 0.
	Load(ctx context.Context, collection string) (Document, error)
	// Replace swaps the entire collection body. It fails with
	// domain.ErrVersionConflict when the stored version no longer matches
	// expected.
	Replace(ctx context.Context, collection string, body []byte, expected int64) error
}
