package models

import (
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrNotFound is returned when a requested item does not exist
var ErrNotFound = bolthold.ErrNotFound

// Database wraps the bolthold store holding the media catalog
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// CreateItem inserts a new media item and stamps its timestamps
func (db *Database) CreateItem(item *MediaItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	return db.store.Insert(bolthold.NextSequence(), item)
}

// UpdateItem updates an existing media item, bumping UpdatedAt
func (db *Database) UpdateItem(item *MediaItem) error {
	item.UpdatedAt = time.Now()
	return db.store.Update(item.ID, item)
}

// GetItemByID retrieves a media item by ID
func (db *Database) GetItemByID(id uint64) (*MediaItem, error) {
	var item MediaItem
	if err := db.store.Get(id, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem deletes a media item by ID
func (db *Database) DeleteItem(id uint64) error {
	return db.store.Delete(id, &MediaItem{})
}

// GetAllItems retrieves the full catalog. Query evaluation treats the
// returned slice as an immutable snapshot for the duration of one request.
func (db *Database) GetAllItems() ([]*MediaItem, error) {
	var items []*MediaItem
	err := db.store.Find(&items, nil)
	return items, err
}

// GetItemsByType retrieves all items of a given media type via the index
func (db *Database) GetItemsByType(mediaType MediaType) ([]*MediaItem, error) {
	var items []*MediaItem
	err := db.store.Find(&items, bolthold.Where("MediaType").Eq(mediaType).Index("MediaType"))
	return items, err
}

// GetItemsByStatus retrieves all items with a given status via the index
func (db *Database) GetItemsByStatus(status Status) ([]*MediaItem, error) {
	var items []*MediaItem
	err := db.store.Find(&items, bolthold.Where("Status").Eq(status).Index("Status"))
	return items, err
}
