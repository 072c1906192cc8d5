package domain

import (
	"context"
	"io"
)

// BlobStore is the key-value persistence port: one JSON document per key,
// written as a single atomic overwrite. There are no transactions across
// keys; a concurrent writer on the same key is last-full-write-wins.
type BlobStore interface {
	// Load returns the stored document or ErrBlobNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface to the external AI catalog backend.
type CatalogClient interface {
	ListProducts(ctx context.Context, category string) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	SmartSearch(ctx context.Context, query, category string, limit int) ([]Product, error)
	CompareProducts(ctx context.Context, firstID, secondID string) (*ProductComparison, error)
	AnalyzeRoomImage(ctx context.Context, filename string, image io.Reader) (*RoomAnalysis, error)
}

// ProductStore persists the admin-added custom product list.
type ProductStore interface {
	SaveProduct(ctx context.Context, p Product) error
	GetProduct(ctx context.Context, id string) (Product, bool, error)
	ListProducts(ctx context.Context) ([]Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
