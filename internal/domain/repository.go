package domain

import (
	"context"
	"time"
)

// CatalogClient defines the interface for querying the Open Food Facts service
type CatalogClient interface {
	// SearchIdentifiers resolves a free-text query to product codes.
	// An empty result is not an error.
	SearchIdentifiers(ctx context.Context, query string) ([]string, error)

	// SearchByCategoryGrade returns the codes of products in a category
	// carrying the given nutrition grade letter.
	SearchByCategoryGrade(ctx context.Context, category string, grade byte) ([]string, error)

	// SearchByCategoryNova returns the codes of products in a category
	// carrying the given nova processing group.
	SearchByCategoryNova(ctx context.Context, category string, nova int) ([]string, error)

	// FetchProduct retrieves the raw payload for one product code.
	FetchProduct(ctx context.Context, code string) (*RemoteProduct, error)
}

// ProductStore defines the interface for durable product persistence.
// GetByCode deliberately returns zero or more records: the cache layer owns
// the duplicate-collapse invariant and needs to observe anomalies.
type ProductStore interface {
	GetByCode(ctx context.Context, code string) ([]Product, error)
	InsertIfAbsent(ctx context.Context, product Product) (Product, error)
	DeleteByCode(ctx context.Context, code string) error
}

// FavoriteStore defines the interface for favorite pairing persistence
type FavoriteStore interface {
	AllForUser(ctx context.Context, userID string) ([]FavoritePairing, error)
	InsertIfAbsent(ctx context.Context, pairing FavoritePairing) error
	Delete(ctx context.Context, pairing FavoritePairing) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
