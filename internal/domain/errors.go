package domain

import "errors"

var (
	// ErrProductNotFound is returned when Open Food Facts has no matching product
	ErrProductNotFound = errors.New("product not found in Open Food Facts")

	// ErrIncompleteProduct is returned when a payload lacks the fields required
	// for the requested completeness level
	ErrIncompleteProduct = errors.New("product payload is incomplete")

	// ErrCatalogUnavailable is returned when an Open Food Facts request fails at
	// the transport level (timeout, connection error, non-2xx, malformed body)
	ErrCatalogUnavailable = errors.New("Open Food Facts request failed")

	// ErrNoSubstitutes is returned when every category/threshold combination has
	// been tried without collecting a single substitute
	ErrNoSubstitutes = errors.New("no substitutes found")

	// ErrFavoriteNotFound is returned when no stored pairing matches the user
	// and product codes
	ErrFavoriteNotFound = errors.New("favorite pairing not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
