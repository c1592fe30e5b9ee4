package usecase

import (
	"context"

	"github.com/nutriswap/backend/internal/domain"
	"go.uber.org/zap"
)

// FavoriteService records and removes (product, substitute) pairings per
// user. It never creates products: both codes must already be in the store.
type FavoriteService struct {
	products  domain.ProductStore
	favorites domain.FavoriteStore
	logger    *zap.Logger
}

// NewFavoriteService creates a new favorite service with dependencies
func NewFavoriteService(products domain.ProductStore, favorites domain.FavoriteStore, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		products:  products,
		favorites: favorites,
		logger:    logger,
	}
}

// Add stores a pairing for the user. Both codes must resolve to stored
// product records; a duplicate pairing request is a no-op, not an error.
func (s *FavoriteService) Add(ctx context.Context, userID, productCode, substituteCode string) error {
	if userID == "" || productCode == "" || substituteCode == "" {
		return domain.ErrInvalidRequest
	}

	for _, code := range []string{productCode, substituteCode} {
		records, err := s.products.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return domain.ErrProductNotFound
		}
	}

	return s.favorites.InsertIfAbsent(ctx, domain.FavoritePairing{
		UserID:         userID,
		ProductCode:    productCode,
		SubstituteCode: substituteCode,
	})
}

// Remove deletes the pairing matching the exact triple.
// Returns ErrFavoriteNotFound for an unknown user or pairing.
func (s *FavoriteService) Remove(ctx context.Context, userID, productCode, substituteCode string) error {
	if userID == "" || productCode == "" || substituteCode == "" {
		return domain.ErrInvalidRequest
	}

	return s.favorites.Delete(ctx, domain.FavoritePairing{
		UserID:         userID,
		ProductCode:    productCode,
		SubstituteCode: substituteCode,
	})
}

// List returns every pairing stored for the user with both product records
// resolved, in store iteration order. A pairing whose products have vanished
// from the store is skipped rather than surfaced half-populated.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.FavoriteEntry, error) {
	if userID == "" {
		return nil, domain.ErrInvalidRequest
	}

	pairings, err := s.favorites.AllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.FavoriteEntry, 0, len(pairings))
	for _, pairing := range pairings {
		product, ok := s.lookupOne(ctx, pairing.ProductCode)
		if !ok {
			continue
		}
		substitute, ok := s.lookupOne(ctx, pairing.SubstituteCode)
		if !ok {
			continue
		}
		entries = append(entries, domain.FavoriteEntry{
			Product:    *product,
			Substitute: *substitute,
		})
	}

	return entries, nil
}

// lookupOne fetches the first stored record for a code
func (s *FavoriteService) lookupOne(ctx context.Context, code string) (*domain.Product, bool) {
	records, err := s.products.GetByCode(ctx, code)
	if err != nil || len(records) == 0 {
		if err != nil {
			s.logger.Warn("failed to load favorite product",
				zap.String("code", code), zap.Error(err))
		}
		return nil, false
	}
	return &records[0], true
}
