package store

import (
	"context"
	"fmt"

	"github.com/nutriswap/backend/internal/domain"
	"gorm.io/gorm"
)

// favoriteRow is the gorm entity backing the favorite store
type favoriteRow struct {
	ID             uint   `gorm:"primarykey"`
	UserID         string `gorm:"index;size:64;not null"`
	ProductCode    string `gorm:"size:64;not null"`
	SubstituteCode string `gorm:"size:64;not null"`
}

// TableName returns the table name for favoriteRow.
func (favoriteRow) TableName() string {
	return "favorites"
}

// FavoriteStore provides access to stored favorite pairings.
type FavoriteStore struct {
	db *gorm.DB
}

// NewFavoriteStore creates a new favorite store.
func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// AllForUser retrieves every pairing stored for a user, oldest first.
func (s *FavoriteStore) AllForUser(ctx context.Context, userID string) ([]domain.FavoritePairing, error) {
	var rows []favoriteRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}

	pairings := make([]domain.FavoritePairing, 0, len(rows))
	for _, row := range rows {
		pairings = append(pairings, domain.FavoritePairing{
			UserID:         row.UserID,
			ProductCode:    row.ProductCode,
			SubstituteCode: row.SubstituteCode,
		})
	}
	return pairings, nil
}

// InsertIfAbsent stores the pairing unless the exact (user, product,
// substitute) triple already exists. Duplicate requests are no-ops.
func (s *FavoriteStore) InsertIfAbsent(ctx context.Context, pairing domain.FavoritePairing) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&favoriteRow{}).
			Where("user_id = ? AND product_code = ? AND substitute_code = ?",
				pairing.UserID, pairing.ProductCode, pairing.SubstituteCode).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check for existing favorite: %w", err)
		}
		if count > 0 {
			return nil
		}

		row := favoriteRow{
			UserID:         pairing.UserID,
			ProductCode:    pairing.ProductCode,
			SubstituteCode: pairing.SubstituteCode,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create favorite: %w", err)
		}
		return nil
	})
}

// Delete removes the pairing matching the exact triple.
// Returns ErrFavoriteNotFound when the user has no such pairing.
func (s *FavoriteStore) Delete(ctx context.Context, pairing domain.FavoritePairing) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_code = ? AND substitute_code = ?",
			pairing.UserID, pairing.ProductCode, pairing.SubstituteCode).
		Delete(&favoriteRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
