package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nutriswap/backend/internal/domain"
	"gorm.io/gorm"
)

// productRow is the gorm entity backing the product store. The code column is
// indexed but intentionally not unique: the cache layer owns the
// duplicate-collapse invariant and must be able to observe anomalies.
type productRow struct {
	ID         uint   `gorm:"primarykey"`
	Code       string `gorm:"index;size:64;not null"`
	Name       string `gorm:"size:500;not null"`
	Grade      string `gorm:"size:1"`
	Image      string `gorm:"size:1000"`
	Categories string `gorm:"type:text"`
	Nutriments string `gorm:"type:text"`
}

// TableName returns the table name for productRow.
func (productRow) TableName() string {
	return "products"
}

// ProductStore provides access to durable product records.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a new product store.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// GetByCode retrieves every stored record for a code, oldest first.
func (s *ProductStore) GetByCode(ctx context.Context, code string) ([]domain.Product, error) {
	var rows []productRow
	err := s.db.WithContext(ctx).
		Where("code = ?", code).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// InsertIfAbsent stores the product unless a record for its code already
// exists, and returns the surviving record. The check-then-create runs inside
// a transaction so two concurrent inserts for one code cannot both create a
// row.
func (s *ProductStore) InsertIfAbsent(ctx context.Context, product domain.Product) (domain.Product, error) {
	row, err := fromDomain(product)
	if err != nil {
		return domain.Product{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&productRow{}).Where("code = ?", product.Code).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for existing product: %w", err)
		}
		if count == 0 {
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
			return nil
		}
		// Row already present; load it so the caller gets the stored state.
		if err := tx.Where("code = ?", product.Code).Order("id").First(&row).Error; err != nil {
			return fmt.Errorf("failed to load existing product: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return row.toDomain()
}

// DeleteByCode removes every stored record for a code.
func (s *ProductStore) DeleteByCode(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Where("code = ?", code).Delete(&productRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

// toDomain rebuilds a domain product from its stored row
func (r productRow) toDomain() (domain.Product, error) {
	var categories []string
	if r.Categories != "" {
		if err := json.Unmarshal([]byte(r.Categories), &categories); err != nil {
			return domain.Product{}, fmt.Errorf("failed to decode categories for %s: %w", r.Code, err)
		}
	}

	var nutriments map[string]interface{}
	if r.Nutriments != "" {
		if err := json.Unmarshal([]byte(r.Nutriments), &nutriments); err != nil {
			return domain.Product{}, fmt.Errorf("failed to decode nutriments for %s: %w", r.Code, err)
		}
	}

	return domain.Product{
		Code:       r.Code,
		Name:       r.Name,
		Grade:      r.Grade,
		Image:      r.Image,
		Categories: categories,
		Nutriments: nutriments,
	}, nil
}

// fromDomain serialises a domain product into its stored row
func fromDomain(p domain.Product) (productRow, error) {
	categories, err := json.Marshal(p.Categories)
	if err != nil {
		return productRow{}, fmt.Errorf("failed to encode categories for %s: %w", p.Code, err)
	}

	nutriments, err := json.Marshal(p.Nutriments)
	if err != nil {
		return productRow{}, fmt.Errorf("failed to encode nutriments for %s: %w", p.Code, err)
	}

	return productRow{
		Code:       p.Code,
		Name:       p.Name,
		Grade:      p.Grade,
		Image:      p.Image,
		Categories: string(categories),
		Nutriments: string(nutriments),
	}, nil
}
