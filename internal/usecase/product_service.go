package usecase

import (
	"context"

	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/infrastructure/off"
	"go.uber.org/zap"
)

// ProductService resolves product codes to complete records, preferring the
// local store over the remote catalog. It owns the cache-consistency
// contract: after a successful Resolve exactly one record for the code exists
// in the store.
type ProductService struct {
	store   domain.ProductStore
	catalog domain.CatalogClient
	logger  *zap.Logger
}

// NewProductService creates a new product service with dependencies
func NewProductService(store domain.ProductStore, catalog domain.CatalogClient, logger *zap.Logger) *ProductService {
	return &ProductService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// Resolve returns the complete record for a product code.
// With allowCacheRead a stored record is trusted; duplicate rows for the code
// are collapsed down to one before returning. On a miss (or when cache reads
// are disallowed) the record is fetched remotely, projected, and inserted
// if absent. excludeCode guards against resolving a product as its own
// substitute.
func (s *ProductService) Resolve(ctx context.Context, code, excludeCode string, allowCacheRead bool) (*domain.Product, error) {
	if allowCacheRead {
		records, err := s.store.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			return s.fromStore(ctx, code, excludeCode, records)
		}
	}

	raw, err := s.catalog.FetchProduct(ctx, code)
	if err != nil {
		return nil, err
	}

	product := off.ProjectFull(raw, excludeCode)
	if product == nil {
		return nil, domain.ErrIncompleteProduct
	}

	stored, err := s.store.InsertIfAbsent(ctx, *product)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// fromStore returns the single trusted record for a code, repairing the
// store first when it holds more than one row for that code.
func (s *ProductService) fromStore(ctx context.Context, code, excludeCode string, records []domain.Product) (*domain.Product, error) {
	keeper := records[0]

	if len(records) > 1 {
		s.logger.Warn("collapsing duplicate product records",
			zap.String("code", code),
			zap.Int("count", len(records)))
		if err := s.store.DeleteByCode(ctx, code); err != nil {
			return nil, err
		}
		collapsed, err := s.store.InsertIfAbsent(ctx, keeper)
		if err != nil {
			return nil, err
		}
		keeper = collapsed
	}

	if excludeCode != "" && keeper.Code == excludeCode {
		return nil, domain.ErrIncompleteProduct
	}

	// Stored categories may carry the stringified upstream form.
	keeper.Categories = NormalizeCategories(keeper.Categories)
	return &keeper, nil
}

// Search resolves a free-text query to the first product whose payload
// projects into a complete record, walking the identifier list in order.
func (s *ProductService) Search(ctx context.Context, query string) (*domain.Product, error) {
	identifiers, err := s.catalog.SearchIdentifiers(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, id := range identifiers {
		product, err := s.Resolve(ctx, id, "", true)
		if err != nil {
			s.logger.Debug("skipping unresolvable search hit",
				zap.String("code", id), zap.Error(err))
			continue
		}
		return product, nil
	}

	return nil, domain.ErrProductNotFound
}

// SearchMinimal resolves a free-text query to a minimal record for quick
// display. The result is never written to the store.
func (s *ProductService) SearchMinimal(ctx context.Context, query string) (*domain.ProductSummary, error) {
	identifiers, err := s.catalog.SearchIdentifiers(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(identifiers) == 0 {
		return nil, domain.ErrProductNotFound
	}

	raw, err := s.catalog.FetchProduct(ctx, identifiers[0])
	if err != nil {
		return nil, err
	}

	summary := off.ProjectMinimal(raw)
	if summary == nil {
		return nil, domain.ErrIncompleteProduct
	}
	return summary, nil
}

// ProcessingScore fetches the nova processing group for a product code.
// Always a fresh fetch: the stored record may predate nova data.
func (s *ProductService) ProcessingScore(ctx context.Context, code string) (int, error) {
	raw, err := s.catalog.FetchProduct(ctx, code)
	if err != nil {
		return 0, err
	}

	nova, ok := off.NovaGroup(raw)
	if !ok {
		return 0, domain.ErrIncompleteProduct
	}
	return nova, nil
}
