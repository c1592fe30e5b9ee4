package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriswap/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	// maxSubstitutes caps the number of substitutes collected per search
	maxSubstitutes = 6

	// maxGradeSteps bounds the grade escalation ('a' through 'e')
	maxGradeSteps = 5

	// maxNovaSteps bounds the nova escalation (scores 0 through 3)
	maxNovaSteps = 4
)

// ProductResolver resolves a product code to a complete record.
// Satisfied by ProductService.
type ProductResolver interface {
	Resolve(ctx context.Context, code, excludeCode string, allowCacheRead bool) (*domain.Product, error)
}

// SubstituteServiceConfig holds configuration for the substitute service
type SubstituteServiceConfig struct {
	SearchCacheTTL time.Duration
}

// SubstituteService walks a product's categories and increasing quality
// thresholds until it collects acceptable substitutes. Both axes are bounded,
// so a search always terminates: categories are visited once each (most
// specific first, per upstream ordering) and thresholds only ever increase.
type SubstituteService struct {
	products ProductResolver
	catalog  domain.CatalogClient
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSubstituteService creates a new substitute service with dependencies
func NewSubstituteService(
	products ProductResolver,
	catalog domain.CatalogClient,
	cache domain.CacheRepository,
	config SubstituteServiceConfig,
	logger *zap.Logger,
) *SubstituteService {
	cacheTTL := config.SearchCacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &SubstituteService{
		products: products,
		catalog:  catalog,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// FindByGrade searches for substitutes with a nutrition grade at least as
// good as minimalGrade. Categories are visited from the last declared to the
// first; within a category, grades escalate from 'a' up to minimalGrade. The
// first non-empty batch wins. Exhausting every combination yields
// ErrNoSubstitutes.
func (s *SubstituteService) FindByGrade(ctx context.Context, categories []string, excludeCode string, minimalGrade byte) ([]domain.Product, error) {
	if minimalGrade < domain.GradeBest || minimalGrade > domain.GradeWorst {
		return nil, domain.ErrInvalidRequest
	}

	cats := NormalizeCategories(categories)
	if len(cats) == 0 {
		return nil, domain.ErrNoSubstitutes
	}

	for ci := len(cats) - 1; ci >= 0; ci-- {
		category := cats[ci]

		for step := 0; step < maxGradeSteps; step++ {
			grade := byte(domain.GradeBest + step)
			if grade > minimalGrade {
				break
			}

			identifiers := s.gradeIdentifiers(ctx, category, grade)
			subs, hadCandidates := s.collect(ctx, identifiers, excludeCode, true)
			if len(subs) > 0 {
				s.logger.Info("substitutes found",
					zap.String("category", category),
					zap.String("grade", string(grade)),
					zap.Int("count", len(subs)))
				return subs, nil
			}
			if hadCandidates {
				s.logger.Debug("candidates found but none qualified",
					zap.String("category", category),
					zap.String("grade", string(grade)))
			}
		}
	}

	return nil, domain.ErrNoSubstitutes
}

// FindByNova searches for substitutes with a nova processing group no worse
// than minimalNova, mirroring FindByGrade over scores 0..3. Candidate records
// are always fetched fresh: the stored record and the minimal projection
// differ, so cache reads are disallowed here. An out-of-range minimalNova
// short-circuits without issuing any query.
func (s *SubstituteService) FindByNova(ctx context.Context, categories []string, excludeCode string, minimalNova int) ([]domain.Product, error) {
	if minimalNova < domain.NovaMin || minimalNova > domain.NovaMax {
		return nil, domain.ErrNoSubstitutes
	}

	cats := NormalizeCategories(categories)
	if len(cats) == 0 {
		return nil, domain.ErrNoSubstitutes
	}

	for ci := len(cats) - 1; ci >= 0; ci-- {
		category := cats[ci]

		for nova := 0; nova < maxNovaSteps && nova <= minimalNova; nova++ {
			identifiers := s.novaIdentifiers(ctx, category, nova)
			subs, hadCandidates := s.collect(ctx, identifiers, excludeCode, false)
			if len(subs) > 0 {
				s.logger.Info("substitutes found",
					zap.String("category", category),
					zap.Int("nova", nova),
					zap.Int("count", len(subs)))
				return subs, nil
			}
			if hadCandidates {
				s.logger.Debug("candidates found but none qualified",
					zap.String("category", category),
					zap.Int("nova", nova))
			}
		}
	}

	return nil, domain.ErrNoSubstitutes
}

// collect resolves candidate identifiers into substitute records, skipping
// the original product, until the cap is reached. hadCandidates reports
// whether the identifier search yielded anything at all, so callers can tell
// "no candidates" apart from "candidates existed but none qualified".
func (s *SubstituteService) collect(ctx context.Context, identifiers []string, excludeCode string, allowCacheRead bool) (subs []domain.Product, hadCandidates bool) {
	if len(identifiers) == 0 {
		return nil, false
	}

	for _, id := range identifiers {
		if id == excludeCode {
			continue
		}

		product, err := s.products.Resolve(ctx, id, excludeCode, allowCacheRead)
		if err != nil {
			s.logger.Debug("skipping candidate",
				zap.String("code", id), zap.Error(err))
			continue
		}

		subs = append(subs, *product)
		if len(subs) >= maxSubstitutes {
			break
		}
	}

	return subs, true
}

// gradeIdentifiers runs a category+grade search with TTL caching of the
// identifier list
func (s *SubstituteService) gradeIdentifiers(ctx context.Context, category string, grade byte) []string {
	key := fmt.Sprintf("search:grade:%s:%s", category, string(grade))
	if ids, ok := s.cachedIdentifiers(ctx, key); ok {
		return ids
	}

	ids, err := s.catalog.SearchByCategoryGrade(ctx, category, grade)
	if err != nil {
		// Transport fault; treated like an empty result for escalation.
		return nil
	}

	s.storeIdentifiers(ctx, key, ids)
	return ids
}

// novaIdentifiers runs a category+nova search with TTL caching of the
// identifier list
func (s *SubstituteService) novaIdentifiers(ctx context.Context, category string, nova int) []string {
	key := fmt.Sprintf("search:nova:%s:%d", category, nova)
	if ids, ok := s.cachedIdentifiers(ctx, key); ok {
		return ids
	}

	ids, err := s.catalog.SearchByCategoryNova(ctx, category, nova)
	if err != nil {
		return nil
	}

	s.storeIdentifiers(ctx, key, ids)
	return ids
}

// cachedIdentifiers fetches a previously cached identifier list
func (s *SubstituteService) cachedIdentifiers(ctx context.Context, key string) ([]string, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	ids, ok := value.([]string)
	if !ok {
		return nil, false
	}
	return ids, true
}

// storeIdentifiers caches an identifier list under the search key
func (s *SubstituteService) storeIdentifiers(ctx context.Context, key string, ids []string) {
	if err := s.cache.Set(ctx, key, ids, s.cacheTTL); err != nil {
		s.logger.Debug("failed to cache identifier list",
			zap.String("key", key), zap.Error(err))
	}
}
