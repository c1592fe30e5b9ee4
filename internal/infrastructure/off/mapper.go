package off

import (
	"strconv"

	"github.com/nutriswap/backend/internal/domain"
)

// novaGroupKey is the nutriments entry holding the processing group score
const novaGroupKey = "nova-group"

// ProjectFull projects a raw payload into a complete Product.
// Every field of the complete record must be present and non-empty; a sparse
// payload yields nil, which signals "too sparse to use", not an error.
// When excludeCode is non-empty a payload carrying that code also yields nil,
// so a product can never be offered as its own substitute.
func ProjectFull(raw *domain.RemoteProduct, excludeCode string) *domain.Product {
	if raw == nil {
		return nil
	}
	if excludeCode != "" && raw.Code == excludeCode {
		return nil
	}
	if raw.Code == "" || raw.ProductName == "" || raw.ImageURL == "" ||
		raw.NutritionGrades == "" || len(raw.CategoriesHierarchy) == 0 ||
		len(raw.Nutriments) == 0 {
		return nil
	}

	return &domain.Product{
		Code:       raw.Code,
		Name:       raw.ProductName,
		Grade:      raw.NutritionGrades,
		Image:      raw.ImageURL,
		Categories: raw.CategoriesHierarchy,
		Nutriments: raw.Nutriments,
	}
}

// ProjectMinimal projects a raw payload into a ProductSummary for quick list
// display. Name, image and code are required; grade is carried when present.
func ProjectMinimal(raw *domain.RemoteProduct) *domain.ProductSummary {
	if raw == nil {
		return nil
	}
	if raw.Code == "" || raw.ProductName == "" || raw.ImageURL == "" {
		return nil
	}

	return &domain.ProductSummary{
		Code:  raw.Code,
		Name:  raw.ProductName,
		Image: raw.ImageURL,
		Grade: raw.NutritionGrades,
	}
}

// NovaGroup extracts the processing group score from the nutriments block.
// Open Food Facts serves it as either a JSON number or a numeric string.
// Values outside the valid nova range are rejected.
func NovaGroup(raw *domain.RemoteProduct) (int, bool) {
	if raw == nil || raw.Nutriments == nil {
		return 0, false
	}

	v, ok := raw.Nutriments[novaGroupKey]
	if !ok {
		return 0, false
	}

	var nova int
	switch x := v.(type) {
	case float64:
		nova = int(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		nova = int(f)
	default:
		return 0, false
	}

	if nova < domain.NovaMin || nova > domain.NovaMax {
		return 0, false
	}
	return nova, true
}
