package domain

// Grade letters run from GradeBest (healthiest) to GradeWorst.
const (
	GradeBest  = 'a'
	GradeWorst = 'e'
)

// Nova group boundaries. Lower means less processed.
const (
	NovaMin = 1
	NovaMax = 4
)

// Product is a complete product record as used for substitution and storage.
// All six fields are populated; a record missing any of them must never be
// constructed (use ProductSummary for lightweight listings instead).
// Records are immutable once built and superseded, not mutated, on re-fetch.
type Product struct {
	Code       string                 `json:"code"`
	Name       string                 `json:"name"`
	Grade      string                 `json:"grade"`
	Image      string                 `json:"image"`
	Categories []string               `json:"categories"`
	Nutriments map[string]interface{} `json:"nutriments"`
}

// ProductSummary is the minimal record used only for quick list display.
// It is never written to the durable store. Grade may be empty.
type ProductSummary struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Grade string `json:"grade,omitempty"`
}

// RemoteProduct is the raw payload shape returned by the Open Food Facts
// lookup endpoint, before projection into a Product or ProductSummary.
type RemoteProduct struct {
	Code                string                 `json:"code"`
	ProductName         string                 `json:"product_name"`
	ImageURL            string                 `json:"image_url"`
	NutritionGrades     string                 `json:"nutrition_grades"`
	CategoriesHierarchy []string               `json:"categories_hierarchy"`
	Nutriments          map[string]interface{} `json:"nutriments"`
}
