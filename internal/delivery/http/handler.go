package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products    *usecase.ProductService
	substitutes *usecase.SubstituteService
	favorites   *usecase.FavoriteService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *usecase.ProductService,
	substitutes *usecase.SubstituteService,
	favorites *usecase.FavoriteService,
) *Handler {
	return &Handler{
		products:    products,
		substitutes: substitutes,
		favorites:   favorites,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriswap-backend",
		"version": "1.0.0",
	})
}

// SearchProduct resolves a free-text query to a complete product record
func (h *Handler) SearchProduct(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	product, err := h.products.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// QuickSearchProduct resolves a free-text query to a minimal record for
// lightweight listings
func (h *Handler) QuickSearchProduct(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	summary, err := h.products.SearchMinimal(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetProduct resolves a product code, preferring the local store
func (h *Handler) GetProduct(c *gin.Context) {
	code, ok := productCode(c)
	if !ok {
		return
	}

	product, err := h.products.Resolve(c.Request.Context(), code, "", true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetSubstitutes finds substitutes for a product, either by nutrition grade
// (?grade=c) or by nova processing group (?nova=2, or ?nova=auto to use the
// product's own score as the threshold).
func (h *Handler) GetSubstitutes(c *gin.Context) {
	code, ok := productCode(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	product, err := h.products.Resolve(ctx, code, "", true)
	if err != nil {
		respondError(c, err)
		return
	}

	if grade, present := c.GetQuery("grade"); present {
		if len(grade) != 1 || grade[0] < domain.GradeBest || grade[0] > domain.GradeWorst {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grade must be a single letter a-e"})
			return
		}

		subs, err := h.substitutes.FindByGrade(ctx, product.Categories, code, grade[0])
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"substitutes": subs})
		return
	}

	if novaParam, present := c.GetQuery("nova"); present {
		var minimal int
		if novaParam == "auto" {
			// Derive the threshold from the product's own score.
			minimal, err = h.products.ProcessingScore(ctx, code)
			if err != nil {
				respondError(c, domain.ErrNoSubstitutes)
				return
			}
		} else {
			minimal, err = strconv.Atoi(novaParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "nova must be a number or 'auto'"})
				return
			}
		}

		subs, err := h.substitutes.FindByNova(ctx, product.Categories, code, minimal)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"substitutes": subs})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "either 'grade' or 'nova' query parameter is required"})
}

// favoriteRequest is the body for adding a favorite pairing
type favoriteRequest struct {
	ProductCode    string `json:"productCode" binding:"required"`
	SubstituteCode string `json:"substituteCode" binding:"required"`
}

// AddFavorite stores a (product, substitute) pairing for the current user
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productCode and substituteCode are required"})
		return
	}

	if err := h.favorites.Add(c.Request.Context(), userID, req.ProductCode, req.SubstituteCode); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}

// RemoveFavorite deletes a stored pairing for the current user
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	productCode := c.Query("productCode")
	substituteCode := c.Query("substituteCode")
	if productCode == "" || substituteCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productCode and substituteCode are required"})
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), userID, productCode, substituteCode); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListFavorites returns every stored pairing for the current user
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": entries})
}

// productCode validates that the :code parameter is a numeric product code
func productCode(c *gin.Context) (string, bool) {
	code := c.Param("code")
	if _, err := strconv.ParseUint(code, 10, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product code must be numeric"})
		return "", false
	}
	return code, true
}

// currentUser extracts the user reference; account management lives outside
// this service, so a header is all we need here.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header is required"})
		return "", false
	}
	return userID, true
}

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrIncompleteProduct),
		errors.Is(err, domain.ErrNoSubstitutes),
		errors.Is(err, domain.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "food catalog is unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
