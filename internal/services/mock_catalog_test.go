package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/models"
)

// The seeded catalog must itself pass the contract it exists to exercise.
func TestSeedProductsAreValid(t *testing.T) {
	products := SeedProducts()
	require.NotEmpty(t, products)
	assert.Nil(t, models.ValidateProducts(products))
}

func TestSeedCoversAllCategoriesAndEdgeCases(t *testing.T) {
	products := SeedProducts()

	categories := make(map[models.Category]bool)
	outOfStock, unrated := 0, 0
	for _, p := range products {
		categories[p.Category] = true
		if p.Stock == 0 {
			outOfStock++
		}
		if p.Rating == nil {
			unrated++
		}
	}

	assert.Len(t, categories, 5)
	assert.GreaterOrEqual(t, outOfStock, 1, "need out-of-stock products for the stock filter")
	assert.GreaterOrEqual(t, unrated, 1, "need unrated products for the rating policies")
}

func TestMockCatalogHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/products", MockCatalogHandler())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, len(SeedProducts()))
}
