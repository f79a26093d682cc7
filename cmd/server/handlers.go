package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/internal/cart"
	"storefront-api/internal/catalog"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"
)

type server struct {
	cart        *cart.Store
	catalog     *catalog.Store
	cartStorage storage.CartStorage
	log         *zap.SugaredLogger
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type sortRequest struct {
	Sort string `json:"sort" binding:"required"`
}

func (s *server) routes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/api/info", s.apiInfo)

	// Mocked catalog source the store fetches from
	r.GET("/api/products", services.MockCatalogHandler())

	r.POST("/catalog/refresh", s.refreshCatalog)
	r.GET("/catalog/products", s.catalogProducts)
	r.GET("/catalog/products/:id", s.catalogProduct)
	r.GET("/catalog/categories", s.catalogCategories)
	r.PUT("/catalog/filter", s.setFilter)
	r.DELETE("/catalog/filter", s.resetFilter)
	r.PUT("/catalog/sort", s.setSort)

	r.GET("/cart", s.getCart)
	r.POST("/cart/items", s.addCartItem)
	r.PUT("/cart/items/:id", s.updateCartItem)
	r.POST("/cart/items/:id/increment", s.incrementCartItem)
	r.POST("/cart/items/:id/decrement", s.decrementCartItem)
	r.DELETE("/cart/items/:id", s.removeCartItem)
	r.DELETE("/cart", s.clearCart)
}

func (s *server) health(c *gin.Context) {
	health := gin.H{
		"status":  "healthy",
		"service": "storefront-api",
		"version": "1.0.0",
	}
	if s.cartStorage.Available() {
		health["cart_storage"] = "connected"
	} else {
		health["cart_storage"] = "unavailable"
	}
	c.JSON(http.StatusOK, health)
}

func (s *server) apiInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Storefront API",
		"version":     "1.0.0",
		"description": "Demo storefront with a validated product catalog and a persistent shopping cart",
		"features":    []string{"Schema-validated catalog", "Filtering", "Sorting", "Reducer-based cart", "Redis persistence"},
		"endpoints": map[string]string{
			"GET /catalog/products": "Filtered and sorted catalog view",
			"PUT /catalog/filter":   "Replace the active product filter",
			"GET /cart":             "Cart contents with derived totals",
			"POST /cart/items":      "Add a catalog product to the cart",
			"GET /health":           "Health check",
		},
	})
}

func (s *server) refreshCatalog(c *gin.Context) {
	s.catalog.FetchProducts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"products": len(s.catalog.Products()),
		"error":    s.catalog.Err(),
	})
}

func (s *server) catalogProducts(c *gin.Context) {
	products := s.catalog.FilteredProducts()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
		"filter":   s.catalog.Filter(),
		"sort":     s.catalog.SortKey(),
		"loading":  s.catalog.Loading(),
		"error":    s.catalog.Err(),
	})
}

func (s *server) catalogProduct(c *gin.Context) {
	p, ok := s.catalog.ProductByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "product_not_found",
			Code:    http.StatusNotFound,
			Message: "no product with id " + c.Param("id"),
		})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *server) catalogCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.catalog.Categories()})
}

func (s *server) setFilter(c *gin.Context) {
	var f models.ProductFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}
	if err := s.catalog.SetFilter(f); err != nil {
		s.validationFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filter": s.catalog.Filter()})
}

func (s *server) resetFilter(c *gin.Context) {
	s.catalog.ResetFilter()
	c.JSON(http.StatusOK, gin.H{
		"filter": s.catalog.Filter(),
		"sort":   s.catalog.SortKey(),
	})
}

func (s *server) setSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}
	if err := s.catalog.SetSort(models.ProductSort(req.Sort)); err != nil {
		s.validationFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sort": s.catalog.SortKey()})
}

func (s *server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

func (s *server) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	p, ok := s.catalog.ProductByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "product_not_found",
			Code:    http.StatusNotFound,
			Message: "no product with id " + req.ProductID,
		})
		return
	}

	if err := s.cart.AddItem(c.Request.Context(), p); err != nil {
		s.validationFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

func (s *server) updateCartItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}
	s.cart.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

func (s *server) incrementCartItem(c *gin.Context) {
	s.cart.IncrementItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

func (s *server) decrementCartItem(c *gin.Context) {
	s.cart.DecrementItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

func (s *server) removeCartItem(c *gin.Context) {
	s.cart.RemoveItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

func (s *server) clearCart(c *gin.Context) {
	s.cart.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, cartView(s.cart.Model()))
}

// validationFailure renders a structured validation error. Admission
// failures are the caller's fault, so they map to 422 rather than 500.
func (s *server) validationFailure(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "validation_failed",
			Code:    http.StatusUnprocessableEntity,
			Message: verr.Error(),
			Issues:  verr.Issues,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	})
}

func cartView(m cart.Model) gin.H {
	items := m.Items
	if items == nil {
		items = []models.CartItem{}
	}
	subtotal := m.Subtotal()
	return gin.H{
		"items":         items,
		"item_count":    m.ItemCount(),
		"is_empty":      m.IsEmpty(),
		"subtotal":      subtotal,
		"tax":           m.Tax(),
		"total":         m.Total(),
		"total_display": utils.FormatPrice(m.Total()),
	}
}
