package handlers

import (
	"net/http"

	"burger_pos_backend/internal/services"
	"burger_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// GetProducts handles fetching the full catalog, sorted by type.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetProducts: Error from productService.GetProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch products.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductsByType handles fetching catalog entries of one type.
// GET /products/:type with type in {burger, combo, side, drink}
func (h *ProductHandler) GetProductsByType(c *gin.Context) {
	products, err := h.productService.GetProductsByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		utils.LogError(err, "GetProductsByType: Error from productService.GetProductsByType")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch products.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, products)
}

// SeedProducts replaces the catalog with the starter products.
// POST /seed
func (h *ProductHandler) SeedProducts(c *gin.Context) {
	count, err := h.productService.SeedProducts(c.Request.Context())
	if err != nil {
		utils.LogError(err, "SeedProducts: Error from productService.SeedProducts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to seed products.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Products loaded successfully",
		"count":   count,
	})
}
