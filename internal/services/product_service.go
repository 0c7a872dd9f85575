package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"burger_pos_backend/internal/cache"
	"burger_pos_backend/internal/models"
	"burger_pos_backend/internal/repositories"
	"burger_pos_backend/pkg/utils"
)

const productCacheKey = "products:all"

// starterProducts is the catalog loaded by the seed endpoint.
var starterProducts = []models.Product{
	{
		Name:  "Grilled bacon burger",
		Code:  "HB-GRILLED",
		Type:  models.ProductTypeBurger,
		Price: 18000,
		Options: models.ProductOptions{
			Meat: true, Lettuce: true, Tomato: true, Onion: true,
			Bacon: "grilled",
		},
		Active: true,
	},
	{
		Name:  "Caramelized bacon burger",
		Code:  "HB-CARAMEL",
		Type:  models.ProductTypeBurger,
		Price: 18000,
		Options: models.ProductOptions{
			Meat: true, Lettuce: true, Tomato: true, Onion: true,
			Bacon: "caramelized",
		},
		Active: true,
	},
}

// ProductService exposes the read-only catalog plus seeding.
type ProductService interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByType(ctx context.Context, productType string) ([]models.Product, error)
	SeedProducts(ctx context.Context) (int, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	cache       cache.Store
	cacheTTL    time.Duration
}

// NewProductService creates a new instance of ProductService.
func NewProductService(pr repositories.ProductRepository, store cache.Store, cacheTTL time.Duration) ProductService {
	return &productService{
		productRepo: pr,
		cache:       store,
		cacheTTL:    cacheTTL,
	}
}

// GetProducts returns the full catalog sorted by type, consulting the cache
// first. The menu changes rarely, so cache failures only cost a DB round trip.
func (s *productService) GetProducts(ctx context.Context) ([]models.Product, error) {
	if bytes, err := s.cache.Get(ctx, productCacheKey); err == nil {
		var products []models.Product
		if err := json.Unmarshal(bytes, &products); err == nil {
			return products, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		utils.LogError(err, "GetProducts: cache read failed")
	}

	products, err := s.productRepo.GetProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if bytes, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, productCacheKey, bytes, s.cacheTTL); err != nil {
			utils.LogError(err, "GetProducts: cache write failed")
		}
	}
	return products, nil
}

func (s *productService) GetProductsByType(ctx context.Context, productType string) ([]models.Product, error) {
	products, err := s.productRepo.GetProductsByType(productType)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by type %q: %w", productType, err)
	}
	return products, nil
}

// SeedProducts replaces the catalog with the starter products and drops the
// cached copy.
func (s *productService) SeedProducts(ctx context.Context) (int, error) {
	count, err := s.productRepo.ReplaceAll(starterProducts)
	if err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	if err := s.cache.Delete(ctx, productCacheKey); err != nil {
		utils.LogError(err, "SeedProducts: cache invalidation failed")
	}
	return count, nil
}
