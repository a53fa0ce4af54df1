package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/pkg/logger"
	"github.com/shashiranjanraj/nexus/pkg/metrics"
)

// ProductStore is the part of the product repository CatalogService needs.
type ProductStore interface {
	Create(ctx context.Context, in models.ProductInput) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// ProductCache is a best-effort key/value cache. Get reports a hit.
type ProductCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CatalogService reads single products through the cache. Products are
// never updated after creation, so cached copies never go stale.
type CatalogService struct {
	products ProductStore
	cache    ProductCache
	ttl      time.Duration
}

// NewCatalogService wires the store and an optional cache (nil disables it).
func NewCatalogService(products ProductStore, cache ProductCache, ttl time.Duration) *CatalogService {
	return &CatalogService{products: products, cache: cache, ttl: ttl}
}

func (s *CatalogService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product, err := s.products.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("product created", "product_id", product.ID.String())
	s.remember(ctx, product)
	return product, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// Get fails with ErrInvalidIdentifier before touching cache or store when
// raw is not a well-formed id.
func (s *CatalogService) Get(ctx context.Context, raw string) (*models.Product, error) {
	id, err := models.ParseProductID(raw)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached models.Product
		if s.cache.Get(ctx, cacheKey(id), &cached) {
			metrics.CacheHits.Inc()
			return &cached, nil
		}
		metrics.CacheMisses.Inc()
	}

	product, err := s.products.GetByID(ctx, id.String())
	if err != nil {
		return nil, err
	}

	s.remember(ctx, product)
	return product, nil
}

func (s *CatalogService) remember(ctx context.Context, p *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(p.ID), p, s.ttl); err != nil {
		logger.WithCtx(ctx).Warn("product cache write failed", "product_id", p.ID.String(), "error", err)
	}
}

func cacheKey(id models.ProductID) string {
	return "product:" + id.String()
}
