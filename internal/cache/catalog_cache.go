package cache

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/metrics"
	"gitlab.com/sprinkles/storefront/internal/repository"
)

type ProductRepository interface {
	GetAll(ctx context.Context) ([]*repository.Product, error)
}

// CatalogCache keeps the full product list in memory. It is only consulted
// once warm, that is after LoadInitialData or Replace succeeded.
type CatalogCache struct {
	mu    sync.RWMutex
	cache map[int64]*repository.Product
	warm  bool
	// version counts Set and Delete calls.
	version uint64
	repo    ProductRepository
	logger  *zap.Logger
}

func NewCatalogCache(repo ProductRepository, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{
		cache:  make(map[int64]*repository.Product),
		repo:   repo,
		logger: logger,
	}
}

func (c *CatalogCache) LoadInitialData(ctx context.Context) error {
	c.logger.Info("loading catalog cache")
	version := c.Version()
	products, err := c.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if !c.ReplaceIfUnchanged(products, version) {
		c.logger.Info("catalog changed while loading, cache left cold")
		return nil
	}
	c.logger.Info("catalog cache loaded", zap.Int("products", len(products)))
	return nil
}

// Version identifies the current cache contents. Take it before reading a
// snapshot from the database and pass it to ReplaceIfUnchanged.
func (c *CatalogCache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Replace swaps the cached catalog for products and marks the cache warm.
func (c *CatalogCache) Replace(products []*repository.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(products)
}

// ReplaceIfUnchanged installs products only when no Set or Delete happened
// since version was taken. Otherwise the snapshot may miss those writes and
// the cache stays as it is.
func (c *CatalogCache) ReplaceIfUnchanged(products []*repository.Product, version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		return false
	}
	c.replaceLocked(products)
	return true
}

func (c *CatalogCache) replaceLocked(products []*repository.Product) {
	c.cache = make(map[int64]*repository.Product, len(products))
	for _, product := range products {
		productCopy := *product
		c.cache[product.ID] = &productCopy
	}
	c.warm = true
	metrics.CatalogCacheItems.Set(float64(len(c.cache)))
}

func (c *CatalogCache) Get(id int64) (*repository.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, found := c.cache[id]
	if !found {
		return nil, false
	}
	productCopy := *product
	return &productCopy, true
}

// All returns the cached products ordered by id. The second result is false
// while the cache is cold.
func (c *CatalogCache) All() ([]*repository.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.warm {
		return nil, false
	}
	products := make([]*repository.Product, 0, len(c.cache))
	for _, product := range c.cache {
		productCopy := *product
		products = append(products, &productCopy)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, true
}

func (c *CatalogCache) Set(product *repository.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	productCopy := *product
	c.cache[product.ID] = &productCopy
	c.version++
	metrics.CatalogCacheItems.Set(float64(len(c.cache)))
	c.logger.Debug("catalog cache: set product", zap.Int64("product_id", product.ID))
}

func (c *CatalogCache) Delete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	if _, found := c.cache[id]; found {
		delete(c.cache, id)
		metrics.CatalogCacheItems.Set(float64(len(c.cache)))
		c.logger.Debug("catalog cache: deleted product", zap.Int64("product_id", id))
	}
}
