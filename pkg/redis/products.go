package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jpskating.in/store-api/pkg/models"
)

const productCacheTTL = 24 * time.Hour

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// CacheProduct stores a product and registers it on its category list.
func CacheProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	payload, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %d: %w", product.ID, err)
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, productKey(product.ID), payload, productCacheTTL)

	categoryKey := fmt.Sprintf("category:%s", product.Category)
	pipe.LRem(ctx, categoryKey, 0, product.ID)
	pipe.LPush(ctx, categoryKey, product.ID)
	pipe.Expire(ctx, categoryKey, productCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache product %d: %w", product.ID, err)
	}
	return nil
}

func GetProductFromCache(ctx context.Context, id int64) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	payload, err := client.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(payload), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %d: %w", id, err)
	}
	return &product, nil
}

// RemoveProductFromCache drops a product and its category registration.
func RemoveProductFromCache(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()
	pipe.Del(ctx, productKey(product.ID))
	pipe.LRem(ctx, fmt.Sprintf("category:%s", product.Category), 0, product.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove product %d from cache: %w", product.ID, err)
	}
	return nil
}

// RefreshCartPrices updates cart line snapshots from the product cache.
// Best effort for the cart drawer: cache misses leave the snapshot alone,
// and only a changed price marks the cart dirty.
func RefreshCartPrices(ctx context.Context, cart *models.Cart) bool {
	dirty := false
	for _, item := range cart.Items {
		if item.IsMembership {
			continue
		}
		cached, err := GetProductFromCache(ctx, item.Product.ID)
		if err != nil {
			continue
		}
		if cached.Price != item.Product.Price {
			item.Product.Price = cached.Price
			dirty = true
		}
	}
	if dirty {
		cart.Recalculate()
	}
	return dirty
}
