package router

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/mongo"
	"jpskating.in/store-api/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// GetProducts lists the active catalog, optionally filtered by category.
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		products, err := mongo.GetProductsByCategory(ctx, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
			return
		}
		c.JSON(http.StatusOK, global.SuccessResponse(products))
		return
	}

	products, err := mongo.GetActiveProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// GetProductByID retrieves a product by id with Redis caching
func GetProductByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id",
			global.FieldError("id", "Must be a numeric product id", "invalid_format")))
		return
	}

	ctx := c.Request.Context()

	// Try Redis cache first
	product, err := redis.GetProductFromCache(ctx, id)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	// Cache miss, check MongoDB
	product, err = mongo.GetProductByID(ctx, id)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found",
				global.FieldError("id", "No product exists with this id", "not_found")))
			return
		}
		log.Printf("Error fetching product from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		// Log cache error but don't fail the request
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}
