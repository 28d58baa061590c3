package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/redis"
)

// CreateCartSession mints a session id for a fresh anonymous cart.
func CreateCartSession(c *gin.Context) {
	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]string{
		"session_id": uuid.New().String(),
	}))
}

// GetCart loads the session cart and opportunistically refreshes line
// prices from the product cache (cart drawer behavior; failures only log).
func GetCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	ctx := c.Request.Context()

	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	if redis.RefreshCartPrices(ctx, cart) {
		if err := redis.SaveCart(ctx, cart); err != nil {
			log.Printf("Warning: failed to persist refreshed cart prices: %v", err)
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func AddToCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	ctx := c.Request.Context()
	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	cart.AddItem(req.Product, req.Quantity, req.Size, req.Color, req.IsMembership)

	if err := redis.SaveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func UpdateCartItem(c *gin.Context) {
	sessionID := c.Param("sessionId")
	itemID := c.Param("itemId")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	ctx := c.Request.Context()
	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	if !cart.UpdateQuantity(itemID, req.Quantity) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart",
			global.FieldError("itemId", "No cart line with this id", "not_found")))
		return
	}

	if err := redis.SaveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func RemoveFromCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	itemID := c.Param("itemId")

	ctx := c.Request.Context()
	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	removed := cart.RemoveItem(itemID)
	if removed == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart",
			global.FieldError("itemId", "No cart line with this id", "not_found")))
		return
	}

	if err := redis.SaveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"cart":    cart,
		"removed": removed,
	}))
}

// ClearCart empties the cart. The cleared flag tells the storefront whether
// to show the "cart cleared" toast; clearing an already-empty cart is a
// silent no-op.
func ClearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")

	ctx := c.Request.Context()
	cart, err := redis.GetCart(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}

	cleared := cart.Clear()
	if cleared {
		if err := redis.SaveCart(ctx, cart); err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save cart", nil))
			return
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"cart":    cart,
		"cleared": cleared,
	}))
}
