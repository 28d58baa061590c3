package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/mongo"
	"jpskating.in/store-api/pkg/receipt"
)

// GetOrderByNumber is the order confirmation lookup. Order numbers are
// unguessable enough for the storefront; no auth check here.
func GetOrderByNumber(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	order, err := mongo.GetOrderByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found",
				global.FieldError("orderNumber", "No order with this number", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// GetOrderReceipt renders the printable HTML receipt for an order.
func GetOrderReceipt(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	ctx := c.Request.Context()

	order, err := mongo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found",
				global.FieldError("orderNumber", "No order with this number", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}

	productNames := make(map[int64]string, len(order.Items))
	for _, item := range order.Items {
		if _, ok := productNames[item.ProductID]; ok {
			continue
		}
		product, err := mongo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			log.Printf("Warning: product %d missing for receipt of order %s: %v",
				item.ProductID, orderNumber, err)
			continue
		}
		productNames[item.ProductID] = product.Name
	}

	var membershipNames []string
	for _, planID := range models.ParseMembershipIDs(order.Notes) {
		plan, err := mongo.GetMembershipByID(ctx, planID)
		if err != nil {
			log.Printf("Warning: membership plan %d missing for receipt of order %s: %v",
				planID, orderNumber, err)
			continue
		}
		membershipNames = append(membershipNames, plan.Name)
	}

	html, err := receipt.Render(order, productNames, membershipNames)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to render receipt", nil))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetUserOrders lists a customer's order history, newest first.
func GetUserOrders(c *gin.Context) {
	userID := c.Param("id")

	orders, err := mongo.GetOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}
