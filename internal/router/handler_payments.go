package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/mongo"
	"jpskating.in/store-api/pkg/payment"
)

// InitiatePayment builds the PayU redirect form for an order.
func InitiatePayment(c *gin.Context) {
	var req payment.InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	result, err := payment.Initiate(c.Request.Context(), &req)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found",
				global.FieldError("order_id", "No order with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to initiate payment", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

// VerifyPayment handles the gateway callback. A bad hash is a hard 400;
// a verified failure callback marks the order failed and still returns 200.
func VerifyPayment(c *gin.Context) {
	var req payment.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	order, err := payment.Verify(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, payment.ErrHashMismatch) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Payment verification failed",
				global.FieldError("hash", "Hash does not match the payment payload", "hash_mismatch")))
			return
		}
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Transaction not found",
				global.FieldError("txnid", "No transaction with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to verify payment", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// SimulatePayment is the demo-mode shortcut that marks an order paid
// without touching the gateway.
func SimulatePayment(c *gin.Context) {
	var req struct {
		OrderID int64   `json:"order_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required"`
		Email   string  `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	txnID, order, err := payment.SimulateSuccess(c.Request.Context(), req.OrderID, req.Amount, req.Email)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found",
				global.FieldError("order_id", "No order with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to simulate payment", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"transaction_id": txnID,
		"order":          order,
	}))
}
