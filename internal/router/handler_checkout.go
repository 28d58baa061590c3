package router

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/mongo"
	"jpskating.in/store-api/pkg/payment"
	"jpskating.in/store-api/pkg/redis"
)

// validateCheckout collects every missing or malformed field in one pass so
// the storefront can highlight all of them at once.
func validateCheckout(req *models.CheckoutRequest) []global.ValidationError {
	var errs []global.ValidationError
	require := func(field, value, message string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, global.ValidationError{Field: field, Message: message, Code: "required"})
		}
	}
	require("session_id", req.SessionID, "Cart session id is required")
	require("user_id", req.UserID, "Sign in before checking out")
	require("email", req.Email, "Email is required")
	require("phone", req.Phone, "Phone number is required")
	require("name", req.Name, "Full name is required")
	require("address", req.Address, "Street address is required")
	require("city", req.City, "City is required")
	require("state", req.State, "State is required")
	require("zip", req.Zip, "ZIP code is required")
	if strings.TrimSpace(req.Email) != "" && !strings.Contains(req.Email, "@") {
		errs = append(errs, global.ValidationError{Field: "email", Message: "Email address is invalid", Code: "invalid"})
	}
	return errs
}

// Checkout turns the session cart into a pending order, records the
// non-membership lines as order items, and runs the simulated payment.
// Membership plans in the cart travel on the order notes only.
func Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	// Form validation runs before the cart is even loaded.
	if errs := validateCheckout(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Please fill in all required fields", errs))
		return
	}

	ctx := c.Request.Context()
	cart, err := redis.GetCart(ctx, req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to load cart", nil))
		return
	}
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Your cart is empty",
			global.FieldError("cart", "Add items to the cart before checking out", "empty_cart")))
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.ProviderPayU
	}

	order := &models.Order{
		UserID:          req.UserID,
		OrderNumber:     models.GenerateOrderNumber(),
		Status:          models.OrderStatusPending,
		TotalAmount:     cart.Total,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: req.ShippingSnapshot(),
		Notes:           models.ComposeOrderNotes(cart.MembershipIDs(), req.Notes),
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
	}

	created, err := mongo.CreateOrder(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create order", nil))
		return
	}

	for _, item := range cart.ProductLines() {
		if _, err := mongo.AddOrderItem(ctx, created.ID, item.Product.ID, item.Quantity, item.Product.Price); err != nil {
			// Order already exists; a lost line item is logged, not rolled back.
			log.Printf("Warning: failed to record order item for order %d product %d: %v",
				created.ID, item.Product.ID, err)
		}
	}

	txnID, paid, err := payment.SimulateSuccess(ctx, created.ID, created.TotalAmount, created.CustomerEmail)
	if err != nil {
		log.Printf("Warning: payment failed for order %d: %v", created.ID, err)
		c.JSON(http.StatusPaymentRequired, global.ErrorResponse("Payment could not be completed",
			global.FieldError("payment", "The payment was not completed; the order remains pending", "payment_failed")))
		return
	}

	if err := redis.DeleteCart(ctx, req.SessionID); err != nil {
		log.Printf("Warning: failed to clear cart for session %s: %v", req.SessionID, err)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"order": paid,
		"payment": map[string]string{
			"status":         "completed",
			"transaction_id": txnID,
		},
	}))
}
