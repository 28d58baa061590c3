package router

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/ai"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/mongo"
	"jpskating.in/store-api/pkg/redis"
)

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid id",
			global.FieldError("id", "Id must be an integer", "invalid")))
		return 0, false
	}
	return id, true
}

// adminEmail returns the acting admin's email for audit fields.
func adminEmail(c *gin.Context) string {
	if v, ok := c.Get("admin"); ok {
		if profile, ok := v.(*models.Profile); ok {
			return profile.Email
		}
	}
	return ""
}

// --- Products ---

// AdminGetProducts lists every product, inactive ones included.
func AdminGetProducts(c *gin.Context) {
	products, err := mongo.GetAllProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch products", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func AdminCreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	product, err := mongo.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create product", nil))
		return
	}

	if err := redis.CacheProduct(c.Request.Context(), product); err != nil {
		log.Printf("Warning: failed to cache product %d: %v", product.ID, err)
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(product))
}

// immutable fields an update payload can never touch
var protectedUpdateFields = []string{"id", "_id", "created_at", "updated_at"}

func AdminUpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}
	for _, field := range protectedUpdateFields {
		delete(updates, field)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updatable fields provided",
			global.FieldError("request", "Payload contains no updatable fields", "empty_update")))
		return
	}

	product, err := mongo.UpdateProduct(c.Request.Context(), id, updates)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found",
				global.FieldError("id", "No product with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update product", nil))
		return
	}

	if err := redis.CacheProduct(c.Request.Context(), product); err != nil {
		log.Printf("Warning: failed to cache product %d: %v", product.ID, err)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func AdminDeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := mongo.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found",
				global.FieldError("id", "No product with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete product", nil))
		return
	}

	if err := redis.RemoveProductFromCache(c.Request.Context(), product); err != nil {
		log.Printf("Warning: failed to evict product %d from cache: %v", product.ID, err)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"deleted": true,
		"product": product,
	}))
}

// AdminUpdateStock sets the absolute stock level and records the delta in
// the inventory log.
func AdminUpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		StockQuantity *int   `json:"stock_quantity" binding:"required"`
		Reason        string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || *req.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("stock_quantity", "Stock quantity must be a non-negative integer", "invalid")))
		return
	}

	ctx := c.Request.Context()
	before, err := mongo.UpdateProductStock(ctx, id, *req.StockQuantity)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found",
				global.FieldError("id", "No product with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update stock", nil))
		return
	}

	entry := &models.InventoryLog{
		ProductID:      id,
		QuantityChange: *req.StockQuantity - before.StockQuantity,
		Reason:         req.Reason,
		CreatedBy:      adminEmail(c),
	}
	if _, err := mongo.CreateInventoryLog(ctx, entry); err != nil {
		log.Printf("Warning: failed to record inventory log for product %d: %v", id, err)
	}

	after := *before
	after.StockQuantity = *req.StockQuantity
	if err := redis.CacheProduct(ctx, &after); err != nil {
		log.Printf("Warning: failed to cache product %d: %v", id, err)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"product": after,
		"log":     entry,
	}))
}

func AdminGetInventoryLogs(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	logs, err := mongo.GetInventoryLogsByProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch inventory logs", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(logs))
}

// --- Orders ---

func AdminGetOrders(c *gin.Context) {
	orders, err := mongo.GetAllOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch orders", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusConfirmed:  true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

func AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("status", "Status is required", "required")))
		return
	}
	if !validOrderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid order status",
			global.FieldError("status", "Unknown order status", "invalid")))
		return
	}

	order, err := mongo.UpdateOrderStatus(c.Request.Context(), id, req.Status, req.Comment)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found",
				global.FieldError("id", "No order with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update order status", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

var validPaymentStatuses = map[string]bool{
	models.PaymentStatusPending:   true,
	models.PaymentStatusCompleted: true,
	models.PaymentStatusFailed:    true,
	models.PaymentStatusRefunded:  true,
}

// AdminUpdateOrderPaymentStatus overrides the payment status. Marking an
// order completed grants any membership plans recorded in its notes, the
// same as a successful gateway callback would.
func AdminUpdateOrderPaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("payment_status", "Payment status is required", "required")))
		return
	}
	if !validPaymentStatuses[req.PaymentStatus] {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid payment status",
			global.FieldError("payment_status", "Unknown payment status", "invalid")))
		return
	}

	ctx := c.Request.Context()
	order, err := mongo.GetOrderByID(ctx, id)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Order not found",
				global.FieldError("id", "No order with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch order", nil))
		return
	}
	alreadyPaid := order.HasBeenPaid()

	updated, err := mongo.UpdateOrderPaymentStatus(ctx, id, req.PaymentStatus)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update payment status", nil))
		return
	}

	if req.PaymentStatus == models.PaymentStatusCompleted && !alreadyPaid {
		mongo.ProcessOrderMemberships(ctx, updated)
	}

	c.JSON(http.StatusOK, global.SuccessResponse(updated))
}

// --- Memberships ---

func AdminGetMemberships(c *gin.Context) {
	plans, err := mongo.GetAllMemberships(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch memberships", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(plans))
}

func AdminCreateMembership(c *gin.Context) {
	var req struct {
		Name         string   `json:"name" binding:"required"`
		Description  string   `json:"description"`
		Price        float64  `json:"price" binding:"required,gt=0"`
		DurationDays int      `json:"duration_days" binding:"required,gt=0"`
		Benefits     []string `json:"benefits"`
		Icon         string   `json:"icon"`
		Color        string   `json:"color"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	plan := &models.Membership{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Benefits:     req.Benefits,
		Icon:         req.Icon,
		Color:        req.Color,
		IsActive:     true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	created, err := mongo.CreateMembership(c.Request.Context(), plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create membership", nil))
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(created))
}

func AdminUpdateMembership(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}
	for _, field := range protectedUpdateFields {
		delete(updates, field)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updatable fields provided",
			global.FieldError("request", "Payload contains no updatable fields", "empty_update")))
		return
	}

	plan, err := mongo.UpdateMembership(c.Request.Context(), id, updates)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Membership not found",
				global.FieldError("id", "No membership with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update membership", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(plan))
}

func AdminDeleteMembership(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := mongo.DeleteMembership(c.Request.Context(), id); err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Membership not found",
				global.FieldError("id", "No membership with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete membership", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]bool{"deleted": true}))
}

// AdminGetSubscribers lists every purchased membership instance across users.
func AdminGetSubscribers(c *gin.Context) {
	subscribers, err := mongo.GetAllSubscribers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch subscribers", nil))
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(subscribers))
	for _, um := range subscribers {
		out = append(out, gin.H{
			"membership": um,
			"state":      um.State(now),
		})
	}
	c.JSON(http.StatusOK, global.SuccessResponse(out))
}

// AdminReconcileUserMemberships forces the activation sweep for one user and
// returns the post-sweep instance list.
func AdminReconcileUserMemberships(c *gin.Context) {
	userID := c.Param("id")
	ctx := c.Request.Context()

	if err := mongo.ActivateEligibleMemberships(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reconcile memberships", nil))
		return
	}

	instances, err := mongo.GetUserMemberships(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch memberships", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(instances))
}

// --- Payment options ---

func AdminGetPaymentOptions(c *gin.Context) {
	options, err := mongo.GetPaymentOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch payment options", nil))
		return
	}

	masked := make([]models.PaymentOption, len(options))
	for i, option := range options {
		masked[i] = option.Masked()
	}
	c.JSON(http.StatusOK, global.SuccessResponse(masked))
}

func AdminUpsertPaymentOption(c *gin.Context) {
	provider := c.Param("provider")
	if !models.IsValidProvider(provider) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid payment provider",
			global.FieldError("provider", "Unknown payment provider", "invalid")))
		return
	}

	var option models.PaymentOption
	if err := c.ShouldBindJSON(&option); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}
	option.Provider = provider

	saved, err := mongo.UpsertPaymentOption(c.Request.Context(), &option)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to save payment option", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(saved.Masked()))
}

func AdminDeletePaymentOption(c *gin.Context) {
	provider := c.Param("provider")

	if err := mongo.DeletePaymentOption(c.Request.Context(), provider); err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Payment option not found",
				global.FieldError("provider", "No payment option for this provider", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete payment option", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]bool{"deleted": true}))
}

// --- Reports ---

// AdminSalesReport aggregates paid orders for the requested window
// (default: last 30 days) and, when the AI service is configured, attaches
// generated insights.
func AdminSalesReport(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid date range",
				global.FieldError("from", "Use YYYY-MM-DD", "invalid")))
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid date range",
				global.FieldError("to", "Use YYYY-MM-DD", "invalid")))
			return
		}
		// Inclusive end of day.
		to = parsed.AddDate(0, 0, 1)
	}

	report, err := ai.GenerateSalesReport(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate sales report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func AdminMembershipReport(c *gin.Context) {
	report, err := ai.GenerateMembershipReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate membership report", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
