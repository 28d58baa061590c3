package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/mongo"
	"jpskating.in/store-api/pkg/payu"
)

// Default PayU configuration, used when no payment option row is configured.
func defaultPayUKey() string  { return global.GetEnvOrDefault("PAYU_KEY", "YOUR_PAYU_KEY") }
func defaultPayUSalt() string { return global.GetEnvOrDefault("PAYU_SALT", "YOUR_PAYU_SALT") }
func defaultPayUBaseURL() string {
	return global.GetEnvOrDefault("PAYU_BASE_URL", "https://secure.payu.in")
}

var ErrHashMismatch = errors.New("hash verification failed")

type InitiateRequest struct {
	OrderID       int64  `json:"order_id" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zipcode       string `json:"zipcode"`
	PaymentMethod string `json:"payment_method"`
	SuccessURL    string `json:"success_url"`
	FailureURL    string `json:"failure_url"`
}

// InitiateResult carries the redirect payload the storefront posts to the
// provider. The provider calls back with a signed response; this service
// never talks to the provider directly.
type InitiateResult struct {
	TransactionID string            `json:"txnid"`
	FormData      map[string]string `json:"form_data"`
	PaymentURL    string            `json:"payment_url"`
	Provider      string            `json:"provider"`
}

type VerifyRequest struct {
	TransactionID string  `json:"txnid" binding:"required"`
	Status        string  `json:"status" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	ProductInfo   string  `json:"productinfo"`
	FirstName     string  `json:"firstname"`
	Email         string  `json:"email"`
	Hash          string  `json:"hash" binding:"required"`
}

// credentials resolves merchant credentials for a provider, falling back to
// the env defaults when no payment option row exists (backward compatible
// with deployments configured purely through the environment).
func credentials(ctx context.Context, provider string) (key, salt, baseURL string) {
	key, salt, baseURL = defaultPayUKey(), defaultPayUSalt(), defaultPayUBaseURL()
	if provider == "" {
		provider = models.ProviderPayU
	}

	option, err := mongo.GetPaymentOptionByProvider(ctx, provider)
	if err != nil {
		log.Printf("Warning: payment option %q not configured, using defaults: %v", provider, err)
		return key, salt, baseURL
	}

	switch provider {
	case models.ProviderPayU:
		key = option.MerchantKey
		if option.MerchantSalt != "" {
			salt = option.MerchantSalt
		}
	case models.ProviderPayPal:
		key = option.APIKey
		salt = option.APISecret
		baseURL = "https://www.paypal.com/cgi-bin/webscr"
	case models.ProviderPaytm:
		key = option.MerchantKey
		salt = option.MerchantSalt
		baseURL = "https://securegw.paytm.in/theia/api/v1/initiateTransaction"
	}
	return key, salt, baseURL
}

// Initiate creates a provider transaction for an order: signs the request,
// records the transaction as initiated and returns the redirect form data.
func Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResult, error) {
	order, err := mongo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	provider := req.PaymentMethod
	if provider == "" {
		provider = models.ProviderPayU
	}
	key, salt, baseURL := credentials(ctx, provider)

	txnid := models.NewTransactionID(order.ID, false)
	productinfo := fmt.Sprintf("Order #%d", order.ID)
	hash := payu.GenerateHash(txnid, order.TotalAmount, productinfo, req.FullName, req.Email, key, salt)

	formData := map[string]string{
		"key":              key,
		"txnid":            txnid,
		"amount":           payu.FormatAmount(order.TotalAmount),
		"productinfo":      productinfo,
		"firstname":        req.FullName,
		"email":            req.Email,
		"phone":            req.Phone,
		"address1":         req.Address,
		"city":             req.City,
		"state":            req.State,
		"zipcode":          req.Zipcode,
		"hash":             hash,
		"surl":             req.SuccessURL,
		"furl":             req.FailureURL,
		"service_provider": "payu_paisa",
	}

	txn := &models.PaymentTransaction{
		TransactionID: txnid,
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		Email:         req.Email,
		Phone:         req.Phone,
		Hash:          hash,
		Status:        "initiated",
		Provider:      provider,
	}
	if _, err := mongo.CreatePaymentTransaction(ctx, txn); err != nil {
		return nil, err
	}

	return &InitiateResult{
		TransactionID: txnid,
		FormData:      formData,
		PaymentURL:    baseURL + "/_payment",
		Provider:      provider,
	}, nil
}

// Verify checks the provider callback signature, records the outcome and, on
// success, marks the order paid and materializes any memberships referenced
// in its notes.
func Verify(ctx context.Context, req *VerifyRequest) (*models.Order, error) {
	txn, err := mongo.GetPaymentTransaction(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	key, salt, _ := credentials(ctx, txn.Provider)
	if !payu.VerifyHash(req.Hash, req.TransactionID, req.Amount, req.ProductInfo, req.FirstName, req.Email, key, salt) {
		return nil, ErrHashMismatch
	}

	response := map[string]string{
		"status":      req.Status,
		"amount":      payu.FormatAmount(req.Amount),
		"productinfo": req.ProductInfo,
		"firstname":   req.FirstName,
		"email":       req.Email,
		"hash":        req.Hash,
	}
	if err := mongo.UpdatePaymentTransactionStatus(ctx, req.TransactionID, req.Status, response); err != nil {
		return nil, err
	}

	if req.Status != "success" {
		order, err := mongo.UpdateOrderPaymentStatus(ctx, txn.OrderID, models.PaymentStatusFailed)
		if err != nil {
			return nil, err
		}
		return order, nil
	}

	order, err := mongo.MarkOrderPaid(ctx, txn.OrderID, req.TransactionID)
	if err != nil {
		return nil, err
	}

	mongo.ProcessOrderMemberships(ctx, order)
	return order, nil
}

// SimulateSuccess is the demo-mode payment path: it records a simulated
// transaction, marks the order paid and runs membership reconciliation,
// exactly as a successful provider callback would.
func SimulateSuccess(ctx context.Context, orderID int64, amount float64, email string) (string, *models.Order, error) {
	txnid := models.NewTransactionID(orderID, true)

	txn := &models.PaymentTransaction{
		TransactionID: txnid,
		OrderID:       orderID,
		Amount:        amount,
		Email:         email,
		Status:        "success",
		Provider:      models.ProviderPayU,
		Simulated:     true,
	}
	if _, err := mongo.CreatePaymentTransaction(ctx, txn); err != nil {
		return "", nil, err
	}

	order, err := mongo.MarkOrderPaid(ctx, orderID, txnid)
	if err != nil {
		return "", nil, err
	}

	mongo.ProcessOrderMemberships(ctx, order)
	return txnid, order, nil
}
