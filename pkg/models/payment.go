package models

import (
	"fmt"
	"time"
)

// Payment providers
const (
	ProviderPayU   = "payu"
	ProviderPayPal = "paypal"
	ProviderPaytm  = "paytm"
)

func IsValidProvider(provider string) bool {
	switch provider {
	case ProviderPayU, ProviderPayPal, ProviderPaytm:
		return true
	}
	return false
}

// PaymentTransaction records one payment attempt against an order.
type PaymentTransaction struct {
	ID            int64             `json:"id" bson:"id"`
	TransactionID string            `json:"transaction_id" bson:"transaction_id"`
	OrderID       int64             `json:"order_id" bson:"order_id"`
	Amount        float64           `json:"amount" bson:"amount"`
	Email         string            `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string            `json:"phone,omitempty" bson:"phone,omitempty"`
	Hash          string            `json:"hash,omitempty" bson:"hash,omitempty"`
	Status        string            `json:"status" bson:"status"`
	Provider      string            `json:"provider,omitempty" bson:"provider,omitempty"`
	Simulated     bool              `json:"simulated,omitempty" bson:"simulated,omitempty"`
	PayuResponse  map[string]string `json:"payu_response,omitempty" bson:"payu_response,omitempty"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}

// PaymentOption holds admin-configured provider credentials.
type PaymentOption struct {
	ID               int64             `json:"id" bson:"id"`
	Provider         string            `json:"provider" bson:"provider" validate:"required,oneof=payu paypal paytm"`
	IsEnabled        bool              `json:"is_enabled" bson:"is_enabled"`
	MerchantKey      string            `json:"merchant_key" bson:"merchant_key"`
	MerchantSalt     string            `json:"merchant_salt,omitempty" bson:"merchant_salt,omitempty"`
	APIKey           string            `json:"api_key,omitempty" bson:"api_key,omitempty"`
	APISecret        string            `json:"api_secret,omitempty" bson:"api_secret,omitempty"`
	WebhookSecret    string            `json:"webhook_secret,omitempty" bson:"webhook_secret,omitempty"`
	AdditionalConfig map[string]string `json:"additional_config,omitempty" bson:"additional_config,omitempty"`
	CreatedAt        time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" bson:"updated_at"`
}

// Masked returns a copy safe for list responses: secrets blanked, only the
// tail of the merchant key kept for identification.
func (po PaymentOption) Masked() PaymentOption {
	masked := po
	if len(masked.MerchantKey) > 4 {
		masked.MerchantKey = "****" + masked.MerchantKey[len(masked.MerchantKey)-4:]
	}
	masked.MerchantSalt = ""
	masked.APISecret = ""
	masked.WebhookSecret = ""
	return masked
}

// NewTransactionID formats a provider transaction id for an order. Simulated
// payments use the SIM_ prefix so they are distinguishable in the ledger.
func NewTransactionID(orderID int64, simulated bool) string {
	prefix := "TXN"
	if simulated {
		prefix = "SIM"
	}
	return fmt.Sprintf("%s_%d_%d", prefix, orderID, time.Now().UnixMilli())
}
