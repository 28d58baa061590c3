package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
)

func checkoutTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/checkout", Checkout)
	return engine
}

func postCheckout(t *testing.T, engine *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

// Form validation runs before the cart or any datastore is touched, so these
// requests must fail fast without a live Redis or Mongo behind the handler.
func TestCheckoutRejectsMissingFields(t *testing.T) {
	engine := checkoutTestEngine()

	rec := postCheckout(t, engine, models.CheckoutRequest{
		SessionID: "session-1",
		UserID:    "user-1",
		Email:     "jane@example.com",
		Phone:     "5551234",
		Name:      "Jane Doe",
		Address:   "1 Rink Way",
		City:      "", // missing
		State:     "ON",
		Zip:       "K1A0B1",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp global.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "city", resp.Errors[0].Field)
	assert.Equal(t, "required", resp.Errors[0].Code)
}

// A submission without a signed-in user must never reach order creation:
// an order with no user id could take payment for a membership that then
// has no account to attach to.
func TestCheckoutRejectsMissingUserID(t *testing.T) {
	engine := checkoutTestEngine()

	rec := postCheckout(t, engine, models.CheckoutRequest{
		SessionID: "session-1",
		Email:     "jane@example.com",
		Phone:     "5551234",
		Name:      "Jane Doe",
		Address:   "1 Rink Way",
		City:      "Ottawa",
		State:     "ON",
		Zip:       "K1A0B1",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp global.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "user_id", resp.Errors[0].Field)
	assert.Equal(t, "required", resp.Errors[0].Code)
}

func TestCheckoutReportsEveryMissingField(t *testing.T) {
	engine := checkoutTestEngine()

	rec := postCheckout(t, engine, models.CheckoutRequest{})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp global.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	fields := make([]string, len(resp.Errors))
	for i, fe := range resp.Errors {
		fields[i] = fe.Field
	}
	assert.ElementsMatch(t,
		[]string{"session_id", "user_id", "email", "phone", "name", "address", "city", "state", "zip"},
		fields)
}

func TestCheckoutRejectsMalformedEmail(t *testing.T) {
	engine := checkoutTestEngine()

	rec := postCheckout(t, engine, models.CheckoutRequest{
		SessionID: "session-1",
		UserID:    "user-1",
		Email:     "not-an-email",
		Phone:     "5551234",
		Name:      "Jane Doe",
		Address:   "1 Rink Way",
		City:      "Ottawa",
		State:     "ON",
		Zip:       "K1A0B1",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp global.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email", resp.Errors[0].Field)
	assert.Equal(t, "invalid", resp.Errors[0].Code)
}
