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
)

func putProfile(t *testing.T, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.PUT("/api/users/:id/profile", UpdateUserProfile)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/users/user-1/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

// Payload filtering runs before any datastore access: a payload that only
// names protected fields is rejected outright, never written.
func TestUpdateProfileStripsProtectedFields(t *testing.T) {
	rec := putProfile(t, map[string]interface{}{
		"id":       "other-user",
		"email":    "new@example.com",
		"password": "plaintext",
		"role":     "admin",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp global.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "empty_update", resp.Errors[0].Code)
}

func TestUpdateProfileRejectsEmptyPayload(t *testing.T) {
	rec := putProfile(t, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
