package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/mongo"
)

// GetUserProfile returns the account page profile by user id.
func GetUserProfile(c *gin.Context) {
	profile, err := mongo.GetProfileByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Profile not found",
				global.FieldError("id", "No profile with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch profile", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(profile))
}

// Fields the account page can never change through this endpoint; email,
// password, and role have their own flows.
var protectedProfileFields = []string{"id", "_id", "email", "password", "role", "created_at", "updated_at"}

// UpdateUserProfile applies account page edits (full name, avatar).
func UpdateUserProfile(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}
	for _, field := range protectedProfileFields {
		delete(updates, field)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updatable fields provided",
			global.FieldError("request", "Payload contains no updatable fields", "empty_update")))
		return
	}

	profile, err := mongo.UpdateProfile(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Profile not found",
				global.FieldError("id", "No profile with this id", "not_found")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update profile", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(profile))
}
