package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/mongo"
)

// Register creates a customer profile. Email uniqueness is enforced by the
// unique index; a duplicate surfaces as 409.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	profile, err := mongo.CreateProfile(c.Request.Context(), req.ToProfile(string(hashed)))
	if err != nil {
		if errors.Is(err, mongo.ErrEmailExists) {
			c.JSON(http.StatusConflict, global.ErrorResponse("An account with this email already exists",
				global.FieldError("email", "Email is already registered", "duplicate")))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(profile))
}

// Login checks credentials. Unknown email and wrong password produce the
// same response so the endpoint does not leak which emails exist.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data",
			global.FieldError("request", err.Error(), "validation_error")))
		return
	}

	profile, err := mongo.GetProfileByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if mongo.IsNoDocuments(err) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to sign in", nil))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid email or password", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(profile))
}
