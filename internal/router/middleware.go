package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/mongo"
)

// AdminMiddleware gates the back-office routes: the X-Admin-Email header
// must resolve to a profile with the admin role.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("X-Admin-Email")
		if email == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Admin email required",
				global.FieldError("X-Admin-Email", "X-Admin-Email header is required", "required")))
			c.Abort()
			return
		}

		profile, err := mongo.GetProfileByEmail(c.Request.Context(), email)
		if err != nil || !profile.IsAdmin() {
			c.JSON(http.StatusForbidden, global.ErrorResponse("Admin access required", nil))
			c.Abort()
			return
		}

		c.Set("admin", profile)
		c.Next()
	}
}
