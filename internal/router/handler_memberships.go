package router

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"jpskating.in/store-api/pkg/global"
	"jpskating.in/store-api/pkg/mongo"
)

// GetMemberships lists the plans shown on the membership page.
func GetMemberships(c *gin.Context) {
	plans, err := mongo.GetActiveMemberships(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch memberships", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(plans))
}

// GetUserMemberships runs the activation sweep and then lists the user's
// membership instances with their wall-clock state attached.
func GetUserMemberships(c *gin.Context) {
	userID := c.Param("id")
	ctx := c.Request.Context()

	if err := mongo.ActivateEligibleMemberships(ctx, userID); err != nil {
		log.Printf("Warning: membership activation sweep failed for user %s: %v", userID, err)
	}

	instances, err := mongo.GetUserMemberships(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch memberships", nil))
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(instances))
	for _, um := range instances {
		out = append(out, gin.H{
			"membership": um,
			"state":      um.State(now),
		})
	}

	c.JSON(http.StatusOK, global.SuccessResponse(out))
}
