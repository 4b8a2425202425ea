package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func createGuestSessionHandler(svc SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ownerID, err := svc.Issue(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"token":     token,
			"ownerId":   ownerID,
			"expiresIn": svc.TTLSeconds(),
		})
	}
}
