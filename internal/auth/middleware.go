package auth

import (
	"crypto/subtle"
	"net/http"

	"pocket/internal/config"

	"github.com/gin-gonic/gin"
)

// AppToken gates the client CRUD API behind the shared application token.
// The token travels in the X-App-Token header. This is deliberately a
// separate credential from the cron secret so the sweep trigger can be
// rotated without touching clients.
func AppToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AppToken == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured: app token missing"})
			c.Abort()
			return
		}

		got := c.GetHeader("X-App-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.AppToken)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorised"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckCronSecret verifies the sweep trigger credential, taken from the
// x-cron-secret header or the secret query parameter. An unconfigured
// secret rejects everything - the trigger endpoint is never open.
func CheckCronSecret(c *gin.Context, configured string) bool {
	got := c.GetHeader("X-Cron-Secret")
	if got == "" {
		got = c.Query("secret")
	}

	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(configured)) == 1
}
