package handlers

import (
	"log"
	"net/http"
	"time"

	"pocket/internal/auth"
	"pocket/internal/config"
	"pocket/internal/models"
	"pocket/internal/utils"

	"github.com/gin-gonic/gin"
)

// Sweeper runs one due-reminder sweep at the given instant
type Sweeper interface {
	Run(now time.Time) (models.SweepResult, error)
}

// RunDueSweep is the externally-triggered sweep endpoint. The caller (cron,
// uptime monitor) authenticates with the cron secret and gets back per-run
// counts. A zero-due or no-devices run is still a 200 - "nothing to do" and
// "failed to do" are different outcomes.
func RunDueSweep(cfg *config.Config, sweeper Sweeper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.CheckCronSecret(c, cfg.CronSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorised"})
			return
		}

		if !cfg.PushConfigured() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfigured: OneSignal keys missing"})
			return
		}

		now := time.Now().UTC()
		result, err := sweeper.Run(now)
		if err != nil {
			handleError(c, http.StatusInternalServerError, "Sweep failed", err)
			return
		}

		log.Printf("Sweep triggered from %s: due=%d devices=%d sent=%d",
			utils.GetRealClientIP(c), result.Due, result.Devices, result.Sent)

		// A failed dispatch still reports full counts, but with a gateway
		// status so the trigger's monitoring can alert on it
		status := http.StatusOK
		for _, e := range result.Errors {
			if e.Code == models.SweepErrDispatchFailed {
				status = http.StatusBadGateway
			}
		}

		c.JSON(status, result)
	}
}
