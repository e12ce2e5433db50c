package handlers

import (
	"fmt"
	"log"
	"net/http"

	"pocket/internal/database"
	"pocket/internal/models"
	"pocket/internal/utils"

	"github.com/gin-gonic/gin"
)

// RegisterDevice upserts a push subscription keyed by player ID
func RegisterDevice(c *gin.Context) {
	var request models.RegisterDeviceRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	devices := database.NewDeviceStore(database.GetDB())
	device, err := devices.Upsert(request.PlayerID, request.Timezone)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to register device", err)
		return
	}

	log.Printf("Registered device %s (%s) from %s", device.PlayerID, device.Timezone, utils.GetRealClientIP(c))
	c.JSON(http.StatusCreated, gin.H{"device": device})
}
