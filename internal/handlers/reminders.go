package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"pocket/internal/database"
	"pocket/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateReminder creates a reminder and fans its times out into one
// occurrence per instant
func CreateReminder(c *gin.Context) {
	var request models.CreateReminderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must not be empty"})
		return
	}

	reminder := models.Reminder{
		Title: title,
		Notes: strings.TrimSpace(request.Notes),
	}
	for _, t := range request.Times {
		if t.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time in times"})
			return
		}
		reminder.Occurrences = append(reminder.Occurrences, models.ReminderOccurrence{
			ScheduledAt: t.UTC(),
			Status:      models.OccurrenceStatusPending,
		})
	}

	db := database.GetDB()
	if err := db.Create(&reminder).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create reminder", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

// GetReminders lists all reminders newest-first, each with its occurrences
// in scheduled order
func GetReminders(c *gin.Context) {
	db := database.GetDB()

	var reminders []models.Reminder
	err := db.Preload("Occurrences", func(db *gorm.DB) *gorm.DB {
		return db.Order("reminder_occurrence.scheduled_at asc")
	}).Order("created_at desc").Find(&reminders).Error
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// DeleteReminder removes a reminder and all of its occurrences
func DeleteReminder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	db := database.GetDB()

	// Delete occurrences first in case the FK cascade wasn't created
	// (AutoMigrate on an existing table won't add it)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reminder_id = ?", id).Delete(&models.ReminderOccurrence{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Reminder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete reminder", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
