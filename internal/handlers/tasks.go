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

// CreateTask creates a new todo item
func CreateTask(c *gin.Context) {
	var request models.CreateTaskRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must not be empty"})
		return
	}

	task := models.Task{Title: title}
	db := database.GetDB()
	if err := db.Create(&task).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create task", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTasks lists all tasks newest-first
func GetTasks(c *gin.Context) {
	db := database.GetDB()

	var tasks []models.Task
	if err := db.Order("created_at desc").Find(&tasks).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateTask sets a task's done state
func UpdateTask(c *gin.Context) {
	var request models.UpdateTaskRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	db := database.GetDB()

	var task models.Task
	if err := db.Where("id = ?", request.ID).First(&task).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to load task", err)
		return
	}

	if err := db.Model(&task).Update("done", request.Done).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask removes a task
func DeleteTask(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		id = c.Param("id")
	}
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	db := database.GetDB()
	res := db.Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete task", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
