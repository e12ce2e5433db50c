package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a simple todo item
type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:120;not null" json:"title"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook assigns an ID if one wasn't provided
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// CreateTaskRequest represents the data needed to create a new task
type CreateTaskRequest struct {
	Title string `json:"title" binding:"required,max=120"`
}

// UpdateTaskRequest toggles a task's done state
type UpdateTaskRequest struct {
	ID   string `json:"id" binding:"required"`
	Done bool   `json:"done"`
}
