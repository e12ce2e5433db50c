package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Occurrence delivery states
const (
	OccurrenceStatusPending = "pending"
	OccurrenceStatusClaimed = "claimed"
	OccurrenceStatusSent    = "sent"
)

// MaxReminderTimes caps how many occurrences a single reminder may fan out into
const MaxReminderTimes = 50

// Reminder represents a user-authored reminder with one or more scheduled times
type Reminder struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	Title       string               `gorm:"size:120;not null" json:"title"`
	Notes       string               `gorm:"size:500" json:"notes,omitempty"`
	Occurrences []ReminderOccurrence `gorm:"foreignKey:ReminderID;constraint:OnDelete:CASCADE" json:"occurrences"`
	CreatedAt   time.Time            `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook assigns an ID if one wasn't provided
func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ReminderOccurrence is one concrete scheduled instant derived from a reminder.
// Status only ever moves forward: pending -> claimed -> sent.
type ReminderOccurrence struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ReminderID  string     `gorm:"size:36;not null;index" json:"reminder_id"`
	ScheduledAt time.Time  `gorm:"not null;index:idx_occurrence_due,priority:2" json:"scheduled_at"`
	Status      string     `gorm:"size:10;not null;default:pending;index:idx_occurrence_due,priority:1" json:"status"`
	ClaimedAt   *time.Time `json:"-"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}

// BeforeCreate hook assigns an ID if one wasn't provided
func (o *ReminderOccurrence) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OccurrenceStatusPending
	}
	return nil
}

// DueOccurrence is the slice of an occurrence the sweep needs: identity,
// when it was due, and the parent reminder's title for the notification body
type DueOccurrence struct {
	ID          string    `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Title       string    `json:"title"`
}

// CreateReminderRequest represents the data needed to create a new reminder
type CreateReminderRequest struct {
	Title string      `json:"title" binding:"required,max=120"`
	Notes string      `json:"notes" binding:"omitempty,max=500"`
	Times []time.Time `json:"times" binding:"required,min=1,max=50"`
}
