package database

import (
	"time"

	"pocket/internal/models"

	"gorm.io/gorm"
)

// staleClaimAfter is how long a claimed occurrence may sit before a later
// sweep treats it as abandoned (crash between claim and finalize) and takes
// it over. Within this window a duplicate push is possible but a reminder is
// never lost.
const staleClaimAfter = 5 * time.Minute

// OccurrenceStore is the sweep's narrow contract over reminder occurrences
type OccurrenceStore struct {
	db *gorm.DB
}

// NewOccurrenceStore creates an occurrence store backed by the given DB
func NewOccurrenceStore(db *gorm.DB) *OccurrenceStore {
	return &OccurrenceStore{db: db}
}

// FindDue returns up to limit occurrences that are due at now, oldest first.
// Stale claims count as due again so abandoned batches get retried.
func (s *OccurrenceStore) FindDue(now time.Time, limit int) ([]models.DueOccurrence, error) {
	var due []models.DueOccurrence

	err := s.db.Model(&models.ReminderOccurrence{}).
		Select("reminder_occurrence.id, reminder_occurrence.scheduled_at, reminder.title").
		Joins("JOIN reminder ON reminder.id = reminder_occurrence.reminder_id").
		Where("(reminder_occurrence.status = ? OR (reminder_occurrence.status = ? AND reminder_occurrence.claimed_at < ?)) AND reminder_occurrence.scheduled_at <= ?",
			models.OccurrenceStatusPending, models.OccurrenceStatusClaimed, now.Add(-staleClaimAfter), now).
		Order("reminder_occurrence.scheduled_at asc").
		Limit(limit).
		Scan(&due).Error
	if err != nil {
		return nil, err
	}

	return due, nil
}

// Claim conditionally transitions the given occurrences to claimed and
// returns the IDs this caller actually owns. Rows already claimed by a
// concurrent sweep (and not stale) are left alone and not returned.
func (s *OccurrenceStore) Claim(ids []string, now time.Time) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var owned []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ReminderOccurrence{}).
			Where("id IN ? AND (status = ? OR (status = ? AND claimed_at < ?))",
				ids, models.OccurrenceStatusPending, models.OccurrenceStatusClaimed, now.Add(-staleClaimAfter)).
			Updates(map[string]interface{}{
				"status":     models.OccurrenceStatusClaimed,
				"claimed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}

		return tx.Model(&models.ReminderOccurrence{}).
			Where("id IN ? AND status = ? AND claimed_at = ?", ids, models.OccurrenceStatusClaimed, now).
			Pluck("id", &owned).Error
	})
	if err != nil {
		return nil, err
	}

	return owned, nil
}

// Release puts claimed occurrences back to pending so the next sweep retries
// them. Used when dispatch fails or no devices are registered.
func (s *OccurrenceStore) Release(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Model(&models.ReminderOccurrence{}).
		Where("id IN ? AND status = ?", ids, models.OccurrenceStatusClaimed).
		Updates(map[string]interface{}{
			"status":     models.OccurrenceStatusPending,
			"claimed_at": nil,
		}).Error
}

// MarkSent commits delivery for the whole batch in one bulk update, so a
// crash can never leave the batch with mixed sent state.
func (s *OccurrenceStore) MarkSent(ids []string, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Model(&models.ReminderOccurrence{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     models.OccurrenceStatusSent,
			"sent_at":    sentAt,
			"claimed_at": nil,
		}).Error
}
