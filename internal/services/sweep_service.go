package services

import (
	"fmt"
	"log"
	"time"

	"pocket/internal/models"
)

// DefaultBatchLimit bounds how many occurrences one sweep run processes
const DefaultBatchLimit = 100

// OccurrenceStore is the sweep's contract over scheduled occurrences
type OccurrenceStore interface {
	FindDue(now time.Time, limit int) ([]models.DueOccurrence, error)
	Claim(ids []string, now time.Time) ([]string, error)
	Release(ids []string) error
	MarkSent(ids []string, sentAt time.Time) error
}

// DeviceStore lists the registered push subscription identifiers
type DeviceStore interface {
	ListPlayerIDs() ([]string, error)
}

// Dispatcher sends one notification to a set of devices in a single call
type Dispatcher interface {
	Dispatch(playerIDs []string, title, body, linkURL string) error
}

// SweepService delivers due reminder occurrences. Each Run is one complete
// batch: select due work, claim it, fan one notification out to every
// device, and commit delivery state only after the dispatch call succeeded.
// It holds no internal timers - an external scheduler triggers Run.
type SweepService struct {
	occurrences OccurrenceStore
	devices     DeviceStore
	dispatcher  Dispatcher
	batchLimit  int
	linkURL     string
}

// NewSweepService creates a sweep over the given stores and dispatcher
func NewSweepService(occurrences OccurrenceStore, devices DeviceStore, dispatcher Dispatcher, linkURL string) *SweepService {
	return &SweepService{
		occurrences: occurrences,
		devices:     devices,
		dispatcher:  dispatcher,
		batchLimit:  DefaultBatchLimit,
		linkURL:     linkURL,
	}
}

// Run executes one sweep at the given instant. Soft outcomes (nothing due,
// no devices, dispatch rejected) come back inside the result; an error is
// returned only when the store itself fails.
func (s *SweepService) Run(now time.Time) (models.SweepResult, error) {
	result := models.SweepResult{Errors: []models.SweepError{}}

	due, err := s.occurrences.FindDue(now, s.batchLimit)
	if err != nil {
		return result, fmt.Errorf("failed to query due occurrences: %w", err)
	}
	if len(due) == 0 {
		return result, nil
	}

	ids := make([]string, len(due))
	for i, occ := range due {
		ids[i] = occ.ID
	}

	// Claim before dispatching so an overlapping trigger can't double-send
	// the same batch. Whatever we couldn't claim belongs to another run.
	owned, err := s.occurrences.Claim(ids, now)
	if err != nil {
		return result, fmt.Errorf("failed to claim due occurrences: %w", err)
	}
	if len(owned) == 0 {
		log.Printf("Warning: Due batch of %d already claimed by a concurrent sweep", len(due))
		return result, nil
	}

	ownedSet := make(map[string]bool, len(owned))
	for _, id := range owned {
		ownedSet[id] = true
	}
	batch := due[:0]
	for _, occ := range due {
		if ownedSet[occ.ID] {
			batch = append(batch, occ)
		}
	}
	result.Due = len(batch)

	playerIDs, err := s.devices.ListPlayerIDs()
	if err != nil {
		s.release(owned)
		return result, fmt.Errorf("failed to list devices: %w", err)
	}
	targets := playerIDs[:0]
	for _, id := range playerIDs {
		if id != "" {
			targets = append(targets, id)
		}
	}
	result.Devices = len(targets)

	if len(targets) == 0 {
		// Nothing to deliver to; leave the batch pending for the next run
		s.release(owned)
		result.Errors = append(result.Errors, models.SweepError{
			Code:    models.SweepErrNoDevices,
			Message: "no devices registered",
		})
		return result, nil
	}

	// One notification per sweep covers the whole batch
	title := "Reminder"
	body := batch[0].Title
	if len(batch) > 1 {
		body = fmt.Sprintf("You have %d due reminders", len(batch))
	}

	result.Attempted = len(batch)
	if err := s.dispatcher.Dispatch(targets, title, body, s.linkURL); err != nil {
		s.release(owned)
		log.Printf("Error: Dispatch failed for %d due occurrences: %v", len(batch), err)
		result.Errors = append(result.Errors, models.SweepError{
			Code:    models.SweepErrDispatchFailed,
			Message: err.Error(),
		})
		return result, nil
	}

	// Dispatch confirmed; commit the whole batch in one atomic update
	if err := s.occurrences.MarkSent(owned, now); err != nil {
		// The push went out but the commit failed. The batch stays claimed
		// and is retried after the stale-claim window, which may duplicate
		// the push - preferable to silently losing the reminders.
		log.Printf("Error: Dispatched %d occurrences but failed to mark them sent: %v", len(owned), err)
		return result, fmt.Errorf("failed to mark occurrences sent: %w", err)
	}

	result.Sent = len(batch)
	log.Printf("Sweep delivered %d due reminders to %d devices", result.Sent, result.Devices)
	return result, nil
}

func (s *SweepService) release(ids []string) {
	if err := s.occurrences.Release(ids); err != nil {
		log.Printf("Error: Failed to release %d claimed occurrences: %v", len(ids), err)
	}
}
