package ports

import (
	"context"
	"time"
)

// ReminderInput is the DTO handed from the patient service to the reminder
// pipeline when a medication with reminders is appended.
type ReminderInput struct {
	PatientID  string
	Medication string
	RemindAt   time.Time
}

// ReminderService records scheduled medication reminders.
type ReminderService interface {
	Process(ctx context.Context, in ReminderInput) error
}
