package ports

import (
	"context"

	"github.com/caresync/patient-records/internal/core/domain"
)

// PatientRepository defines persistence operations for the patient aggregate.
//
// PushMedication and PushMoodLog are atomic read-modify-write operations on a
// single patient document: concurrent appends against the same patient must
// all be retained (in some order), and appends against different patients
// must not contend with each other.
type PatientRepository interface {
	Insert(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	// FindAll returns every patient in creation order.
	FindAll(ctx context.Context) ([]*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	// PushMedication appends one medication and returns the updated patient.
	PushMedication(ctx context.Context, id string, m domain.Medication) (*domain.Patient, error)
	// PushMoodLog appends one mood log entry and returns the updated patient.
	PushMoodLog(ctx context.Context, id string, entry string) (*domain.Patient, error)
}

// ReminderRepository persists reminder audit events.
type ReminderRepository interface {
	Insert(ctx context.Context, ev *domain.ReminderEvent) error
}
