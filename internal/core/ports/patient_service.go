package ports

import (
	"context"
	"time"

	"github.com/caresync/patient-records/internal/core/domain"
)

// MedicationInput carries the fields for a single medication entry.
type MedicationInput struct {
	Name      string
	Dosage    string
	Schedule  string
	Reminders []time.Time
}

// CreatePatientInput carries all data needed to create a new patient record.
// Initial medications are validated individually; one malformed entry rejects
// the whole create.
type CreatePatientInput struct {
	Name           string
	Age            int
	ContactDetails string
	MedicalHistory string
	Medications    []MedicationInput
}

// PatientService defines use-case operations on patient records.
type PatientService interface {
	Create(ctx context.Context, input CreatePatientInput) (*domain.Patient, error)
	List(ctx context.Context) ([]*domain.Patient, error)
	Get(ctx context.Context, id string) (*domain.Patient, error)
	AddMedication(ctx context.Context, id string, input MedicationInput) (*domain.Patient, error)
	ListMedications(ctx context.Context, id string) ([]domain.Medication, error)
	AddMoodLog(ctx context.Context, id string, mood string) (*domain.Patient, error)
}
