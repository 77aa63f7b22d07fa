package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/caresync/patient-records/internal/api/metrics"
	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
)

// ReminderEnqueuer hands reminder events to the async pipeline. The enqueue
// is fire-and-forget: it must never influence the outcome of the request
// that triggered it.
type ReminderEnqueuer interface {
	Enqueue(in ports.ReminderInput)
}

// PatientService implements the patient aggregate use cases.
type PatientService struct {
	repo      ports.PatientRepository
	reminders ReminderEnqueuer // optional
	log       zerolog.Logger
}

func NewPatientService(repo ports.PatientRepository, reminders ReminderEnqueuer, log zerolog.Logger) *PatientService {
	return &PatientService{repo: repo, reminders: reminders, log: log}
}

// Create validates the required scalar fields and every initial medication
// before anything touches the repository. A single malformed medication
// rejects the whole create.
func (s *PatientService) Create(ctx context.Context, input ports.CreatePatientInput) (*domain.Patient, error) {
	patient := &domain.Patient{
		Name:           input.Name,
		Age:            input.Age,
		ContactDetails: input.ContactDetails,
		MedicalHistory: input.MedicalHistory,
		MoodLogs:       []string{},
		Medications:    toMedications(input.Medications),
	}

	if err := patient.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, patient)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create patient")
		return nil, err
	}

	metrics.PatientsCreatedTotal.Inc()
	s.log.Info().Str("patient_id", created.ID).Msg("patient created")

	s.enqueueReminders(created.ID, created.Medications)
	return created, nil
}

func (s *PatientService) List(ctx context.Context) ([]*domain.Patient, error) {
	return s.repo.FindAll(ctx)
}

func (s *PatientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

// AddMedication appends one medication to the patient's sequence. The append
// is a single atomic update on the patient document, so concurrent appends
// against the same patient are all retained.
func (s *PatientService) AddMedication(ctx context.Context, id string, input ports.MedicationInput) (*domain.Patient, error) {
	med := domain.Medication{
		Name:      input.Name,
		Dosage:    input.Dosage,
		Schedule:  input.Schedule,
		Reminders: input.Reminders,
	}
	if err := med.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.PushMedication(ctx, id, med)
	if err != nil {
		return nil, err
	}

	metrics.MedicationsAppendedTotal.Inc()
	s.log.Info().Str("patient_id", id).Str("medication", med.Name).Msg("medication appended")

	s.enqueueReminders(id, []domain.Medication{med})
	return updated, nil
}

func (s *PatientService) ListMedications(ctx context.Context, id string) ([]domain.Medication, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return patient.Medications, nil
}

// AddMoodLog appends one mood entry using the same atomic-append contract as
// medications.
func (s *PatientService) AddMoodLog(ctx context.Context, id string, mood string) (*domain.Patient, error) {
	if mood == "" {
		return nil, &domain.ValidationError{Fields: []string{"mood"}}
	}

	updated, err := s.repo.PushMoodLog(ctx, id, mood)
	if err != nil {
		return nil, err
	}

	metrics.MoodLogsAppendedTotal.Inc()
	s.log.Info().Str("patient_id", id).Msg("mood log appended")
	return updated, nil
}

func (s *PatientService) enqueueReminders(patientID string, meds []domain.Medication) {
	if s.reminders == nil {
		return
	}
	for _, m := range meds {
		for _, at := range m.Reminders {
			s.reminders.Enqueue(ports.ReminderInput{
				PatientID:  patientID,
				Medication: m.Name,
				RemindAt:   at,
			})
		}
	}
}

func toMedications(inputs []ports.MedicationInput) []domain.Medication {
	meds := make([]domain.Medication, 0, len(inputs))
	for _, in := range inputs {
		meds = append(meds, domain.Medication{
			Name:      in.Name,
			Dosage:    in.Dosage,
			Schedule:  in.Schedule,
			Reminders: in.Reminders,
		})
	}
	return meds
}
