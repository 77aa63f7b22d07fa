package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/caresync/patient-records/internal/api/metrics"
	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
)

// ReminderDedup abstracts the idempotency store (Redis) for reminder events.
type ReminderDedup interface {
	IsDuplicate(ctx context.Context, patientID, medication string, at time.Time) (bool, error)
	Mark(ctx context.Context, patientID, medication string, at time.Time) error
}

type reminderService struct {
	repo  ports.ReminderRepository
	dedup ReminderDedup
	log   zerolog.Logger
}

// NewReminderService returns a ReminderService implementation.
func NewReminderService(repo ports.ReminderRepository, dedup ReminderDedup, log zerolog.Logger) ports.ReminderService {
	return &reminderService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and records a single reminder event.
func (s *reminderService) Process(ctx context.Context, in ports.ReminderInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.PatientID, in.Medication, in.RemindAt)
	if err != nil {
		s.log.Warn().Err(err).Str("patient_id", in.PatientID).Msg("reminder dedup check failed, processing anyway")
	} else if isDup {
		metrics.RemindersDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("patient_id", in.PatientID).Str("medication", in.Medication).Msg("duplicate reminder skipped")
		return nil
	}
	metrics.RemindersDedupTotal.WithLabelValues("miss").Inc()

	if markErr := s.dedup.Mark(ctx, in.PatientID, in.Medication, in.RemindAt); markErr != nil {
		s.log.Warn().Err(markErr).Str("patient_id", in.PatientID).Msg("failed to set reminder dedup key")
	}

	ev := &domain.ReminderEvent{
		PatientID:  in.PatientID,
		Medication: in.Medication,
		RemindAt:   in.RemindAt,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, ev); err != nil {
		return fmt.Errorf("process reminder: %w", err)
	}

	metrics.RemindersProcessedTotal.Inc()
	s.log.Info().
		Str("patient_id", in.PatientID).
		Str("medication", in.Medication).
		Time("remind_at", in.RemindAt).
		Msg("reminder recorded")

	return nil
}
