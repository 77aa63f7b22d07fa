package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/caresync/patient-records/internal/api/metrics"
	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
)

const (
	// summaryMaxTokens is the output budget negotiated with the text service.
	summaryMaxTokens = 150
	// summaryMaxRunes clamps the returned text even if the model ignores the
	// token budget.
	summaryMaxRunes = 2000
)

// SummaryCache abstracts the response cache (Redis). A cache failure is
// never fatal to the request.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string) error
}

// SummaryService is the gateway to the external generative text service. It
// has no persistence obligations; patient writes are always durable before
// any call reaches it.
type SummaryService struct {
	patients ports.PatientRepository
	gen      ports.TextGenerator
	cache    SummaryCache
	log      zerolog.Logger
}

func NewSummaryService(patients ports.PatientRepository, gen ports.TextGenerator, cache SummaryCache, log zerolog.Logger) *SummaryService {
	return &SummaryService{patients: patients, gen: gen, cache: cache, log: log}
}

func (s *SummaryService) Summarize(ctx context.Context, patientID string) (string, error) {
	return s.generate(ctx, patientID, "summary", "Generate a summary for: %s")
}

func (s *SummaryService) Recommend(ctx context.Context, patientID string) (string, error) {
	return s.generate(ctx, patientID, "recommendation", "Generate recommendations for: %s")
}

func (s *SummaryService) generate(ctx context.Context, patientID, kind, promptFmt string) (string, error) {
	patient, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return "", err
	}

	// Cache key includes a history digest so an updated record is never
	// served a stale summary.
	key := cacheKey(kind, patient.ID, patient.MedicalHistory)
	if s.cache != nil {
		text, hit, cacheErr := s.cache.Get(ctx, key)
		if cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("patient_id", patientID).Msg("summary cache read failed")
		} else if hit {
			metrics.SummaryRequestsTotal.WithLabelValues(kind, "cache_hit").Inc()
			return text, nil
		}
	}

	text, err := s.gen.Generate(ctx, fmt.Sprintf(promptFmt, patient.MedicalHistory), summaryMaxTokens)
	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues(kind, "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.ErrGatewayTimeout
		}
		if errors.Is(err, domain.ErrGatewayTimeout) || errors.Is(err, domain.ErrGatewayUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	text = clamp(text, summaryMaxRunes)

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, key, text); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("patient_id", patientID).Msg("summary cache write failed")
		}
	}

	metrics.SummaryRequestsTotal.WithLabelValues(kind, "ok").Inc()
	return text, nil
}

func cacheKey(kind, patientID, history string) string {
	return fmt.Sprintf("%s:%s:%x", kind, patientID, sha256.Sum256([]byte(history)))
}

func clamp(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
