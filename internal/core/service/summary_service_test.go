package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/caresync/patient-records/internal/core/domain"
)

// stubGenerator is a deterministic TextGenerator.
type stubGenerator struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if g.text != "" {
		return g.text, nil
	}
	return "generated: " + prompt, nil
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// memoryCache is an in-memory SummaryCache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	text, ok := c.entries[key]
	return text, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = text
	return nil
}

func seedPatient(t *testing.T, repo *stubPatientRepo) *domain.Patient {
	t.Helper()
	p, err := repo.Insert(context.Background(), &domain.Patient{
		Name:           "Bob",
		Age:            40,
		ContactDetails: "555-0100",
		MedicalHistory: "asthma",
	})
	if err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return p
}

func TestSummaryService_Summarize_UsesHistoryPrompt(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{}
	svc := NewSummaryService(repo, gen, newMemoryCache(), zerolog.Nop())

	text, err := svc.Summarize(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if !strings.Contains(text, "Generate a summary for: asthma") {
		t.Fatalf("prompt not built from medical history: %q", text)
	}
}

func TestSummaryService_Recommend_UsesRecommendationPrompt(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{}
	svc := NewSummaryService(repo, gen, newMemoryCache(), zerolog.Nop())

	text, err := svc.Recommend(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if !strings.Contains(text, "Generate recommendations for: asthma") {
		t.Fatalf("unexpected recommendation prompt: %q", text)
	}
}

func TestSummaryService_CacheHit_SkipsGenerator(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{}
	svc := NewSummaryService(repo, gen, newMemoryCache(), zerolog.Nop())

	first, err := svc.Summarize(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("first summarize failed: %v", err)
	}
	second, err := svc.Summarize(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("second summarize failed: %v", err)
	}
	if first != second {
		t.Fatalf("cache returned different text: %q vs %q", first, second)
	}
	if gen.callCount() != 1 {
		t.Fatalf("expected 1 generator call, got %d", gen.callCount())
	}
}

func TestSummaryService_SummaryAndRecommendationCachedSeparately(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{}
	svc := NewSummaryService(repo, gen, newMemoryCache(), zerolog.Nop())

	if _, err := svc.Summarize(context.Background(), p.ID); err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if _, err := svc.Recommend(context.Background(), p.ID); err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if gen.callCount() != 2 {
		t.Fatalf("expected 2 generator calls, got %d", gen.callCount())
	}
}

func TestSummaryService_GeneratorError_NothingCached(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{err: domain.ErrGatewayUnavailable}
	cache := newMemoryCache()
	svc := NewSummaryService(repo, gen, cache, zerolog.Nop())

	if _, err := svc.Summarize(context.Background(), p.ID); !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("failed generation must not be cached")
	}

	// The failure is recoverable: once the generator is healthy the same
	// call succeeds.
	gen.err = nil
	if _, err := svc.Summarize(context.Background(), p.ID); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
}

func TestSummaryService_Timeout(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{err: context.DeadlineExceeded}
	svc := NewSummaryService(repo, gen, newMemoryCache(), zerolog.Nop())

	if _, err := svc.Summarize(context.Background(), p.ID); !errors.Is(err, domain.ErrGatewayTimeout) {
		t.Fatalf("expected ErrGatewayTimeout, got %v", err)
	}
}

func TestSummaryService_PatientNotFound(t *testing.T) {
	svc := NewSummaryService(newStubPatientRepo(), &stubGenerator{}, newMemoryCache(), zerolog.Nop())

	if _, err := svc.Summarize(context.Background(), "missing"); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestSummaryService_CacheFailure_NotFatal(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{}
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	svc := NewSummaryService(repo, gen, cache, zerolog.Nop())

	if _, err := svc.Summarize(context.Background(), p.ID); err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
}

func TestSummaryService_ClampsOversizedOutput(t *testing.T) {
	repo := newStubPatientRepo()
	p := seedPatient(t, repo)
	gen := &stubGenerator{text: strings.Repeat("x", summaryMaxRunes+500)}
	svc := NewSummaryService(repo, gen, newMemoryCache(), zerolog.Nop())

	text, err := svc.Summarize(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len([]rune(text)) != summaryMaxRunes {
		t.Fatalf("expected output clamped to %d runes, got %d", summaryMaxRunes, len([]rune(text)))
	}
}
