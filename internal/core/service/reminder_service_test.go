package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
)

type stubReminderRepo struct {
	mu     sync.Mutex
	events []*domain.ReminderEvent
	err    error
}

func (r *stubReminderRepo) Insert(_ context.Context, ev *domain.ReminderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *stubReminderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type stubDedup struct {
	mu     sync.Mutex
	marked map[string]bool
	err    error
}

func newStubDedup() *stubDedup {
	return &stubDedup{marked: make(map[string]bool)}
}

func (d *stubDedup) key(patientID, medication string, at time.Time) string {
	return patientID + ":" + medication + ":" + at.UTC().String()
}

func (d *stubDedup) IsDuplicate(_ context.Context, patientID, medication string, at time.Time) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	return d.marked[d.key(patientID, medication, at)], nil
}

func (d *stubDedup) Mark(_ context.Context, patientID, medication string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.marked[d.key(patientID, medication, at)] = true
	return nil
}

func reminderInput() ports.ReminderInput {
	return ports.ReminderInput{
		PatientID:  "patient-1",
		Medication: "Albuterol",
		RemindAt:   time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestReminderService_Process_Records(t *testing.T) {
	repo := &stubReminderRepo{}
	svc := NewReminderService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), reminderInput()); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if repo.count() != 1 {
		t.Fatalf("expected 1 event, got %d", repo.count())
	}
}

func TestReminderService_Process_SkipsDuplicate(t *testing.T) {
	repo := &stubReminderRepo{}
	svc := NewReminderService(repo, newStubDedup(), zerolog.Nop())

	in := reminderInput()
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("duplicate process failed: %v", err)
	}
	if repo.count() != 1 {
		t.Fatalf("duplicate must be skipped, got %d events", repo.count())
	}
}

func TestReminderService_Process_DedupFailureNotFatal(t *testing.T) {
	repo := &stubReminderRepo{}
	dedup := newStubDedup()
	dedup.err = errors.New("redis down")
	svc := NewReminderService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), reminderInput()); err != nil {
		t.Fatalf("dedup failure must not fail processing: %v", err)
	}
	if repo.count() != 1 {
		t.Fatalf("expected event recorded despite dedup failure, got %d", repo.count())
	}
}

func TestReminderService_Process_InsertFailure(t *testing.T) {
	repo := &stubReminderRepo{err: errors.New("mongo down")}
	svc := NewReminderService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), reminderInput()); err == nil {
		t.Fatalf("expected error when audit insert fails")
	}
}
