package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/caresync/patient-records/internal/core/domain"
)

const reminderEventsCollection = "reminder_events"

// ReminderRepository writes the reminder audit trail. It never touches the
// patient document.
type ReminderRepository struct {
	coll *mongo.Collection
}

func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{coll: db.Collection(reminderEventsCollection)}
}

func (r *ReminderRepository) Insert(ctx context.Context, ev *domain.ReminderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"patient_id":  ev.PatientID,
		"medication":  ev.Medication,
		"remind_at":   ev.RemindAt.UTC(),
		"recorded_at": ev.RecordedAt.UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert reminder event: %w", err)
	}
	return nil
}
