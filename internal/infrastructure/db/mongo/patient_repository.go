package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caresync/patient-records/internal/core/domain"
)

const patientsCollection = "patients"

// PatientRepository persists the patient aggregate. Appends to the embedded
// medication and mood log sequences are single atomic $push updates on one
// document, so concurrent appends to the same patient are serialised by the
// storage engine and appends to different patients never contend.
type PatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{coll: db.Collection(patientsCollection)}
}

type mongoMedication struct {
	Name      string      `bson:"name"`
	Dosage    string      `bson:"dosage"`
	Schedule  string      `bson:"schedule"`
	Reminders []time.Time `bson:"reminders,omitempty"`
}

type mongoPatient struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Age            int                `bson:"age"`
	ContactDetails string             `bson:"contact_details"`
	MedicalHistory string             `bson:"medical_history"`
	MoodLogs       []string           `bson:"mood_logs"`
	Medications    []mongoMedication  `bson:"medications"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (r *PatientRepository) Insert(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPatient{
		ID:             primitive.NewObjectID(),
		Name:           p.Name,
		Age:            p.Age,
		ContactDetails: p.ContactDetails,
		MedicalHistory: p.MedicalHistory,
		MoodLogs:       []string{},
		Medications:    toMongoMedications(p.Medications),
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}

	return doc.toDomain(), nil
}

// FindAll returns every patient sorted by _id, which for ObjectIDs is
// creation order.
func (r *PatientRepository) FindAll(ctx context.Context) ([]*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find patients: %w", err)
	}
	defer cur.Close(ctx)

	var patients []*domain.Patient
	for cur.Next(ctx) {
		var mp mongoPatient
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
		patients = append(patients, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPatient
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return mp.toDomain(), nil
}

// PushMedication appends one medication with a single atomic update and
// returns the post-update document.
func (r *PatientRepository) PushMedication(ctx context.Context, id string, m domain.Medication) (*domain.Patient, error) {
	return r.push(ctx, id, bson.M{"$push": bson.M{"medications": mongoMedication{
		Name:      m.Name,
		Dosage:    m.Dosage,
		Schedule:  m.Schedule,
		Reminders: m.Reminders,
	}}})
}

// PushMoodLog appends one mood entry with a single atomic update and returns
// the post-update document.
func (r *PatientRepository) PushMoodLog(ctx context.Context, id string, entry string) (*domain.Patient, error) {
	return r.push(ctx, id, bson.M{"$push": bson.M{"mood_logs": entry}})
}

func (r *PatientRepository) push(ctx context.Context, id string, update bson.M) (*domain.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPatientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPatient
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return mp.toDomain(), nil
}

func (mp mongoPatient) toDomain() *domain.Patient {
	meds := make([]domain.Medication, 0, len(mp.Medications))
	for _, m := range mp.Medications {
		meds = append(meds, domain.Medication{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Schedule:  m.Schedule,
			Reminders: m.Reminders,
		})
	}
	moodLogs := mp.MoodLogs
	if moodLogs == nil {
		moodLogs = []string{}
	}
	return &domain.Patient{
		ID:             mp.ID.Hex(),
		Name:           mp.Name,
		Age:            mp.Age,
		ContactDetails: mp.ContactDetails,
		MedicalHistory: mp.MedicalHistory,
		MoodLogs:       moodLogs,
		Medications:    meds,
		CreatedAt:      mp.CreatedAt,
	}
}

func toMongoMedications(meds []domain.Medication) []mongoMedication {
	out := make([]mongoMedication, 0, len(meds))
	for _, m := range meds {
		out = append(out, mongoMedication{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Schedule:  m.Schedule,
			Reminders: m.Reminders,
		})
	}
	return out
}
