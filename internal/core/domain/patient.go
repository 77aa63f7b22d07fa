package domain

import "time"

// Medication is embedded in its parent Patient; it has no independent
// lifecycle and is only ever created by appending to the patient's sequence.
type Medication struct {
	Name      string      `json:"name"`
	Dosage    string      `json:"dosage"`
	Schedule  string      `json:"schedule"`
	Reminders []time.Time `json:"reminders,omitempty"`
}

// MissingFields returns the names of required medication fields that are empty.
func (m Medication) MissingFields() []string {
	var missing []string
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if m.Dosage == "" {
		missing = append(missing, "dosage")
	}
	if m.Schedule == "" {
		missing = append(missing, "schedule")
	}
	return missing
}

// Validate rejects a medication whose required fields are not all present.
func (m Medication) Validate() error {
	if missing := m.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Patient is the aggregate root. Medications and mood logs are embedded,
// append-ordered sequences; mutation happens only through atomic appends on
// the whole document.
type Patient struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Age            int          `json:"age"`
	ContactDetails string       `json:"contactDetails"`
	MedicalHistory string       `json:"medicalHistory"`
	MoodLogs       []string     `json:"moodLogs"`
	Medications    []Medication `json:"medications"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// Validate checks the four required scalar fields and every embedded
// medication. A patient failing validation must never reach the repository.
func (p *Patient) Validate() error {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Age < 0 {
		missing = append(missing, "age")
	}
	if p.ContactDetails == "" {
		missing = append(missing, "contactDetails")
	}
	if p.MedicalHistory == "" {
		missing = append(missing, "medicalHistory")
	}
	for _, m := range p.Medications {
		missing = append(missing, m.MissingFields()...)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ReminderEvent is an audit record written when a medication reminder is
// scheduled; it lives in its own collection and never mutates the patient.
type ReminderEvent struct {
	PatientID  string
	Medication string
	RemindAt   time.Time
	RecordedAt time.Time
}
