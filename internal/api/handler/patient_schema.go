package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// Field names follow the wire contract of the consuming clients
// (camelCase, matching the patient document shape).

type medicationRequest struct {
	Name      string      `json:"name"     validate:"required"`
	Dosage    string      `json:"dosage"   validate:"required"`
	Schedule  string      `json:"schedule" validate:"required"`
	Reminders []time.Time `json:"reminders"`
}

type createPatientRequest struct {
	Name           string              `json:"name"           validate:"required"`
	Age            *int                `json:"age"            validate:"required,gte=0"`
	ContactDetails string              `json:"contactDetails" validate:"required"`
	MedicalHistory string              `json:"medicalHistory" validate:"required"`
	Medications    []medicationRequest `json:"medications"    validate:"dive"`
}

type moodLogRequest struct {
	Mood string `json:"mood" validate:"required"`
}

// --- Response types ---

type summaryResponse struct {
	Summary string `json:"summary"`
}

type recommendationResponse struct {
	Recommendation string `json:"recommendation"`
}
