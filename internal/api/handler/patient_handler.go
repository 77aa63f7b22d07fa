package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/caresync/patient-records/internal/core/domain"
	"github.com/caresync/patient-records/internal/core/ports"
)

// PatientHandler handles HTTP requests for patient record operations.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Create handles POST /api/patients.
//
// @Summary      Create a patient record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPatientRequest  true  "Patient fields"
// @Success      201   {object}  map[string]domain.Patient
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, err := h.service.Create(c.Request().Context(), ports.CreatePatientInput{
		Name:           req.Name,
		Age:            *req.Age,
		ContactDetails: req.ContactDetails,
		MedicalHistory: req.MedicalHistory,
		Medications:    toMedicationInputs(req.Medications),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]*domain.Patient{"patient": patient})
}

// List handles GET /api/patients.
//
// @Summary      List all patient records
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Patient
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []*domain.Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

// Get handles GET /api/patients/:id.
//
// @Summary      Get a patient record
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  map[string]domain.Patient
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	patient, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]*domain.Patient{"patient": patient})
}

// AddMedication handles POST /api/patients/:id/medications.
//
// @Summary      Append a medication to a patient record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Patient id"
// @Param        body  body      medicationRequest  true  "Medication fields"
// @Success      201   {object}  map[string]domain.Patient
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/patients/{id}/medications [post]
func (h *PatientHandler) AddMedication(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req medicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, err := h.service.AddMedication(c.Request().Context(), c.Param("id"), ports.MedicationInput{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Schedule:  req.Schedule,
		Reminders: req.Reminders,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]*domain.Patient{"patient": patient})
}

// ListMedications handles GET /api/patients/:id/medications.
//
// @Summary      List a patient's medications
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {array}   domain.Medication
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/patients/{id}/medications [get]
func (h *PatientHandler) ListMedications(c echo.Context) error {
	meds, err := h.service.ListMedications(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if meds == nil {
		meds = []domain.Medication{}
	}
	return c.JSON(http.StatusOK, meds)
}

// AddMoodLog handles POST /api/patients/:id/moods.
//
// @Summary      Append a mood log entry to a patient record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Patient id"
// @Param        body  body      moodLogRequest  true  "Mood entry"
// @Success      201   {object}  map[string]domain.Patient
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/patients/{id}/moods [post]
func (h *PatientHandler) AddMoodLog(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req moodLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, err := h.service.AddMoodLog(c.Request().Context(), c.Param("id"), req.Mood)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]*domain.Patient{"patient": patient})
}

func toMedicationInputs(reqs []medicationRequest) []ports.MedicationInput {
	inputs := make([]ports.MedicationInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, ports.MedicationInput{
			Name:      r.Name,
			Dosage:    r.Dosage,
			Schedule:  r.Schedule,
			Reminders: r.Reminders,
		})
	}
	return inputs
}
