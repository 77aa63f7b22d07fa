package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/caresync/patient-records/internal/core/ports"
)

// SummaryHandler exposes the summarization gateway. The patient record is
// always durable before these endpoints are reachable, so a gateway failure
// here can never hide a persisted write.
type SummaryHandler struct {
	service ports.SummaryService
}

func NewSummaryHandler(service ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Summary handles GET /api/patients/:id/summary.
//
// @Summary      Generate a prose summary of a patient's medical history
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  summaryResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      504  {object}  errorResponse
// @Router       /api/patients/{id}/summary [get]
func (h *SummaryHandler) Summary(c echo.Context) error {
	text, err := h.service.Summarize(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: text})
}

// Recommendation handles GET /api/patients/:id/recommendation.
//
// @Summary      Generate care recommendations from a patient's medical history
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  recommendationResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      504  {object}  errorResponse
// @Router       /api/patients/{id}/recommendation [get]
func (h *SummaryHandler) Recommendation(c echo.Context) error {
	text, err := h.service.Recommend(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recommendationResponse{Recommendation: text})
}
