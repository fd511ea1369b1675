package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/daunku/daunku/api/http/presenter"
	"github.com/daunku/daunku/pkg/advice"
	"github.com/daunku/daunku/pkg/security/jwt"
)

type AIHandler struct {
	uc advice.UseCase
}

func NewAIHandler(uc advice.UseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

type diagnoseRequest struct {
	PlantID            uuid.UUID `json:"plantId"`
	ProblemDescription string    `json:"problemDescription"`
	ProblemImageURL    string    `json:"problemImageUrl"`
}

// Diagnose asks the model for a diagnosis of a described plant problem.
// @Summary AI problem diagnosis
// @Tags    ai
// @Accept  json
// @Produce json
// @Param   input body diagnoseRequest true "problem description"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /ai/diagnose [post]
func (h *AIHandler) Diagnose(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	var req diagnoseRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	text, err := h.uc.Diagnose(c.Context(), user.ID, req.PlantID, req.ProblemDescription, req.ProblemImageURL)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "AI diagnosis",
		"advice":  text,
	})
}

type careAdviceRequest struct {
	PlantID  uuid.UUID `json:"plantId"`
	CareType string    `json:"careType"`
}

// CareAdvice asks the model for care guidance for one plant.
// @Summary AI care advice
// @Tags    ai
// @Accept  json
// @Produce json
// @Param   input body careAdviceRequest true "care type"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /ai/care-advice [post]
func (h *AIHandler) CareAdvice(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	var req careAdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	text, err := h.uc.CareAdvice(c.Context(), user.ID, req.PlantID, req.CareType)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "AI care advice",
		"advice":  text,
	})
}
