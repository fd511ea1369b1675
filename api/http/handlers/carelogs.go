package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/daunku/daunku/api/http/presenter"
	"github.com/daunku/daunku/pkg/carelog"
	"github.com/daunku/daunku/pkg/security/jwt"
)

type CareLogHandler struct {
	uc carelog.UseCase
}

func NewCareLogHandler(uc carelog.UseCase) *CareLogHandler {
	return &CareLogHandler{uc: uc}
}

type addCareLogRequest struct {
	PlantID            uuid.UUID  `json:"plantId"`
	CareType           string     `json:"careType"`
	Date               *time.Time `json:"date"`
	Notes              string     `json:"notes"`
	ProblemDescription string     `json:"problemDescription"`
	ProblemImageURL    string     `json:"problemImageUrl"`
	Solution           string     `json:"solution"`
}

// Add records a care action; a "watering" entry also refreshes the plant's
// last-watered timestamp.
// @Summary Add care log
// @Tags    care-logs
// @Accept  json
// @Produce json
// @Param   input body addCareLogRequest true "care log payload"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /care-logs/add-care [post]
func (h *CareLogHandler) Add(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	var req addCareLogRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	log := carelog.CareLog{
		PlantID:            req.PlantID,
		Type:               req.CareType,
		Notes:              req.Notes,
		ProblemDescription: req.ProblemDescription,
		ProblemImageURL:    req.ProblemImageURL,
		Solution:           req.Solution,
	}
	if req.Date != nil {
		log.Date = *req.Date
	}
	created, err := h.uc.Add(c.Context(), user.ID, log)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "care log added",
		"careLog": created,
	})
}

// ListAll returns every care log of the caller, joined with its plant.
// @Summary List all care logs
// @Tags    care-logs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /care-logs [get]
func (h *CareLogHandler) ListAll(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	logs, err := h.uc.ListAll(c.Context(), user.ID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if logs == nil {
		logs = []carelog.CareLog{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message":  "care logs fetched",
		"careLogs": logs,
	})
}

// ListByPlant returns the care history of a single plant.
// @Summary List care logs for a plant
// @Tags    care-logs
// @Produce json
// @Param   plantId path string true "plant id (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /care-logs/plant/{plantId} [get]
func (h *CareLogHandler) ListByPlant(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	plantID, err := uuid.Parse(c.Params("plantId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid plant id")
	}
	logs, err := h.uc.ListByPlant(c.Context(), user.ID, plantID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if logs == nil {
		logs = []carelog.CareLog{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message":  "care logs fetched",
		"careLogs": logs,
	})
}

type updateCareLogRequest struct {
	CareType           *string    `json:"careType"`
	Date               *time.Time `json:"date"`
	Notes              *string    `json:"notes"`
	ProblemDescription *string    `json:"problemDescription"`
	ProblemImageURL    *string    `json:"problemImageUrl"`
	Solution           *string    `json:"solution"`
}

// Update changes the provided care log fields.
// @Summary Update care log
// @Tags    care-logs
// @Accept  json
// @Produce json
// @Param   id path string true "care log id (UUID)"
// @Param   input body updateCareLogRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /care-logs/updatecare/{id} [put]
func (h *CareLogHandler) Update(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid care log id")
	}
	var req updateCareLogRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	updated, err := h.uc.Update(c.Context(), user.ID, id, carelog.UpdateInput{
		Type:               req.CareType,
		Date:               req.Date,
		Notes:              req.Notes,
		ProblemDescription: req.ProblemDescription,
		ProblemImageURL:    req.ProblemImageURL,
		Solution:           req.Solution,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "care log updated",
		"careLog": updated,
	})
}

// Delete removes a care log.
// @Summary Delete care log
// @Tags    care-logs
// @Produce json
// @Param   id path string true "care log id (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /care-logs/delete/{id} [delete]
func (h *CareLogHandler) Delete(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid care log id")
	}
	if err := h.uc.Delete(c.Context(), user.ID, id); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "care log deleted"})
}
