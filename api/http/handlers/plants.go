package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/daunku/daunku/api/http/presenter"
	"github.com/daunku/daunku/pkg/identify"
	"github.com/daunku/daunku/pkg/plant"
	"github.com/daunku/daunku/pkg/security/jwt"
)

// placeholderImageURL stands in for a hosted upload outside production.
const placeholderImageURL = "https://via.placeholder.com/400x300"

type PlantHandler struct {
	uc         plant.UseCase
	identifier identify.Identifier
}

func NewPlantHandler(uc plant.UseCase, identifier identify.Identifier) *PlantHandler {
	return &PlantHandler{uc: uc, identifier: identifier}
}

type plantRequest struct {
	Nickname        string     `json:"nickname"`
	SpeciesName     string     `json:"speciesName"`
	CommonName      string     `json:"commonName"`
	AcquisitionDate *time.Time `json:"acquisitionDate"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes"`
	ImageURL        string     `json:"imageUrl"`
	NeedsLight      string     `json:"needsLight"`
	NeedsWater      string     `json:"needsWater"`
	NeedsHumidity   string     `json:"needsHumidity"`
}

// Add registers a new plant in the caller's collection.
// @Summary Add plant
// @Tags    plants
// @Accept  json
// @Produce json
// @Param   input body plantRequest true "plant payload"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /plants [post]
func (h *PlantHandler) Add(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	var req plantRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	p, err := h.uc.Add(c.Context(), plant.Plant{
		UserID:          user.ID,
		Nickname:        req.Nickname,
		SpeciesName:     req.SpeciesName,
		CommonName:      req.CommonName,
		AcquisitionDate: req.AcquisitionDate,
		Location:        req.Location,
		Notes:           req.Notes,
		ImageURL:        req.ImageURL,
		NeedsLight:      req.NeedsLight,
		NeedsWater:      req.NeedsWater,
		NeedsHumidity:   req.NeedsHumidity,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "plant added",
		"plant":   p,
	})
}

// List returns all of the caller's plants, newest first, with care history.
// @Summary List plants
// @Tags    plants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} plant.Plant
// @Router  /plants [get]
func (h *PlantHandler) List(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	plants, err := h.uc.List(c.Context(), user.ID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	if plants == nil {
		plants = []plant.Plant{}
	}
	return presenter.JSON(c, http.StatusOK, plants)
}

// GetByID returns one plant with its care history.
// @Summary Get plant
// @Tags    plants
// @Produce json
// @Param   id path string true "plant id (UUID)"
// @Security BearerAuth
// @Success 200 {object} plant.Plant
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /plants/{id} [get]
func (h *PlantHandler) GetByID(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid plant id")
	}
	p, err := h.uc.GetByID(c.Context(), user.ID, id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type plantUpdateRequest struct {
	Nickname        *string    `json:"nickname"`
	SpeciesName     *string    `json:"speciesName"`
	CommonName      *string    `json:"commonName"`
	AcquisitionDate *time.Time `json:"acquisitionDate"`
	Location        *string    `json:"location"`
	Notes           *string    `json:"notes"`
	ImageURL        *string    `json:"imageUrl"`
	NeedsLight      *string    `json:"needsLight"`
	NeedsWater      *string    `json:"needsWater"`
	NeedsHumidity   *string    `json:"needsHumidity"`
	LastWatered     *time.Time `json:"lastWatered"`
	NextWatering    *time.Time `json:"nextWatering"`
}

// Update changes the provided plant fields; omitted fields stay as they are.
// @Summary Update plant
// @Tags    plants
// @Accept  json
// @Produce json
// @Param   id path string true "plant id (UUID)"
// @Param   input body plantUpdateRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /plants/{id} [put]
func (h *PlantHandler) Update(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid plant id")
	}
	var req plantUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	p, err := h.uc.Update(c.Context(), user.ID, id, plant.UpdateInput{
		Nickname:        req.Nickname,
		SpeciesName:     req.SpeciesName,
		CommonName:      req.CommonName,
		AcquisitionDate: req.AcquisitionDate,
		Location:        req.Location,
		Notes:           req.Notes,
		ImageURL:        req.ImageURL,
		NeedsLight:      req.NeedsLight,
		NeedsWater:      req.NeedsWater,
		NeedsHumidity:   req.NeedsHumidity,
		LastWatered:     req.LastWatered,
		NextWatering:    req.NextWatering,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "plant updated",
		"plant":   p,
	})
}

// Delete removes a plant and, through the schema, its care logs.
// @Summary Delete plant
// @Tags    plants
// @Produce json
// @Param   id path string true "plant id (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /plants/{id} [delete]
func (h *PlantHandler) Delete(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid plant id")
	}
	if err := h.uc.Delete(c.Context(), user.ID, id); err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "plant deleted"})
}

// Stats summarizes the caller's collection.
// @Summary Collection stats
// @Tags    plants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router  /plants/stats [get]
func (h *PlantHandler) Stats(c *fiber.Ctx) error {
	user, ok := jwt.CurrentUser(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	stats, err := h.uc.Stats(c.Context(), user.ID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "stats collected",
		"stats":   stats,
	})
}

// Identify recognizes a plant species from an uploaded photo. The photo is
// not persisted; a placeholder URL is sent to the provider (image hosting
// is outside this service).
// @Summary Identify plant from photo
// @Tags    plants
// @Accept  mpfd
// @Produce json
// @Param   plantImage formData file true "plant photo"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /plants/identify [post]
func (h *PlantHandler) Identify(c *fiber.Ctx) error {
	if _, ok := jwt.CurrentUser(c); !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing user context")
	}
	if _, err := c.FormFile("plantImage"); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "no image uploaded")
	}

	imageURL := placeholderImageURL
	result, err := h.identifier.Identify(c.Context(), imageURL)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "plant identification failed")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message":          "identification successful",
		"identifiedData":   result,
		"uploadedImageUrl": imageURL,
	})
}
