package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/daunku/daunku/pkg/advice"
	"github.com/daunku/daunku/pkg/auth"
	"github.com/daunku/daunku/pkg/carelog"
	"github.com/daunku/daunku/pkg/plant"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError is the single translator from domain errors to HTTP responses.
// Anything unrecognized becomes an opaque 500; internal detail never
// reaches the client.
func FromError(c *fiber.Ctx, err error) error {
	var authValidation auth.ValidationError
	var plantValidation plant.ErrValidation
	var careValidation carelog.ErrValidation
	var adviceValidation advice.ErrValidation

	switch {
	case errors.As(err, &authValidation),
		errors.As(err, &plantValidation),
		errors.As(err, &careValidation),
		errors.As(err, &adviceValidation):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		return Error(c, http.StatusBadRequest, "email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrGoogleAuth):
		return Error(c, http.StatusUnauthorized, "google authentication failed")
	case errors.Is(err, plant.ErrNotFound):
		return Error(c, http.StatusNotFound, "plant not found")
	case errors.Is(err, carelog.ErrPlantNotFound):
		return Error(c, http.StatusNotFound, "plant not found")
	case errors.Is(err, carelog.ErrNotFound):
		return Error(c, http.StatusNotFound, "care log not found")
	case errors.Is(err, auth.ErrNotFound):
		return Error(c, http.StatusNotFound, "user not found")
	default:
		return Error(c, http.StatusInternalServerError, "internal server error")
	}
}
