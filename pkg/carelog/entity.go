package carelog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TypeWatering is the care type that also advances the plant's
// last-watered timestamp.
const TypeWatering = "watering"

var (
	// ErrPlantNotFound means the referenced plant is absent or owned by
	// another user.
	ErrPlantNotFound = errors.New("plant not found")
	// ErrNotFound means the care log is absent or belongs to a plant the
	// user does not own.
	ErrNotFound = errors.New("care log not found")
)

// PlantRef is the slim plant view embedded in owner-wide listings.
type PlantRef struct {
	ID          uuid.UUID `json:"id"`
	Nickname    string    `json:"nickname"`
	SpeciesName string    `json:"speciesName,omitempty"`
}

// CareLog records one care action (watering, fertilizing, repotting, ...)
// or an observed problem with its solution.
type CareLog struct {
	ID                 uuid.UUID `json:"id"`
	PlantID            uuid.UUID `json:"plantId"`
	Type               string    `json:"type"`
	Date               time.Time `json:"date"`
	Notes              string    `json:"notes,omitempty"`
	ProblemDescription string    `json:"problemDescription,omitempty"`
	ProblemImageURL    string    `json:"problemImageUrl,omitempty"`
	Solution           string    `json:"solution,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	Plant              *PlantRef `json:"plant,omitempty"`
}

// UpdateInput carries optional field changes; nil means "leave as is".
type UpdateInput struct {
	Type               *string
	Date               *time.Time
	Notes              *string
	ProblemDescription *string
	ProblemImageURL    *string
	Solution           *string
}

// Repository persists care logs. Ownership is enforced through the plant
// the log belongs to.
type Repository interface {
	Create(ctx context.Context, ownerID uuid.UUID, log CareLog) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]CareLog, error)
	ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]CareLog, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (CareLog, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// MarkPlantWatered sets the plant's last-watered timestamp.
	MarkPlantWatered(ctx context.Context, ownerID, plantID uuid.UUID, at time.Time) error
}
