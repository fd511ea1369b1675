package plant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/daunku/daunku/pkg/carelog"
)

// ErrNotFound covers both a missing plant and a plant owned by another
// user; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("plant not found")

// Plant is a single plant in a user's collection.
type Plant struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"userId"`
	Nickname        string             `json:"nickname"`
	SpeciesName     string             `json:"speciesName,omitempty"`
	CommonName      string             `json:"commonName"`
	AcquisitionDate *time.Time         `json:"acquisitionDate,omitempty"`
	Location        string             `json:"location,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	ImageURL        string             `json:"imageUrl,omitempty"`
	NeedsLight      string             `json:"needsLight,omitempty"`
	NeedsWater      string             `json:"needsWater,omitempty"`
	NeedsHumidity   string             `json:"needsHumidity,omitempty"`
	LastWatered     *time.Time         `json:"lastWatered,omitempty"`
	NextWatering    *time.Time         `json:"nextWatering,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	CareLogs        []carelog.CareLog  `json:"careLogs,omitempty"`
}

// UpdateInput carries optional field changes; nil means "leave as is".
type UpdateInput struct {
	Nickname        *string
	SpeciesName     *string
	CommonName      *string
	AcquisitionDate *time.Time
	Location        *string
	Notes           *string
	ImageURL        *string
	NeedsLight      *string
	NeedsWater      *string
	NeedsHumidity   *string
	LastWatered     *time.Time
	NextWatering    *time.Time
}

// Stats summarizes a user's collection for the dashboard.
type Stats struct {
	TotalPlants        int `json:"totalPlants"`
	PlantsNeedingWater int `json:"plantsNeedingWater"`
	TotalCareLogs      int `json:"totalCareLogs"`
	HealthyPlants      int `json:"healthyPlants"`
}

// Repository persists plants. Every read/write is scoped to the owning
// user; a row belonging to someone else behaves as absent.
type Repository interface {
	Create(ctx context.Context, p Plant) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Plant, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Plant, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Plant, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID, now time.Time) (Stats, error)
}
