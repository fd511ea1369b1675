package carelog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase exposes care-history management for the authenticated user.
type UseCase interface {
	Add(ctx context.Context, ownerID uuid.UUID, log CareLog) (CareLog, error)
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]CareLog, error)
	ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]CareLog, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (CareLog, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ErrValidation reports malformed care log input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Add(ctx context.Context, ownerID uuid.UUID, log CareLog) (CareLog, error) {
	log.Type = strings.TrimSpace(log.Type)
	if log.PlantID == uuid.Nil {
		return CareLog{}, ErrValidation("plantId is required")
	}
	if log.Type == "" {
		return CareLog{}, ErrValidation("careType is required")
	}
	if log.Date.IsZero() {
		log.Date = time.Now().UTC()
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, ownerID, log); err != nil {
		return CareLog{}, err
	}
	if log.Type == TypeWatering {
		if err := s.repo.MarkPlantWatered(ctx, ownerID, log.PlantID, log.Date); err != nil {
			return CareLog{}, err
		}
	}
	return log, nil
}

func (s *service) ListAll(ctx context.Context, ownerID uuid.UUID) ([]CareLog, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]CareLog, error) {
	return s.repo.ListByPlant(ctx, ownerID, plantID)
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (CareLog, error) {
	if in.Type != nil && strings.TrimSpace(*in.Type) == "" {
		return CareLog{}, ErrValidation("careType cannot be empty")
	}
	return s.repo.Update(ctx, ownerID, id, in)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}
