package plant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase exposes collection management for the authenticated user.
type UseCase interface {
	Add(ctx context.Context, p Plant) (Plant, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Plant, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Plant, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Plant, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error)
}

// ErrValidation reports malformed plant input.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Add(ctx context.Context, p Plant) (Plant, error) {
	p.Nickname = strings.TrimSpace(p.Nickname)
	p.CommonName = strings.TrimSpace(p.CommonName)
	if p.Nickname == "" {
		return Plant{}, ErrValidation("nickname is required")
	}
	if p.CommonName == "" {
		return Plant{}, ErrValidation("commonName is required")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.repo.Create(ctx, p); err != nil {
		return Plant{}, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Plant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) GetByID(ctx context.Context, ownerID, id uuid.UUID) (Plant, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Plant, error) {
	if in.Nickname != nil && strings.TrimSpace(*in.Nickname) == "" {
		return Plant{}, ErrValidation("nickname cannot be empty")
	}
	return s.repo.Update(ctx, ownerID, id, in)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *service) Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error) {
	return s.repo.Stats(ctx, ownerID, time.Now().UTC())
}
