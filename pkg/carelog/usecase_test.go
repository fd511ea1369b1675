package carelog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wateredCall struct {
	plantID uuid.UUID
	at      time.Time
}

type fakeRepo struct {
	ownedPlants map[uuid.UUID]uuid.UUID // plant -> owner
	created     []CareLog
	watered     []wateredCall
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{ownedPlants: map[uuid.UUID]uuid.UUID{}}
}

func (r *fakeRepo) Create(_ context.Context, ownerID uuid.UUID, log CareLog) error {
	if r.ownedPlants[log.PlantID] != ownerID {
		return ErrPlantNotFound
	}
	r.created = append(r.created, log)
	return nil
}

func (r *fakeRepo) ListByOwner(context.Context, uuid.UUID) ([]CareLog, error) {
	return r.created, nil
}

func (r *fakeRepo) ListByPlant(_ context.Context, ownerID, plantID uuid.UUID) ([]CareLog, error) {
	if r.ownedPlants[plantID] != ownerID {
		return nil, ErrPlantNotFound
	}
	return r.created, nil
}

func (r *fakeRepo) Update(context.Context, uuid.UUID, uuid.UUID, UpdateInput) (CareLog, error) {
	return CareLog{}, ErrNotFound
}

func (r *fakeRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return ErrNotFound
}

func (r *fakeRepo) MarkPlantWatered(_ context.Context, ownerID, plantID uuid.UUID, at time.Time) error {
	if r.ownedPlants[plantID] != ownerID {
		return ErrPlantNotFound
	}
	r.watered = append(r.watered, wateredCall{plantID: plantID, at: at})
	return nil
}

func TestAddDefaultsDateAndID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner, plantID := uuid.New(), uuid.New()
	repo.ownedPlants[plantID] = owner

	log, err := svc.Add(context.Background(), owner, CareLog{PlantID: plantID, Type: "fertilizing"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, log.ID)
	assert.WithinDuration(t, time.Now().UTC(), log.Date, time.Minute)
	require.Len(t, repo.created, 1)
	assert.Empty(t, repo.watered)
}

func TestAddValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	var validation ErrValidation

	_, err := svc.Add(context.Background(), uuid.New(), CareLog{Type: "watering"})
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Add(context.Background(), uuid.New(), CareLog{PlantID: uuid.New()})
	assert.ErrorAs(t, err, &validation)
}

func TestAddForeignPlant(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	plantID := uuid.New()
	repo.ownedPlants[plantID] = uuid.New()

	_, err := svc.Add(context.Background(), uuid.New(), CareLog{PlantID: plantID, Type: "watering"})
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

func TestAddWateringMarksPlant(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	owner, plantID := uuid.New(), uuid.New()
	repo.ownedPlants[plantID] = owner
	date := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	_, err := svc.Add(context.Background(), owner, CareLog{PlantID: plantID, Type: TypeWatering, Date: date})
	require.NoError(t, err)
	require.Len(t, repo.watered, 1)
	assert.Equal(t, plantID, repo.watered[0].plantID)
	assert.Equal(t, date, repo.watered[0].at)
}

func TestListByPlantForeignPlant(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	plantID := uuid.New()
	repo.ownedPlants[plantID] = uuid.New()

	_, err := svc.ListByPlant(context.Background(), uuid.New(), plantID)
	assert.ErrorIs(t, err, ErrPlantNotFound)
}

func TestUpdateRejectsEmptyType(t *testing.T) {
	svc := NewService(newFakeRepo())
	empty := ""

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), UpdateInput{Type: &empty})
	var validation ErrValidation
	assert.ErrorAs(t, err, &validation)
}
