package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daunku/daunku/pkg/plant"
)

// PlantRepository implements plant.Repository backed by PostgreSQL (pgx).
// Ownership is enforced in every query: rows of other users are invisible.
type PlantRepository struct {
	pool *pgxpool.Pool
}

func NewPlantRepository(pool *pgxpool.Pool) (*PlantRepository, error) {
	repo := &PlantRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *PlantRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS plants (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			nickname TEXT NOT NULL,
			species_name TEXT,
			common_name TEXT NOT NULL,
			acquisition_date TIMESTAMPTZ,
			location TEXT,
			notes TEXT,
			image_url TEXT,
			needs_light TEXT,
			needs_water TEXT,
			needs_humidity TEXT,
			last_watered TIMESTAMPTZ,
			next_watering TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_plants_user ON plants(user_id);
	`)
	return err
}

const plantColumns = `id, user_id, nickname, COALESCE(species_name, ''), common_name,
	acquisition_date, COALESCE(location, ''), COALESCE(notes, ''), COALESCE(image_url, ''),
	COALESCE(needs_light, ''), COALESCE(needs_water, ''), COALESCE(needs_humidity, ''),
	last_watered, next_watering, created_at, updated_at`

func (r *PlantRepository) Create(ctx context.Context, p plant.Plant) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO plants (id, user_id, nickname, species_name, common_name, acquisition_date,
			location, notes, image_url, needs_light, needs_water, needs_humidity,
			last_watered, next_watering, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
			NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), $13, $14, $15, $16)
	`, p.ID, p.UserID, p.Nickname, p.SpeciesName, p.CommonName, p.AcquisitionDate,
		p.Location, p.Notes, p.ImageURL, p.NeedsLight, p.NeedsWater, p.NeedsHumidity,
		p.LastWatered, p.NextWatering, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PlantRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]plant.Plant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+plantColumns+` FROM plants
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []plant.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCareLogs(ctx, plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *PlantRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (plant.Plant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+plantColumns+` FROM plants
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	p, err := scanPlant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plant.Plant{}, plant.ErrNotFound
		}
		return plant.Plant{}, err
	}
	list := []plant.Plant{p}
	if err := r.attachCareLogs(ctx, list); err != nil {
		return plant.Plant{}, err
	}
	return list[0], nil
}

func (r *PlantRepository) Update(ctx context.Context, ownerID, id uuid.UUID, in plant.UpdateInput) (plant.Plant, error) {
	// COALESCE keeps the stored value when the corresponding input is nil.
	tag, err := r.pool.Exec(ctx, `
		UPDATE plants SET
			nickname = COALESCE($3, nickname),
			species_name = COALESCE($4, species_name),
			common_name = COALESCE($5, common_name),
			acquisition_date = COALESCE($6, acquisition_date),
			location = COALESCE($7, location),
			notes = COALESCE($8, notes),
			image_url = COALESCE($9, image_url),
			needs_light = COALESCE($10, needs_light),
			needs_water = COALESCE($11, needs_water),
			needs_humidity = COALESCE($12, needs_humidity),
			last_watered = COALESCE($13, last_watered),
			next_watering = COALESCE($14, next_watering),
			updated_at = $15
		WHERE id = $1 AND user_id = $2
	`, id, ownerID, in.Nickname, in.SpeciesName, in.CommonName, in.AcquisitionDate,
		in.Location, in.Notes, in.ImageURL, in.NeedsLight, in.NeedsWater, in.NeedsHumidity,
		in.LastWatered, in.NextWatering, time.Now().UTC())
	if err != nil {
		return plant.Plant{}, err
	}
	if tag.RowsAffected() == 0 {
		return plant.Plant{}, plant.ErrNotFound
	}
	return r.GetByIDForOwner(ctx, ownerID, id)
}

func (r *PlantRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM plants WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return plant.ErrNotFound
	}
	return nil
}

func (r *PlantRepository) Stats(ctx context.Context, ownerID uuid.UUID, now time.Time) (plant.Stats, error) {
	var st plant.Stats
	row := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM plants WHERE user_id = $1),
			(SELECT COUNT(*) FROM plants WHERE user_id = $1 AND next_watering <= $2),
			(SELECT COUNT(*) FROM care_logs cl JOIN plants p ON p.id = cl.plant_id WHERE p.user_id = $1)
	`, ownerID, now)
	if err := row.Scan(&st.TotalPlants, &st.PlantsNeedingWater, &st.TotalCareLogs); err != nil {
		return plant.Stats{}, err
	}
	st.HealthyPlants = st.TotalPlants - st.PlantsNeedingWater
	return st, nil
}

func scanPlant(row pgx.Row) (plant.Plant, error) {
	var p plant.Plant
	var createdAt, updatedAt time.Time
	err := row.Scan(&p.ID, &p.UserID, &p.Nickname, &p.SpeciesName, &p.CommonName,
		&p.AcquisitionDate, &p.Location, &p.Notes, &p.ImageURL,
		&p.NeedsLight, &p.NeedsWater, &p.NeedsHumidity,
		&p.LastWatered, &p.NextWatering, &createdAt, &updatedAt)
	if err != nil {
		return plant.Plant{}, err
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}

// attachCareLogs loads the care history for the given plants in one query.
func (r *PlantRepository) attachCareLogs(ctx context.Context, plants []plant.Plant) error {
	if len(plants) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(plants))
	index := make(map[uuid.UUID]int, len(plants))
	for i, p := range plants {
		ids[i] = p.ID
		index[p.ID] = i
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+careLogColumns+` FROM care_logs
		WHERE plant_id = ANY($1)
		ORDER BY date DESC
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		log, err := scanCareLog(rows)
		if err != nil {
			return err
		}
		i := index[log.PlantID]
		plants[i].CareLogs = append(plants[i].CareLogs, log)
	}
	return rows.Err()
}
