package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daunku/daunku/pkg/carelog"
)

// CareLogRepository implements carelog.Repository backed by PostgreSQL
// (pgx). Ownership checks go through the plants table.
type CareLogRepository struct {
	pool *pgxpool.Pool
}

func NewCareLogRepository(pool *pgxpool.Pool) (*CareLogRepository, error) {
	repo := &CareLogRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CareLogRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS care_logs (
			id UUID PRIMARY KEY,
			plant_id UUID NOT NULL REFERENCES plants(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			notes TEXT,
			problem_description TEXT,
			problem_image_url TEXT,
			solution TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_care_logs_plant ON care_logs(plant_id);
	`)
	return err
}

const careLogColumns = `id, plant_id, type, date, COALESCE(notes, ''),
	COALESCE(problem_description, ''), COALESCE(problem_image_url, ''), COALESCE(solution, ''), created_at`

func (r *CareLogRepository) Create(ctx context.Context, ownerID uuid.UUID, log carelog.CareLog) error {
	// Ownership gate: the insert only succeeds when the plant belongs to
	// the caller.
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO care_logs (id, plant_id, type, date, notes, problem_description, problem_image_url, solution, created_at)
		SELECT $1, p.id, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9
		FROM plants p WHERE p.id = $2 AND p.user_id = $10
	`, log.ID, log.PlantID, log.Type, log.Date, log.Notes,
		log.ProblemDescription, log.ProblemImageURL, log.Solution, log.CreatedAt, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return carelog.ErrPlantNotFound
	}
	return nil
}

func (r *CareLogRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]carelog.CareLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cl.id, cl.plant_id, cl.type, cl.date, COALESCE(cl.notes, ''),
			COALESCE(cl.problem_description, ''), COALESCE(cl.problem_image_url, ''),
			COALESCE(cl.solution, ''), cl.created_at,
			p.nickname, COALESCE(p.species_name, '')
		FROM care_logs cl
		JOIN plants p ON p.id = cl.plant_id
		WHERE p.user_id = $1
		ORDER BY cl.date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []carelog.CareLog
	for rows.Next() {
		var log carelog.CareLog
		var createdAt time.Time
		ref := carelog.PlantRef{}
		if err := rows.Scan(&log.ID, &log.PlantID, &log.Type, &log.Date, &log.Notes,
			&log.ProblemDescription, &log.ProblemImageURL, &log.Solution, &createdAt,
			&ref.Nickname, &ref.SpeciesName); err != nil {
			return nil, err
		}
		log.CreatedAt = createdAt.UTC()
		ref.ID = log.PlantID
		log.Plant = &ref
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *CareLogRepository) ListByPlant(ctx context.Context, ownerID, plantID uuid.UUID) ([]carelog.CareLog, error) {
	if err := r.checkPlantOwned(ctx, ownerID, plantID); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+careLogColumns+` FROM care_logs
		WHERE plant_id = $1
		ORDER BY date DESC
	`, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []carelog.CareLog
	for rows.Next() {
		log, err := scanCareLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *CareLogRepository) Update(ctx context.Context, ownerID, id uuid.UUID, in carelog.UpdateInput) (carelog.CareLog, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE care_logs cl SET
			type = COALESCE($3, cl.type),
			date = COALESCE($4, cl.date),
			notes = COALESCE($5, cl.notes),
			problem_description = COALESCE($6, cl.problem_description),
			problem_image_url = COALESCE($7, cl.problem_image_url),
			solution = COALESCE($8, cl.solution)
		FROM plants p
		WHERE cl.id = $1 AND p.id = cl.plant_id AND p.user_id = $2
	`, id, ownerID, in.Type, in.Date, in.Notes, in.ProblemDescription, in.ProblemImageURL, in.Solution)
	if err != nil {
		return carelog.CareLog{}, err
	}
	if tag.RowsAffected() == 0 {
		return carelog.CareLog{}, carelog.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+careLogColumns+` FROM care_logs WHERE id = $1`, id)
	log, err := scanCareLog(row)
	if err != nil {
		return carelog.CareLog{}, err
	}
	return log, nil
}

func (r *CareLogRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM care_logs cl
		USING plants p
		WHERE cl.id = $1 AND p.id = cl.plant_id AND p.user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return carelog.ErrNotFound
	}
	return nil
}

func (r *CareLogRepository) MarkPlantWatered(ctx context.Context, ownerID, plantID uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE plants SET last_watered = $3, updated_at = $3
		WHERE id = $1 AND user_id = $2
	`, plantID, ownerID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return carelog.ErrPlantNotFound
	}
	return nil
}

func (r *CareLogRepository) checkPlantOwned(ctx context.Context, ownerID, plantID uuid.UUID) error {
	var one int
	row := r.pool.QueryRow(ctx, `SELECT 1 FROM plants WHERE id = $1 AND user_id = $2`, plantID, ownerID)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return carelog.ErrPlantNotFound
		}
		return err
	}
	return nil
}

func scanCareLog(row pgx.Row) (carelog.CareLog, error) {
	var log carelog.CareLog
	var createdAt time.Time
	err := row.Scan(&log.ID, &log.PlantID, &log.Type, &log.Date, &log.Notes,
		&log.ProblemDescription, &log.ProblemImageURL, &log.Solution, &createdAt)
	if err != nil {
		return carelog.CareLog{}, err
	}
	log.CreatedAt = createdAt.UTC()
	return log, nil
}
