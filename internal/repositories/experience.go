package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookit-platform/internal/models"

	"github.com/lib/pq"
)

// ExperienceRepository handles experience data operations
type ExperienceRepository struct {
	db *sql.DB
}

// NewExperienceRepository creates a new experience repository
func NewExperienceRepository(db *sql.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

const experienceColumns = `id, created_at, title, description, price, location, image_urls`

// Create inserts a new experience
func (r *ExperienceRepository) Create(ctx context.Context, req *models.ExperienceCreateRequest) (*models.Experience, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	imageURLs := req.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}

	query := `
		INSERT INTO experiences (title, description, price, location, image_urls)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + experienceColumns

	experience, err := scanExperience(r.db.QueryRowContext(ctx, query,
		req.Title,
		req.Description,
		req.Price,
		req.Location,
		pq.Array(imageURLs),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create experience: %w", err)
	}

	return experience, nil
}

// GetByID retrieves an experience without its slots
func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	if !isUUID(id) {
		return nil, models.ErrExperienceNotFound
	}

	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`

	experience, err := scanExperience(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrExperienceNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return experience, nil
}

// List returns experiences newest first. A non-empty term is matched
// case-insensitively against title, location and description; callers must
// pass a sanitized term.
func (r *ExperienceRepository) List(ctx context.Context, term string) ([]*models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences`
	var args []interface{}

	if term != "" {
		query += ` WHERE title ILIKE $1 OR location ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+term+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	experiences := make([]*models.Experience, 0)
	for rows.Next() {
		experience, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, experience)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate experiences: %w", err)
	}

	return experiences, nil
}

// ListIDs returns the id of every experience
func (r *ExperienceRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM experiences ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan experience id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExperience(row rowScanner) (*models.Experience, error) {
	experience := &models.Experience{}
	err := row.Scan(
		&experience.ID,
		&experience.CreatedAt,
		&experience.Title,
		&experience.Description,
		&experience.Price,
		&experience.Location,
		pq.Array(&experience.ImageURLs),
	)
	if err != nil {
		return nil, err
	}
	if experience.ImageURLs == nil {
		experience.ImageURLs = []string{}
	}
	return experience, nil
}
