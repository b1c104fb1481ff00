package repository

import (
	"context"
	"database/sql"

	models "university-enrollment-report/app/models/postgresql"
)

type UniversityRepository interface {
	GetActive(ctx context.Context) ([]models.University, error)
	GetByID(ctx context.Context, id int) (*models.University, error)
}

type universityRepository struct {
	db *sql.DB
}

func NewUniversityRepository(db *sql.DB) UniversityRepository {
	return &universityRepository{db: db}
}

// GetActive lists active universities ordered by id. This order is the
// canonical column order for report payloads.
func (r *universityRepository) GetActive(ctx context.Context) ([]models.University, error) {
	query := `
        SELECT id, short_name, name, active
        FROM universities
        WHERE active = TRUE
        ORDER BY id
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var universities []models.University
	for rows.Next() {
		var uni models.University
		if err := rows.Scan(&uni.ID, &uni.ShortName, &uni.Name, &uni.Active); err != nil {
			return nil, err
		}
		universities = append(universities, uni)
	}

	return universities, rows.Err()
}

func (r *universityRepository) GetByID(ctx context.Context, id int) (*models.University, error) {
	query := `
        SELECT id, short_name, name, active
        FROM universities
        WHERE active = TRUE AND id = $1
    `

	var uni models.University
	err := r.db.QueryRowContext(ctx, query, id).Scan(&uni.ID, &uni.ShortName, &uni.Name, &uni.Active)
	if err != nil {
		return nil, err
	}
	return &uni, nil
}
