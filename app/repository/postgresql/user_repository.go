package repository

import (
	"context"
	"database/sql"

	models "university-enrollment-report/app/models/postgresql"

	"github.com/google/uuid"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
        SELECT id, username, password_hash, role, university_id
        FROM users
        WHERE username = $1
    `

	var user models.User
	var universityID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&universityID,
	)
	if err != nil {
		return nil, err
	}
	if universityID.Valid {
		id := int(universityID.Int64)
		user.UniversityID = &id
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
        SELECT id, username, password_hash, role, university_id
        FROM users
        WHERE id = $1
    `

	var user models.User
	var universityID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&universityID,
	)
	if err != nil {
		return nil, err
	}
	if universityID.Valid {
		uid := int(universityID.Int64)
		user.UniversityID = &uid
	}
	return &user, nil
}
