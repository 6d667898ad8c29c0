package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type profileRepository struct {
	DB DBTX
}

func NewProfileRepo(db DBTX) ProfileRepository {
	return &profileRepository{DB: db}
}

// GetOrCreate inserts an empty profile for userID when none exists and returns
// the stored row. Concurrent first requests converge on the same row.
func (r *profileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	insert := `INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.DB.ExecContext(dbCtx, insert, userID); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", MapPQError(err))
	}

	query := `
		SELECT id, user_id, first_name, last_name, clothing_size, gender, birthday,
		       city, street, house, apartment_office, postal_code, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var (
		p        models.Profile
		birthday sql.NullTime
	)

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName,
		&p.ClothingSize, &p.Gender, &birthday, &p.City, &p.Street, &p.House, &p.ApartmentOffice,
		&p.PostalCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", MapPQError(err))
	}

	if birthday.Valid {
		p.Birthday = &birthday.Time
	}

	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *models.Profile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, clothing_size = $3, gender = $4, birthday = $5,
		    city = $6, street = $7, house = $8, apartment_office = $9, postal_code = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, p.FirstName, p.LastName, p.ClothingSize, p.Gender, p.Birthday,
		p.City, p.Street, p.House, p.ApartmentOffice, p.PostalCode, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", MapPQError(err))
	}

	return nil
}
