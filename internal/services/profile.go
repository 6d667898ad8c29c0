package service

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/storefront-api/internal/errors"
	"github.com/aaravmahajanofficial/storefront-api/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-api/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-api/internal/utils"
	"github.com/google/uuid"
)

type ProfileService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// GetOrCreate implements ProfileService.
func (s *profileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load profile").WithError(err)
	}

	return profile, nil
}

// Update implements ProfileService. Only the fields present in req change.
func (s *profileService) Update(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = utils.SanitizeText(*src)
		}
	}

	assign(&profile.FirstName, req.FirstName)
	assign(&profile.LastName, req.LastName)
	assign(&profile.ClothingSize, req.ClothingSize)
	assign(&profile.Gender, req.Gender)
	assign(&profile.City, req.City)
	assign(&profile.Street, req.Street)
	assign(&profile.House, req.House)
	assign(&profile.ApartmentOffice, req.ApartmentOffice)
	assign(&profile.PostalCode, req.PostalCode)

	if req.Birthday != nil {
		if *req.Birthday == "" {
			profile.Birthday = nil
		} else {
			birthday, err := time.Parse(time.DateOnly, *req.Birthday)
			if err != nil {
				return nil, errors.AddValidationError("birthday", "must be a YYYY-MM-DD date").WithError(err)
			}

			if birthday.After(time.Now()) {
				return nil, errors.AddValidationError("birthday", "must not be in the future")
			}

			profile.Birthday = &birthday
		}
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return profile, nil
}
