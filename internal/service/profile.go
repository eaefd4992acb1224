package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipify/backend/internal/models"
)

var (
	ErrProfileNotFound         = errors.New("profile not found")
	ErrProfileStoreUnavailable = errors.New("profile store unavailable")
)

// ProfileService handles user profile lookups
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance. A nil db makes
// every lookup fail with ErrProfileStoreUnavailable.
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves the profile row for an authenticated user id
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if s.db == nil {
		return nil, ErrProfileStoreUnavailable
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &user, nil
}
