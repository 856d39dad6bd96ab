package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// ProfileStats summarizes a user's activity for the profile page.
type ProfileStats struct {
	Recipes   int64 `json:"recipes"`
	Likes     int64 `json:"likes"`
	Bookmarks int64 `json:"bookmarks"`
}

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user together with their authored-recipe, like and
// bookmark counts.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, *ProfileStats, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, nil, err
	}

	var stats ProfileStats
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", userID).
		Count(&stats.Recipes).Error; err != nil {
		return nil, nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("user_id = ?", userID).
		Count(&stats.Likes).Error; err != nil {
		return nil, nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.RecipeBookmark{}).
		Where("user_id = ?", userID).
		Count(&stats.Bookmarks).Error; err != nil {
		return nil, nil, err
	}

	return &user, &stats, nil
}

// UpdateProfile changes the user's name and/or email. Blank fields keep their
// current value; an email already used by another account is rejected.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	if req.Name == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: name or email is required", ErrValidation)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", req.Email, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: email already in use", ErrValidation)
		}
		user.Email = req.Email
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
