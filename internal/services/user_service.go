package services

import (
	"context"
	"errors"

	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService - профиль текущего пользователя
type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userEmail string) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userEmail string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	GetAwards(ctx context.Context, db *gorm.DB, userEmail string) ([]models.Award, error)
	DeleteAccount(ctx context.Context, db *gorm.DB, userEmail string) error
}

type userService struct {
	userRepo  repositories.UserRepository
	awardRepo repositories.AwardRepository
}

func NewUserService(userRepo repositories.UserRepository, awardRepo repositories.AwardRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		awardRepo: awardRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userEmail string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	result := dto.UserFromModel(user)
	return &result, nil
}

// UpdateProfile обновляет только переданные поля
func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userEmail string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Region != "" {
		fields["region"] = req.Region
	}
	if req.ProfilePhotoKey != "" {
		fields["profile_photo_key"] = req.ProfilePhotoKey
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(db, userEmail, fields); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(ctx, db, userEmail)
}

func (s *userService) GetAwards(ctx context.Context, db *gorm.DB, userEmail string) ([]models.Award, error) {
	awards, err := s.awardRepo.FindByUser(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return awards, nil
}

// DeleteAccount удаляет пользователя; записи, голоса и комментарии
// уходят каскадом по внешним ключам.
func (s *userService) DeleteAccount(ctx context.Context, db *gorm.DB, userEmail string) error {
	if err := s.userRepo.Delete(db, userEmail); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Account deleted", "email", userEmail)
	return nil
}
