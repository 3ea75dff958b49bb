package dto

import (
	"time"

	"benchracers_backend/internal/models"
)

// SignupRequest - запрос регистрации
type SignupRequest struct {
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=8"`
	Name     string        `json:"name" binding:"required"`
	Region   models.Region `json:"region" binding:"omitempty" validate:"is-region"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse - ответ с токеном
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// PasswordResetRequest - запрос сброса пароля
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm - подтверждение сброса пароля
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest - смена пароля авторизованным пользователем
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileRequest - обновление профиля
type UpdateProfileRequest struct {
	Name            string        `json:"name" binding:"omitempty"`
	Region          models.Region `json:"region" binding:"omitempty" validate:"is-region"`
	ProfilePhotoKey string        `json:"profilePhotoKey" binding:"omitempty"`
}

// UserDTO - публичная информация о пользователе
type UserDTO struct {
	Email           string        `json:"email"`
	Name            string        `json:"name"`
	Region          models.Region `json:"region"`
	IsVerified      bool          `json:"isVerified"`
	IsEditor        bool          `json:"isEditor"`
	TotalEntries    int           `json:"totalEntries"`
	ProfilePhotoKey string        `json:"profilePhotoKey,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// UserFromModel конвертирует модель в DTO
func UserFromModel(u *models.User) UserDTO {
	return UserDTO{
		Email:           u.Email,
		Name:            u.Name,
		Region:          u.Region,
		IsVerified:      u.IsVerified,
		IsEditor:        u.IsEditor,
		TotalEntries:    u.TotalEntries,
		ProfilePhotoKey: u.ProfilePhotoKey,
		CreatedAt:       u.CreatedAt,
	}
}
