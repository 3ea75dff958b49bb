package dto

import (
	"time"

	"benchracers_backend/internal/models"
)

// AdminUpdateUserRequest - управление пользователем редактором
type AdminUpdateUserRequest struct {
	IsVerified *bool `json:"isVerified"`
	IsEditor   *bool `json:"isEditor"`
}

// CreateModRequest - добавление детали в каталог
type CreateModRequest struct {
	Brand       string  `json:"brand" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Cost        float64 `json:"cost" binding:"omitempty,min=0"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Link        string  `json:"link" binding:"omitempty,url"`
}

// UpdateModRequest - правка каталожной детали
type UpdateModRequest struct {
	Brand       string  `json:"brand" binding:"omitempty"`
	Category    string  `json:"category" binding:"omitempty"`
	Cost        float64 `json:"cost" binding:"omitempty,min=0"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Link        string  `json:"link" binding:"omitempty,url"`
}

// CreateAwardRequest - ручная выдача достижения
type CreateAwardRequest struct {
	UserEmail string           `json:"userEmail" binding:"required,email"`
	AwardType models.AwardType `json:"awardType" binding:"required" validate:"is-award-type"`
	AwardDate *time.Time       `json:"awardDate"`
}

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

// EntryListResponse - страница записей
type EntryListResponse struct {
	Entries []models.Entry `json:"entries"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// ModListResponse - страница каталога
type ModListResponse struct {
	Mods  []models.Mod `json:"mods"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}
