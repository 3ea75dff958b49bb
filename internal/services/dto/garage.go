package dto

import (
	"benchracers_backend/internal/models"
)

// PhotoInput - фото при создании/обновлении записи.
// Файл уже загружен клиентом напрямую в хранилище по presigned URL.
type PhotoInput struct {
	S3Key       string `json:"s3Key" binding:"required"`
	IsMainPhoto bool   `json:"isMainPhoto"`
}

// CreateEntryRequest - создание записи в гараже
type CreateEntryRequest struct {
	CarMake     string          `json:"carMake" binding:"required"`
	CarModel    string          `json:"carModel" binding:"required"`
	CarYear     int             `json:"carYear" binding:"omitempty,min=1900,max=2100"`
	CarColor    string          `json:"carColor"`
	CarTrim     string          `json:"carTrim"`
	Description string          `json:"description" binding:"omitempty,max=5000"`
	Region      models.Region   `json:"region" binding:"omitempty" validate:"is-region"`
	Category    models.Category `json:"category" binding:"omitempty" validate:"is-category"`
	Photos      []PhotoInput    `json:"photos"`
	ModIDs      []string        `json:"modIds"`
	Tags        []string        `json:"tags"`
}

// UpdateEntryRequest - правка записи владельцем.
// Фото, моды и теги заменяются целиком, если переданы.
type UpdateEntryRequest struct {
	CarMake     string          `json:"carMake" binding:"omitempty"`
	CarModel    string          `json:"carModel" binding:"omitempty"`
	CarYear     int             `json:"carYear" binding:"omitempty,min=1900,max=2100"`
	CarColor    string          `json:"carColor"`
	CarTrim     string          `json:"carTrim"`
	Description string          `json:"description" binding:"omitempty,max=5000"`
	Region      models.Region   `json:"region" binding:"omitempty" validate:"is-region"`
	Category    models.Category `json:"category" binding:"omitempty" validate:"is-category"`
	Photos      []PhotoInput    `json:"photos"`
	ModIDs      []string        `json:"modIds"`
	Tags        []string        `json:"tags"`
}

// EntryDTO - запись с загруженными связями
type EntryDTO struct {
	models.Entry
	Photos []models.EntryPhoto `json:"photos"`
	Tags   []models.Tag        `json:"tags"`
	Mods   []models.Mod        `json:"mods"`
}

// PresignedURLResponse - короткоживущий URL для прямой загрузки в S3
type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"` // секунды
}
