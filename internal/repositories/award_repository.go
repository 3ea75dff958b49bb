package repositories

import (
	"errors"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAwardNotFound = errors.New("award not found")

type AwardRepository interface {
	Create(db *gorm.DB, award *models.Award) error
	FindByUser(db *gorm.DB, userEmail string) ([]models.Award, error)
	HasAward(db *gorm.DB, userEmail string, awardType models.AwardType) (bool, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Award, error)
	Delete(db *gorm.DB, id string) error
}

type AwardRepositoryImpl struct{}

func NewAwardRepository() AwardRepository {
	return &AwardRepositoryImpl{}
}

func (r *AwardRepositoryImpl) Create(db *gorm.DB, award *models.Award) error {
	return db.Create(award).Error
}

func (r *AwardRepositoryImpl) FindByUser(db *gorm.DB, userEmail string) ([]models.Award, error) {
	var awards []models.Award
	err := db.Where("user_email = ?", userEmail).Order("award_date DESC").Find(&awards).Error
	return awards, err
}

func (r *AwardRepositoryImpl) HasAward(db *gorm.DB, userEmail string, awardType models.AwardType) (bool, error) {
	var count int64
	err := db.Model(&models.Award{}).
		Where("user_email = ? AND award_type = ?", userEmail, awardType).
		Count(&count).Error
	return count > 0, err
}

func (r *AwardRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Award, error) {
	var awards []models.Award
	err := db.Order("award_date DESC").Limit(limit).Offset(offset).Find(&awards).Error
	return awards, err
}

func (r *AwardRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Award{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAwardNotFound
	}
	return nil
}
