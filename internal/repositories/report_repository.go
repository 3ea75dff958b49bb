package repositories

import (
	"errors"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepository interface {
	Create(db *gorm.DB, report *models.Report) error
	FindUnresolved(db *gorm.DB, limit, offset int) ([]models.Report, error)
	Resolve(db *gorm.DB, id string) error
}

type ReportRepositoryImpl struct{}

func NewReportRepository() ReportRepository {
	return &ReportRepositoryImpl{}
}

func (r *ReportRepositoryImpl) Create(db *gorm.DB, report *models.Report) error {
	return db.Create(report).Error
}

func (r *ReportRepositoryImpl) FindUnresolved(db *gorm.DB, limit, offset int) ([]models.Report, error) {
	var reports []models.Report
	err := db.Where("resolved = false").Order("created_at").Limit(limit).Offset(offset).Find(&reports).Error
	return reports, err
}

func (r *ReportRepositoryImpl) Resolve(db *gorm.DB, id string) error {
	result := db.Model(&models.Report{}).Where("id = ?", id).Update("resolved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
