package repositories

import (
	"errors"
	"strings"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

type TagRepository interface {
	// FindOrCreateByName дедуплицирует тег по имени,
	// создает лениво при первом использовании.
	FindOrCreateByName(db *gorm.DB, name string) (*models.Tag, error)
	FindAll(db *gorm.DB) ([]models.Tag, error)
	Delete(db *gorm.DB, id string) error

	LinkToEntry(db *gorm.DB, entryID, tagID string) error
	UnlinkAllFromEntry(db *gorm.DB, entryID string) error
}

type TagRepositoryImpl struct{}

func NewTagRepository() TagRepository {
	return &TagRepositoryImpl{}
}

func (r *TagRepositoryImpl) FindOrCreateByName(db *gorm.DB, name string) (*models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("empty tag name")
	}

	var tag models.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindAll(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Order("name").Find(&tags).Error
	return tags, err
}

func (r *TagRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *TagRepositoryImpl) LinkToEntry(db *gorm.DB, entryID, tagID string) error {
	return db.Create(&models.EntryTag{EntryID: entryID, TagID: tagID}).Error
}

func (r *TagRepositoryImpl) UnlinkAllFromEntry(db *gorm.DB, entryID string) error {
	return db.Where("entry_id = ?", entryID).Delete(&models.EntryTag{}).Error
}
