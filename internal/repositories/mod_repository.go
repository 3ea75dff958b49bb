package repositories

import (
	"errors"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var ErrModNotFound = errors.New("mod not found")

type ModRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Mod, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Mod, error)
	CountAll(db *gorm.DB) (int64, error)
	Create(db *gorm.DB, mod *models.Mod) error
	Update(db *gorm.DB, mod *models.Mod) error
	Delete(db *gorm.DB, id string) error

	LinkToEntry(db *gorm.DB, entryID, modID string) error
	UnlinkFromEntry(db *gorm.DB, entryID, modID string) error
	UnlinkAllFromEntry(db *gorm.DB, entryID string) error
}

type ModRepositoryImpl struct{}

func NewModRepository() ModRepository {
	return &ModRepositoryImpl{}
}

func (r *ModRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Mod, error) {
	var mod models.Mod
	err := db.First(&mod, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModNotFound
		}
		return nil, err
	}
	return &mod, nil
}

func (r *ModRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Mod, error) {
	var mods []models.Mod
	err := db.Order("brand, category").Limit(limit).Offset(offset).Find(&mods).Error
	return mods, err
}

func (r *ModRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Mod{}).Count(&count).Error
	return count, err
}

func (r *ModRepositoryImpl) Create(db *gorm.DB, mod *models.Mod) error {
	return db.Create(mod).Error
}

func (r *ModRepositoryImpl) Update(db *gorm.DB, mod *models.Mod) error {
	result := db.Model(&models.Mod{}).Where("id = ?", mod.ID).Updates(map[string]interface{}{
		"brand":       mod.Brand,
		"category":    mod.Category,
		"cost":        mod.Cost,
		"description": mod.Description,
		"link":        mod.Link,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModNotFound
	}
	return nil
}

func (r *ModRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Mod{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModNotFound
	}
	return nil
}

func (r *ModRepositoryImpl) LinkToEntry(db *gorm.DB, entryID, modID string) error {
	return db.Create(&models.EntryMod{EntryID: entryID, ModID: modID}).Error
}

func (r *ModRepositoryImpl) UnlinkFromEntry(db *gorm.DB, entryID, modID string) error {
	return db.Where("entry_id = ? AND mod_id = ?", entryID, modID).Delete(&models.EntryMod{}).Error
}

func (r *ModRepositoryImpl) UnlinkAllFromEntry(db *gorm.DB, entryID string) error {
	return db.Where("entry_id = ?", entryID).Delete(&models.EntryMod{}).Error
}
