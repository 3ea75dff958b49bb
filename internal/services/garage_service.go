package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"benchracers_backend/internal/config"
	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/internal/storage"
	"benchracers_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GarageService - записи текущего пользователя (его гараж)
type GarageService interface {
	ListEntries(ctx context.Context, db *gorm.DB, ownerEmail string) ([]dto.EntryDTO, error)
	GetEntry(ctx context.Context, db *gorm.DB, ownerEmail, entryID string) (*dto.EntryDTO, error)
	CreateEntry(ctx context.Context, db *gorm.DB, ownerEmail string, req *dto.CreateEntryRequest) (*dto.EntryDTO, error)
	UpdateEntry(ctx context.Context, db *gorm.DB, ownerEmail, entryID string, req *dto.UpdateEntryRequest) (*dto.EntryDTO, error)
	DeleteEntry(ctx context.Context, db *gorm.DB, ownerEmail, entryID string) error
	PresignUpload(ctx context.Context, ownerEmail, fileName, contentType string) (*dto.PresignedURLResponse, error)
}

type garageService struct {
	entryRepo repositories.EntryRepository
	modRepo   repositories.ModRepository
	tagRepo   repositories.TagRepository
	store     storage.Storage
}

func NewGarageService(
	entryRepo repositories.EntryRepository,
	modRepo repositories.ModRepository,
	tagRepo repositories.TagRepository,
	store storage.Storage,
) GarageService {
	return &garageService{
		entryRepo: entryRepo,
		modRepo:   modRepo,
		tagRepo:   tagRepo,
		store:     store,
	}
}

func (s *garageService) ListEntries(ctx context.Context, db *gorm.DB, ownerEmail string) ([]dto.EntryDTO, error) {
	entries, err := s.entryRepo.FindByOwner(db, ownerEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	photos, tags, mods, err := s.loadRelations(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.EntryDTO, len(entries))
	for i, e := range entries {
		result[i] = dto.EntryDTO{
			Entry:  e,
			Photos: orEmptyPhotos(photos[e.ID]),
			Tags:   orEmptyTags(tags[e.ID]),
			Mods:   orEmptyMods(mods[e.ID]),
		}
	}
	return result, nil
}

func (s *garageService) GetEntry(ctx context.Context, db *gorm.DB, ownerEmail, entryID string) (*dto.EntryDTO, error) {
	entry, err := s.findOwned(db, ownerEmail, entryID)
	if err != nil {
		return nil, err
	}

	photos, tags, mods, err := s.loadRelations(db, []string{entry.ID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.EntryDTO{
		Entry:  *entry,
		Photos: orEmptyPhotos(photos[entry.ID]),
		Tags:   orEmptyTags(tags[entry.ID]),
		Mods:   orEmptyMods(mods[entry.ID]),
	}, nil
}

// CreateEntry создает запись вместе с фото, модами и тегами.
// Счетчики totalEntries и totalMods обновляются в той же транзакции.
func (s *garageService) CreateEntry(ctx context.Context, db *gorm.DB, ownerEmail string, req *dto.CreateEntryRequest) (*dto.EntryDTO, error) {
	entry := &models.Entry{
		UserEmail:   ownerEmail,
		CarMake:     req.CarMake,
		CarModel:    req.CarModel,
		CarYear:     req.CarYear,
		CarColor:    req.CarColor,
		CarTrim:     req.CarTrim,
		Description: req.Description,
		Region:      req.Region,
		Category:    req.Category,
		TotalMods:   len(req.ModIDs),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.Create(tx, entry); err != nil {
			return err
		}

		if err := s.attachRelations(tx, entry.ID, req.Photos, req.ModIDs, req.Tags); err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("email = ?", ownerEmail).
			Update("total_entries", gorm.Expr("total_entries + 1")).Error
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Entry created", "entry_id", entry.ID, "owner", ownerEmail)
	return s.GetEntry(ctx, db, ownerEmail, entry.ID)
}

// UpdateEntry правит запись владельца. Переданные фото, моды и теги
// заменяют прежние наборы целиком.
func (s *garageService) UpdateEntry(ctx context.Context, db *gorm.DB, ownerEmail, entryID string, req *dto.UpdateEntryRequest) (*dto.EntryDTO, error) {
	entry, err := s.findOwned(db, ownerEmail, entryID)
	if err != nil {
		return nil, err
	}

	if req.CarMake != "" {
		entry.CarMake = req.CarMake
	}
	if req.CarModel != "" {
		entry.CarModel = req.CarModel
	}
	if req.CarYear != 0 {
		entry.CarYear = req.CarYear
	}
	if req.CarColor != "" {
		entry.CarColor = req.CarColor
	}
	if req.CarTrim != "" {
		entry.CarTrim = req.CarTrim
	}
	if req.Description != "" {
		entry.Description = req.Description
	}
	if req.Region != "" {
		entry.Region = req.Region
	}
	if req.Category != "" {
		entry.Category = req.Category
	}
	if req.ModIDs != nil {
		entry.TotalMods = len(req.ModIDs)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.Update(tx, entry); err != nil {
			return err
		}

		if req.Photos != nil {
			if err := tx.Where("entry_id = ?", entry.ID).Delete(&models.EntryPhoto{}).Error; err != nil {
				return err
			}
		}
		if req.ModIDs != nil {
			if err := s.modRepo.UnlinkAllFromEntry(tx, entry.ID); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := s.tagRepo.UnlinkAllFromEntry(tx, entry.ID); err != nil {
				return err
			}
		}

		return s.attachRelations(tx, entry.ID, req.Photos, req.ModIDs, req.Tags)
	})
	if txErr != nil {
		return nil, apperrors.InternalError(txErr)
	}

	return s.GetEntry(ctx, db, ownerEmail, entryID)
}

// DeleteEntry удаляет запись владельца; связанные строки уходят
// каскадом, totalEntries декрементируется в той же транзакции.
func (s *garageService) DeleteEntry(ctx context.Context, db *gorm.DB, ownerEmail, entryID string) error {
	if _, err := s.findOwned(db, ownerEmail, entryID); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.Delete(tx, entryID); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("email = ?", ownerEmail).
			Update("total_entries", gorm.Expr("GREATEST(total_entries - 1, 0)")).Error
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Entry deleted", "entry_id", entryID, "owner", ownerEmail)
	return nil
}

// PresignUpload выдает короткоживущий URL для прямой загрузки фото.
// Ключ генерируется сервером, клиентское имя файла дает только расширение.
func (s *garageService) PresignUpload(ctx context.Context, ownerEmail, fileName, contentType string) (*dto.PresignedURLResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewBadRequestError("Only image uploads are allowed")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := fmt.Sprintf("photos/%s/%s%s", ownerEmail, uuid.NewString(), ext)

	expiry := time.Duration(config.GetConfig().Storage.PresignExpiry) * time.Minute
	url, err := s.store.PresignUpload(ctx, key, contentType, expiry)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.PresignedURLResponse{
		UploadURL: url,
		Key:       key,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

// =========================================================================
// Внутренние помощники
// =========================================================================

func (s *garageService) findOwned(db *gorm.DB, ownerEmail, entryID string) (*models.Entry, error) {
	entry, err := s.entryRepo.FindByID(db, entryID)
	if err != nil {
		if err == repositories.ErrEntryNotFound {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if entry.UserEmail != ownerEmail {
		return nil, apperrors.ErrNotOwner
	}
	return entry, nil
}

func (s *garageService) attachRelations(tx *gorm.DB, entryID string, photos []dto.PhotoInput, modIDs []string, tags []string) error {
	for _, p := range photos {
		photo := &models.EntryPhoto{
			EntryID:     entryID,
			S3Key:       p.S3Key,
			IsMainPhoto: p.IsMainPhoto,
		}
		if err := tx.Create(photo).Error; err != nil {
			return err
		}
	}

	for _, modID := range modIDs {
		if _, err := s.modRepo.FindByID(tx, modID); err != nil {
			return err
		}
		if err := s.modRepo.LinkToEntry(tx, entryID, modID); err != nil {
			return err
		}
	}

	for _, name := range tags {
		tag, err := s.tagRepo.FindOrCreateByName(tx, name)
		if err != nil {
			return err
		}
		if err := s.tagRepo.LinkToEntry(tx, entryID, tag.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s *garageService) loadRelations(db *gorm.DB, ids []string) (map[string][]models.EntryPhoto, map[string][]models.Tag, map[string][]models.Mod, error) {
	photos, err := s.entryRepo.FindPhotosByEntryIDs(db, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	tags, err := s.entryRepo.FindTagsByEntryIDs(db, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	mods, err := s.entryRepo.FindModsByEntryIDs(db, ids)
	if err != nil {
		return nil, nil, nil, err
	}
	return photos, tags, mods, nil
}

func orEmptyPhotos(v []models.EntryPhoto) []models.EntryPhoto {
	if v == nil {
		return []models.EntryPhoto{}
	}
	return v
}

func orEmptyTags(v []models.Tag) []models.Tag {
	if v == nil {
		return []models.Tag{}
	}
	return v
}

func orEmptyMods(v []models.Mod) []models.Mod {
	if v == nil {
		return []models.Mod{}
	}
	return v
}
