package services

import (
	"context"
	"errors"
	"time"

	"benchracers_backend/database"
	"benchracers_backend/internal/auth"
	"benchracers_backend/internal/config"
	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AdminService - операции редакторов: модерация пользователей и
// записей, каталог модов, теги, награды, жалобы и сброс базы.
type AdminService interface {
	ListUsers(ctx context.Context, db *gorm.DB, page, limit int) (*dto.UserListResponse, error)
	UpdateUser(ctx context.Context, db *gorm.DB, email string, req *dto.AdminUpdateUserRequest) error
	DeleteUser(ctx context.Context, db *gorm.DB, email string) error

	ListEntries(ctx context.Context, db *gorm.DB, page, limit int) (*dto.EntryListResponse, error)
	DeleteEntry(ctx context.Context, db *gorm.DB, entryID string) error

	DeletePhoto(ctx context.Context, db *gorm.DB, photoID string) error
	SetMainPhoto(ctx context.Context, db *gorm.DB, photoID string) error

	ListMods(ctx context.Context, db *gorm.DB, page, limit int) (*dto.ModListResponse, error)
	CreateMod(ctx context.Context, db *gorm.DB, req *dto.CreateModRequest) (*models.Mod, error)
	UpdateMod(ctx context.Context, db *gorm.DB, modID string, req *dto.UpdateModRequest) (*models.Mod, error)
	DeleteMod(ctx context.Context, db *gorm.DB, modID string) error

	ListTags(ctx context.Context, db *gorm.DB) ([]models.Tag, error)
	DeleteTag(ctx context.Context, db *gorm.DB, tagID string) error

	ListAwards(ctx context.Context, db *gorm.DB, page, limit int) ([]models.Award, error)
	CreateAward(ctx context.Context, db *gorm.DB, req *dto.CreateAwardRequest) (*models.Award, error)
	DeleteAward(ctx context.Context, db *gorm.DB, awardID string) error

	ListReports(ctx context.Context, db *gorm.DB, page, limit int) ([]models.Report, error)
	ResolveReport(ctx context.Context, db *gorm.DB, reportID string) error

	ResetDatabase(ctx context.Context, db *gorm.DB) error
}

type adminService struct {
	userRepo   repositories.UserRepository
	entryRepo  repositories.EntryRepository
	modRepo    repositories.ModRepository
	tagRepo    repositories.TagRepository
	awardRepo  repositories.AwardRepository
	reportRepo repositories.ReportRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	entryRepo repositories.EntryRepository,
	modRepo repositories.ModRepository,
	tagRepo repositories.TagRepository,
	awardRepo repositories.AwardRepository,
	reportRepo repositories.ReportRepository,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		entryRepo:  entryRepo,
		modRepo:    modRepo,
		tagRepo:    tagRepo,
		awardRepo:  awardRepo,
		reportRepo: reportRepo,
	}
}

// ---------------- Users ----------------

func (s *adminService) ListUsers(ctx context.Context, db *gorm.DB, page, limit int) (*dto.UserListResponse, error) {
	total, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	users, err := s.userRepo.FindAll(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.UserDTO, len(users))
	for i := range users {
		result[i] = dto.UserFromModel(&users[i])
	}

	return &dto.UserListResponse{
		Users: result,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *adminService) UpdateUser(ctx context.Context, db *gorm.DB, email string, req *dto.AdminUpdateUserRequest) error {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if req.IsVerified != nil && *req.IsVerified && !user.IsVerified {
		if err := s.userRepo.VerifyUser(db, email); err != nil {
			return apperrors.InternalError(err)
		}
	}
	if req.IsEditor != nil {
		if err := s.userRepo.SetEditorFlag(db, email, *req.IsEditor); err != nil {
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "Editor flag changed", "email", email, "is_editor", *req.IsEditor)
	}

	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, db *gorm.DB, email string) error {
	if err := s.userRepo.Delete(db, email); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.CtxWarn(ctx, "User deleted by editor", "email", email)
	return nil
}

// ---------------- Entries ----------------

func (s *adminService) ListEntries(ctx context.Context, db *gorm.DB, page, limit int) (*dto.EntryListResponse, error) {
	var total int64
	if err := db.Model(&models.Entry{}).Count(&total).Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries, err := s.entryRepo.FindAll(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.EntryListResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// DeleteEntry удаляет запись модераторски, без проверки владельца.
// Счетчик totalEntries владельца корректируется в той же транзакции.
func (s *adminService) DeleteEntry(ctx context.Context, db *gorm.DB, entryID string) error {
	entry, err := s.entryRepo.FindByID(db, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return apperrors.ErrEntryNotFound
		}
		return apperrors.InternalError(err)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.Delete(tx, entryID); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("email = ?", entry.UserEmail).
			Update("total_entries", gorm.Expr("GREATEST(total_entries - 1, 0)")).Error
	})
	if txErr != nil {
		return apperrors.InternalError(txErr)
	}

	logger.CtxWarn(ctx, "Entry deleted by editor", "entry_id", entryID)
	return nil
}

// ---------------- Photos ----------------

func (s *adminService) DeletePhoto(ctx context.Context, db *gorm.DB, photoID string) error {
	if err := s.entryRepo.DeletePhoto(db, photoID); err != nil {
		if errors.Is(err, repositories.ErrPhotoNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.CtxWarn(ctx, "Photo deleted by editor", "photo_id", photoID)
	return nil
}

// SetMainPhoto делает фото главным; флаг с остальных фото той же
// записи снимается в одной транзакции.
func (s *adminService) SetMainPhoto(ctx context.Context, db *gorm.DB, photoID string) error {
	photo, err := s.entryRepo.FindPhotoByID(db, photoID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhotoNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		return s.entryRepo.SetMainPhoto(tx, photo.EntryID, photoID)
	})
	if txErr != nil {
		return apperrors.InternalError(txErr)
	}
	return nil
}

// ---------------- Mods catalog ----------------

func (s *adminService) ListMods(ctx context.Context, db *gorm.DB, page, limit int) (*dto.ModListResponse, error) {
	total, err := s.modRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	mods, err := s.modRepo.FindAll(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ModListResponse{
		Mods:  mods,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *adminService) CreateMod(ctx context.Context, db *gorm.DB, req *dto.CreateModRequest) (*models.Mod, error) {
	mod := &models.Mod{
		Brand:       req.Brand,
		Category:    req.Category,
		Cost:        req.Cost,
		Description: req.Description,
		Link:        req.Link,
	}
	if err := s.modRepo.Create(db, mod); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mod, nil
}

func (s *adminService) UpdateMod(ctx context.Context, db *gorm.DB, modID string, req *dto.UpdateModRequest) (*models.Mod, error) {
	mod, err := s.modRepo.FindByID(db, modID)
	if err != nil {
		if errors.Is(err, repositories.ErrModNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Brand != "" {
		mod.Brand = req.Brand
	}
	if req.Category != "" {
		mod.Category = req.Category
	}
	if req.Cost != 0 {
		mod.Cost = req.Cost
	}
	if req.Description != "" {
		mod.Description = req.Description
	}
	if req.Link != "" {
		mod.Link = req.Link
	}

	if err := s.modRepo.Update(db, mod); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mod, nil
}

func (s *adminService) DeleteMod(ctx context.Context, db *gorm.DB, modID string) error {
	if err := s.modRepo.Delete(db, modID); err != nil {
		if errors.Is(err, repositories.ErrModNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Tags ----------------

func (s *adminService) ListTags(ctx context.Context, db *gorm.DB) ([]models.Tag, error) {
	tags, err := s.tagRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tags, nil
}

func (s *adminService) DeleteTag(ctx context.Context, db *gorm.DB, tagID string) error {
	if err := s.tagRepo.Delete(db, tagID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Awards ----------------

func (s *adminService) ListAwards(ctx context.Context, db *gorm.DB, page, limit int) ([]models.Award, error) {
	awards, err := s.awardRepo.FindAll(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return awards, nil
}

func (s *adminService) CreateAward(ctx context.Context, db *gorm.DB, req *dto.CreateAwardRequest) (*models.Award, error) {
	if _, err := s.userRepo.FindByEmail(db, req.UserEmail); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	awardDate := time.Now()
	if req.AwardDate != nil {
		awardDate = *req.AwardDate
	}

	award := &models.Award{
		UserEmail: req.UserEmail,
		AwardType: req.AwardType,
		AwardDate: awardDate,
	}
	if err := s.awardRepo.Create(db, award); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return award, nil
}

func (s *adminService) DeleteAward(ctx context.Context, db *gorm.DB, awardID string) error {
	if err := s.awardRepo.Delete(db, awardID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Reports ----------------

func (s *adminService) ListReports(ctx context.Context, db *gorm.DB, page, limit int) ([]models.Report, error) {
	reports, err := s.reportRepo.FindUnresolved(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reports, nil
}

func (s *adminService) ResolveReport(ctx context.Context, db *gorm.DB, reportID string) error {
	if err := s.reportRepo.Resolve(db, reportID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Database reset ----------------

// ResetDatabase пересоздает схему и сидирует первого редактора.
// Используется демо-стендами; в проде маршрут держат выключенным.
func (s *adminService) ResetDatabase(ctx context.Context, db *gorm.DB) error {
	if err := database.DropAll(db); err != nil {
		return apperrors.InternalError(err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	if cfg.FirstEditorEmail != "" && cfg.FirstEditorPassword != "" {
		hash, err := auth.HashPassword(cfg.FirstEditorPassword)
		if err != nil {
			return apperrors.InternalError(err)
		}
		editor := &models.User{
			Email:        cfg.FirstEditorEmail,
			Name:         "Editor",
			PasswordHash: hash,
			IsVerified:   true,
			IsEditor:     true,
		}
		if err := s.userRepo.Create(db, editor); err != nil {
			return apperrors.InternalError(err)
		}
	}

	logger.CtxWarn(ctx, "Database reset completed")
	return nil
}
