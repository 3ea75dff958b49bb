package repositories

import (
	"errors"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrPhotoNotFound  = errors.New("photo not found")
	ErrAlreadyUpvoted = errors.New("entry already upvoted")
)

// FeedFilter описывает кандидатный набор explore-ленты:
// записи верифицированных владельцев, без собственных записей
// просматривающего и без уже просмотренных/лайкнутых ID.
type FeedFilter struct {
	ViewerEmail string
	ExcludeIDs  []string
	Region      models.Region
	Category    models.Category
}

// FeedRow - строка ленты: запись плюс вычисленный в основном
// запросе флаг "голосовал ли просматривающий".
type FeedRow struct {
	models.Entry `gorm:"embedded"`
	HasUpvoted   bool `json:"hasUpvoted"`
}

type EntryRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Entry, error)
	FindByOwner(db *gorm.DB, ownerEmail string) ([]models.Entry, error)
	Create(db *gorm.DB, entry *models.Entry) error
	Update(db *gorm.DB, entry *models.Entry) error
	Delete(db *gorm.DB, id string) error

	// Feed selection
	CountCandidates(db *gorm.DB, f FeedFilter) (int64, error)
	FindWindow(db *gorm.DB, f FeedFilter, offset, limit int) ([]FeedRow, error)

	// Photo moderation
	FindPhotoByID(db *gorm.DB, photoID string) (*models.EntryPhoto, error)
	DeletePhoto(db *gorm.DB, photoID string) error
	SetMainPhoto(db *gorm.DB, entryID, photoID string) error

	// Enrichment, сгруппированная по entryID
	FindPhotosByEntryIDs(db *gorm.DB, ids []string) (map[string][]models.EntryPhoto, error)
	FindTagsByEntryIDs(db *gorm.DB, ids []string) (map[string][]models.Tag, error)
	FindModsByEntryIDs(db *gorm.DB, ids []string) (map[string][]models.Mod, error)

	// Upvote toggle primitives (вызываются внутри одной транзакции)
	HasUpvote(db *gorm.DB, entryID, userEmail string) (bool, error)
	CreateUpvote(db *gorm.DB, entryID, userEmail string) error
	DeleteUpvote(db *gorm.DB, entryID, userEmail string) error
	AdjustUpvoteCount(db *gorm.DB, entryID string, delta int) error
	GetUpvoteCount(db *gorm.DB, entryID string) (int, error)

	// Rankings / stats
	TopByUpvotes(db *gorm.DB, limit int) ([]models.Entry, error)
	CountByOwner(db *gorm.DB, ownerEmail string) (int64, error)
	SumUpvotesReceived(db *gorm.DB, ownerEmail string) (int64, error)
	CountUpvotesGiven(db *gorm.DB, userEmail string) (int64, error)

	// Admin
	FindAll(db *gorm.DB, limit, offset int) ([]models.Entry, error)
	CountAll(db *gorm.DB) (int64, error)
}

type EntryRepositoryImpl struct{}

func NewEntryRepository() EntryRepository {
	return &EntryRepositoryImpl{}
}

func (r *EntryRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Entry, error) {
	var entry models.Entry
	err := db.Preload("Photos").Preload("Mods.Mod").Preload("Tags.Tag").
		First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *EntryRepositoryImpl) FindByOwner(db *gorm.DB, ownerEmail string) ([]models.Entry, error) {
	var entries []models.Entry
	err := db.Preload("Photos").Preload("Mods.Mod").Preload("Tags.Tag").
		Where("user_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *EntryRepositoryImpl) Create(db *gorm.DB, entry *models.Entry) error {
	return db.Create(entry).Error
}

func (r *EntryRepositoryImpl) Update(db *gorm.DB, entry *models.Entry) error {
	result := db.Model(&models.Entry{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
		"car_make":    entry.CarMake,
		"car_model":   entry.CarModel,
		"car_year":    entry.CarYear,
		"car_color":   entry.CarColor,
		"car_trim":    entry.CarTrim,
		"description": entry.Description,
		"region":      entry.Region,
		"category":    entry.Category,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *EntryRepositoryImpl) Delete(db *gorm.DB, id string) error {
	// Фото, моды, теги, голоса и комментарии уходят по FK-каскаду
	result := db.Where("id = ?", id).Delete(&models.Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ---------------- Feed selection ----------------

func (r *EntryRepositoryImpl) feedQuery(db *gorm.DB, f FeedFilter) *gorm.DB {
	query := db.Model(&models.Entry{}).
		Joins("JOIN users ON users.email = entries.user_email AND users.is_verified = true")

	if f.ViewerEmail != "" {
		query = query.Where("entries.user_email != ?", f.ViewerEmail)
	}
	if len(f.ExcludeIDs) > 0 {
		query = query.Where("entries.id NOT IN ?", f.ExcludeIDs)
	}
	if f.Region != "" {
		query = query.Where("entries.region = ?", f.Region)
	}
	if f.Category != "" {
		query = query.Where("entries.category = ?", f.Category)
	}

	return query
}

func (r *EntryRepositoryImpl) CountCandidates(db *gorm.DB, f FeedFilter) (int64, error) {
	var count int64
	err := r.feedQuery(db, f).Count(&count).Error
	return count, err
}

// FindWindow выбирает окно кандидатов начиная с offset, упорядоченное
// по первичному ключу. hasUpvoted вычисляется LEFT JOIN-ом в том же запросе.
func (r *EntryRepositoryImpl) FindWindow(db *gorm.DB, f FeedFilter, offset, limit int) ([]FeedRow, error) {
	var rows []FeedRow

	err := r.feedQuery(db, f).
		Select("entries.*, (eu.id IS NOT NULL) AS has_upvoted").
		Joins("LEFT JOIN entry_upvotes eu ON eu.entry_id = entries.id AND eu.user_email = ?", f.ViewerEmail).
		Order("entries.id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error

	return rows, err
}

// ---------------- Enrichment ----------------

func (r *EntryRepositoryImpl) FindPhotoByID(db *gorm.DB, photoID string) (*models.EntryPhoto, error) {
	var photo models.EntryPhoto
	err := db.First(&photo, "id = ?", photoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *EntryRepositoryImpl) DeletePhoto(db *gorm.DB, photoID string) error {
	result := db.Where("id = ?", photoID).Delete(&models.EntryPhoto{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

// SetMainPhoto снимает флаг с остальных фото записи и ставит его
// на выбранное. Вызывается внутри транзакции.
func (r *EntryRepositoryImpl) SetMainPhoto(db *gorm.DB, entryID, photoID string) error {
	if err := db.Model(&models.EntryPhoto{}).
		Where("entry_id = ? AND id <> ?", entryID, photoID).
		Update("is_main_photo", false).Error; err != nil {
		return err
	}
	return db.Model(&models.EntryPhoto{}).
		Where("id = ?", photoID).
		Update("is_main_photo", true).Error
}

func (r *EntryRepositoryImpl) FindPhotosByEntryIDs(db *gorm.DB, ids []string) (map[string][]models.EntryPhoto, error) {
	grouped := make(map[string][]models.EntryPhoto)
	if len(ids) == 0 {
		return grouped, nil
	}

	var photos []models.EntryPhoto
	if err := db.Where("entry_id IN ?", ids).Order("is_main_photo DESC, created_at").Find(&photos).Error; err != nil {
		return nil, err
	}

	for _, p := range photos {
		grouped[p.EntryID] = append(grouped[p.EntryID], p)
	}
	return grouped, nil
}

func (r *EntryRepositoryImpl) FindTagsByEntryIDs(db *gorm.DB, ids []string) (map[string][]models.Tag, error) {
	grouped := make(map[string][]models.Tag)
	if len(ids) == 0 {
		return grouped, nil
	}

	var links []models.EntryTag
	if err := db.Preload("Tag").Where("entry_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}

	for _, l := range links {
		grouped[l.EntryID] = append(grouped[l.EntryID], l.Tag)
	}
	return grouped, nil
}

func (r *EntryRepositoryImpl) FindModsByEntryIDs(db *gorm.DB, ids []string) (map[string][]models.Mod, error) {
	grouped := make(map[string][]models.Mod)
	if len(ids) == 0 {
		return grouped, nil
	}

	var links []models.EntryMod
	if err := db.Preload("Mod").Where("entry_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}

	for _, l := range links {
		grouped[l.EntryID] = append(grouped[l.EntryID], l.Mod)
	}
	return grouped, nil
}

// ---------------- Upvote toggle primitives ----------------

func (r *EntryRepositoryImpl) HasUpvote(db *gorm.DB, entryID, userEmail string) (bool, error) {
	var count int64
	err := db.Model(&models.EntryUpvote{}).
		Where("entry_id = ? AND user_email = ?", entryID, userEmail).
		Count(&count).Error
	return count > 0, err
}

func (r *EntryRepositoryImpl) CreateUpvote(db *gorm.DB, entryID, userEmail string) error {
	return db.Create(&models.EntryUpvote{EntryID: entryID, UserEmail: userEmail}).Error
}

func (r *EntryRepositoryImpl) DeleteUpvote(db *gorm.DB, entryID, userEmail string) error {
	return db.Where("entry_id = ? AND user_email = ?", entryID, userEmail).
		Delete(&models.EntryUpvote{}).Error
}

// AdjustUpvoteCount двигает кэшированный счетчик, не опускаясь ниже нуля.
func (r *EntryRepositoryImpl) AdjustUpvoteCount(db *gorm.DB, entryID string, delta int) error {
	return db.Model(&models.Entry{}).Where("id = ?", entryID).
		UpdateColumn("upvotes", gorm.Expr("GREATEST(upvotes + ?, 0)", delta)).Error
}

func (r *EntryRepositoryImpl) GetUpvoteCount(db *gorm.DB, entryID string) (int, error) {
	var entry models.Entry
	err := db.Select("upvotes").First(&entry, "id = ?", entryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEntryNotFound
		}
		return 0, err
	}
	return entry.Upvotes, nil
}

// ---------------- Rankings / stats ----------------

func (r *EntryRepositoryImpl) TopByUpvotes(db *gorm.DB, limit int) ([]models.Entry, error) {
	var entries []models.Entry
	err := db.Preload("Photos").
		Joins("JOIN users ON users.email = entries.user_email AND users.is_verified = true").
		Order("entries.upvotes DESC, entries.created_at").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *EntryRepositoryImpl) CountByOwner(db *gorm.DB, ownerEmail string) (int64, error) {
	var count int64
	err := db.Model(&models.Entry{}).Where("user_email = ?", ownerEmail).Count(&count).Error
	return count, err
}

func (r *EntryRepositoryImpl) SumUpvotesReceived(db *gorm.DB, ownerEmail string) (int64, error) {
	var total int64
	err := db.Model(&models.EntryUpvote{}).
		Joins("JOIN entries ON entries.id = entry_upvotes.entry_id").
		Where("entries.user_email = ?", ownerEmail).
		Count(&total).Error
	return total, err
}

func (r *EntryRepositoryImpl) CountUpvotesGiven(db *gorm.DB, userEmail string) (int64, error) {
	var count int64
	err := db.Model(&models.EntryUpvote{}).Where("user_email = ?", userEmail).Count(&count).Error
	return count, err
}

// ---------------- Admin ----------------

func (r *EntryRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Entry, error) {
	var entries []models.Entry
	err := db.Preload("Photos").Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}

func (r *EntryRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Entry{}).Count(&count).Error
	return count, err
}
