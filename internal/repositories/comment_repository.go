package repositories

import (
	"errors"
	"time"

	"benchracers_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

type CommentRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	Create(db *gorm.DB, comment *models.Comment) error
	UpdateText(db *gorm.DB, id, text string) error

	// SoftDelete помечает комментарий удаленным; для top-level
	// комментария флаг каскадируется на его ответы.
	SoftDelete(db *gorm.DB, id string) error

	FindTopLevel(db *gorm.DB, entryID string, limit, offset int) ([]models.Comment, error)
	CountTopLevel(db *gorm.DB, entryID string) (int64, error)
	FindOldestReplies(db *gorm.DB, parentID string, limit int) ([]models.Comment, error)
	CountReplies(db *gorm.DB, parentID string) (int64, error)
	CountByAuthor(db *gorm.DB, userEmail string) (int64, error)

	// Like toggle primitives
	HasLike(db *gorm.DB, commentID, userEmail string) (bool, error)
	FindLikedIDs(db *gorm.DB, commentIDs []string, userEmail string) (map[string]bool, error)
	CreateLike(db *gorm.DB, commentID, userEmail string) error
	DeleteLike(db *gorm.DB, commentID, userEmail string) error
	AdjustLikeCount(db *gorm.DB, commentID string, delta int) error
	GetLikeCount(db *gorm.DB, commentID string) (int, error)
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) UpdateText(db *gorm.DB, id, text string) error {
	result := db.Model(&models.Comment{}).Where("id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{
			"text":       text,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) SoftDelete(db *gorm.DB, id string) error {
	result := db.Model(&models.Comment{}).Where("id = ?", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	// Каскад на ответы, чтобы под удаленным комментарием
	// не оставались адресуемые сироты
	return db.Model(&models.Comment{}).Where("parent_id = ?", id).
		Update("is_deleted", true).Error
}

func (r *CommentRepositoryImpl) FindTopLevel(db *gorm.DB, entryID string, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Where("entry_id = ? AND parent_id IS NULL AND is_deleted = false", entryID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) CountTopLevel(db *gorm.DB, entryID string) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).
		Where("entry_id = ? AND parent_id IS NULL AND is_deleted = false", entryID).
		Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) FindOldestReplies(db *gorm.DB, parentID string, limit int) ([]models.Comment, error) {
	var replies []models.Comment
	err := db.Where("parent_id = ? AND is_deleted = false", parentID).
		Order("created_at ASC").
		Limit(limit).
		Find(&replies).Error
	return replies, err
}

func (r *CommentRepositoryImpl) CountReplies(db *gorm.DB, parentID string) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).
		Where("parent_id = ? AND is_deleted = false", parentID).
		Count(&count).Error
	return count, err
}

func (r *CommentRepositoryImpl) CountByAuthor(db *gorm.DB, userEmail string) (int64, error) {
	var count int64
	err := db.Model(&models.Comment{}).
		Where("user_email = ? AND is_deleted = false", userEmail).
		Count(&count).Error
	return count, err
}

// ---------------- Like toggle primitives ----------------

func (r *CommentRepositoryImpl) HasLike(db *gorm.DB, commentID, userEmail string) (bool, error) {
	var count int64
	err := db.Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_email = ?", commentID, userEmail).
		Count(&count).Error
	return count > 0, err
}

// FindLikedIDs возвращает, какие из commentIDs лайкнуты пользователем,
// одним запросом для всей страницы комментариев.
func (r *CommentRepositoryImpl) FindLikedIDs(db *gorm.DB, commentIDs []string, userEmail string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(commentIDs) == 0 || userEmail == "" {
		return liked, nil
	}

	var likes []models.CommentLike
	err := db.Where("comment_id IN ? AND user_email = ?", commentIDs, userEmail).Find(&likes).Error
	if err != nil {
		return nil, err
	}

	for _, l := range likes {
		liked[l.CommentID] = true
	}
	return liked, nil
}

func (r *CommentRepositoryImpl) CreateLike(db *gorm.DB, commentID, userEmail string) error {
	return db.Create(&models.CommentLike{CommentID: commentID, UserEmail: userEmail}).Error
}

func (r *CommentRepositoryImpl) DeleteLike(db *gorm.DB, commentID, userEmail string) error {
	return db.Where("comment_id = ? AND user_email = ?", commentID, userEmail).
		Delete(&models.CommentLike{}).Error
}

func (r *CommentRepositoryImpl) AdjustLikeCount(db *gorm.DB, commentID string, delta int) error {
	return db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("likes", gorm.Expr("GREATEST(likes + ?, 0)", delta)).Error
}

func (r *CommentRepositoryImpl) GetLikeCount(db *gorm.DB, commentID string) (int, error) {
	var comment models.Comment
	err := db.Select("likes").First(&comment, "id = ?", commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCommentNotFound
		}
		return 0, err
	}
	return comment.Likes, nil
}
