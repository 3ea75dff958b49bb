package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultCommentLimit = 20
	maxCommentLimit     = 100
	maxCommentLength    = 1000
	previewReplyLimit   = 5
)

// CommentService - комментарии к записям: один уровень вложенности,
// мягкое удаление, лайки с кэшированным счетчиком.
type CommentService interface {
	ListComments(ctx context.Context, db *gorm.DB, viewerEmail, entryID string, page, limit int) (*dto.CommentListResponse, error)
	CreateComment(ctx context.Context, db *gorm.DB, userEmail string, req *dto.CreateCommentRequest) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, db *gorm.DB, userEmail, commentID string, req *dto.UpdateCommentRequest) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, db *gorm.DB, userEmail string, isEditor bool, commentID string) error
	ToggleLike(ctx context.Context, db *gorm.DB, userEmail, commentID string) (*dto.CommentLikeResponse, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	entryRepo   repositories.EntryRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, entryRepo repositories.EntryRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		entryRepo:   entryRepo,
	}
}

// ListComments отдает страницу top-level комментариев (новые первыми).
// У каждого - до пяти самых старых ответов и флаг hasMoreReplies.
// Для анонимного просмотра isLiked везде false.
func (s *commentService) ListComments(ctx context.Context, db *gorm.DB, viewerEmail, entryID string, page, limit int) (*dto.CommentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultCommentLimit
	}
	if limit > maxCommentLimit {
		limit = maxCommentLimit
	}

	if _, err := s.entryRepo.FindByID(db, entryID); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	total, err := s.commentRepo.CountTopLevel(db, entryID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	topLevel, err := s.commentRepo.FindTopLevel(db, entryID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	comments := make([]dto.CommentDTO, len(topLevel))
	allIDs := make([]string, 0, len(topLevel)*2)

	for i, c := range topLevel {
		replies, err := s.commentRepo.FindOldestReplies(db, c.ID, previewReplyLimit)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		replyCount, err := s.commentRepo.CountReplies(db, c.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		d := commentToDTO(&c)
		d.ReplyCount = replyCount
		d.HasMoreReplies = replyCount > int64(len(replies))
		d.Replies = make([]dto.CommentDTO, len(replies))
		for j, r := range replies {
			d.Replies[j] = commentToDTO(&r)
			allIDs = append(allIDs, r.ID)
		}
		allIDs = append(allIDs, c.ID)
		comments[i] = d
	}

	if viewerEmail != "" && len(allIDs) > 0 {
		liked, err := s.commentRepo.FindLikedIDs(db, allIDs, viewerEmail)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		for i := range comments {
			comments[i].IsLiked = liked[comments[i].ID]
			for j := range comments[i].Replies {
				comments[i].Replies[j].IsLiked = liked[comments[i].Replies[j].ID]
			}
		}
	}

	return &dto.CommentListResponse{
		Comments: comments,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// CreateComment добавляет комментарий или ответ. Текст триммится,
// границы после trim - 1..1000 символов. Ответ допустим только на
// живой top-level комментарий той же записи. commentCount записи
// считает только top-level комментарии: для ответа счетчик
// не трогается.
func (s *commentService) CreateComment(ctx context.Context, db *gorm.DB, userEmail string, req *dto.CreateCommentRequest) (*dto.CommentDTO, error) {
	text := strings.TrimSpace(req.CommentText)
	if n := utf8.RuneCountInString(text); n == 0 || n > maxCommentLength {
		return nil, apperrors.ErrCommentTooLong
	}

	if _, err := s.entryRepo.FindByID(db, req.EntryID); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(db, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, repositories.ErrCommentNotFound) {
				return nil, apperrors.ErrParentCommentInvalid
			}
			return nil, apperrors.InternalError(err)
		}
		// Только один уровень: отвечать на ответ нельзя
		if parent.IsDeleted || parent.EntryID != req.EntryID || parent.ParentID != nil {
			return nil, apperrors.ErrParentCommentInvalid
		}
	}

	comment := &models.Comment{
		EntryID:   req.EntryID,
		UserEmail: userEmail,
		ParentID:  req.ParentCommentID,
		Text:      text,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.Create(tx, comment); err != nil {
			return err
		}
		if comment.ParentID != nil {
			return nil
		}
		return tx.Model(&models.Entry{}).
			Where("id = ?", req.EntryID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Comment created", "comment_id", comment.ID, "entry_id", req.EntryID)
	d := commentToDTO(comment)
	d.Replies = []dto.CommentDTO{}
	return &d, nil
}

// UpdateComment правит текст. Разрешено только автору,
// удаленный комментарий не редактируется.
func (s *commentService) UpdateComment(ctx context.Context, db *gorm.DB, userEmail, commentID string, req *dto.UpdateCommentRequest) (*dto.CommentDTO, error) {
	text := strings.TrimSpace(req.CommentText)
	if n := utf8.RuneCountInString(text); n == 0 || n > maxCommentLength {
		return nil, apperrors.ErrCommentTooLong
	}

	comment, err := s.findLive(db, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserEmail != userEmail {
		return nil, apperrors.NewForbiddenError("Only the author can edit this comment")
	}

	if err := s.commentRepo.UpdateText(db, commentID, text); err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	d := commentToDTO(updated)
	return &d, nil
}

// DeleteComment мягко удаляет комментарий. Разрешено автору и
// редактору. Для top-level комментария флаг каскадируется на ответы,
// а commentCount записи (число top-level комментариев) уменьшается
// ровно на 1, не опускаясь ниже нуля. Удаление ответа счетчик
// не меняет.
func (s *commentService) DeleteComment(ctx context.Context, db *gorm.DB, userEmail string, isEditor bool, commentID string) error {
	comment, err := s.findLive(db, commentID)
	if err != nil {
		return err
	}
	if comment.UserEmail != userEmail && !isEditor {
		return apperrors.NewForbiddenError("Only the author or an editor can delete this comment")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.SoftDelete(tx, commentID); err != nil {
			return err
		}
		if comment.ParentID != nil {
			return nil
		}
		return tx.Model(&models.Entry{}).
			Where("id = ?", comment.EntryID).
			Update("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)")).Error
	})
	if txErr != nil {
		if errors.Is(txErr, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return apperrors.InternalError(txErr)
	}

	logger.CtxInfo(ctx, "Comment deleted", "comment_id", commentID, "by", userEmail)
	return nil
}

// ToggleLike переключает лайк комментария, тот же транзакционный
// паттерн, что и у голосов за записи.
func (s *commentService) ToggleLike(ctx context.Context, db *gorm.DB, userEmail, commentID string) (*dto.CommentLikeResponse, error) {
	if _, err := s.findLive(db, commentID); err != nil {
		return nil, err
	}

	var resp dto.CommentLikeResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		has, err := s.commentRepo.HasLike(tx, commentID, userEmail)
		if err != nil {
			return err
		}

		if has {
			if err := s.commentRepo.DeleteLike(tx, commentID, userEmail); err != nil {
				return err
			}
			if err := s.commentRepo.AdjustLikeCount(tx, commentID, -1); err != nil {
				return err
			}
			resp.Action = "unliked"
			resp.IsLiked = false
		} else {
			if err := s.commentRepo.CreateLike(tx, commentID, userEmail); err != nil {
				return err
			}
			if err := s.commentRepo.AdjustLikeCount(tx, commentID, 1); err != nil {
				return err
			}
			resp.Action = "liked"
			resp.IsLiked = true
		}

		count, err := s.commentRepo.GetLikeCount(tx, commentID)
		if err != nil {
			return err
		}
		resp.Likes = count
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &resp, nil
}

func (s *commentService) findLive(db *gorm.DB, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if comment.IsDeleted {
		return nil, apperrors.ErrCommentNotFound
	}
	return comment, nil
}

func commentToDTO(c *models.Comment) dto.CommentDTO {
	return dto.CommentDTO{
		ID:              c.ID,
		EntryID:         c.EntryID,
		UserEmail:       c.UserEmail,
		ParentCommentID: c.ParentID,
		CommentText:     c.Text,
		Likes:           c.Likes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
