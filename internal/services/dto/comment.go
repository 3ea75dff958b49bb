package dto

import (
	"time"
)

// CreateCommentRequest - создание комментария или ответа.
// Длину текста после trim проверяет сервис: границы 1..1000.
type CreateCommentRequest struct {
	EntryID         string  `json:"entryId" binding:"required"`
	CommentText     string  `json:"commentText" binding:"required"`
	ParentCommentID *string `json:"parentCommentId"`
}

// UpdateCommentRequest - правка текста автором
type UpdateCommentRequest struct {
	CommentText string `json:"commentText" binding:"required"`
}

// CommentDTO - комментарий с аннотациями для текущего пользователя
type CommentDTO struct {
	ID              string       `json:"id"`
	EntryID         string       `json:"entryId"`
	UserEmail       string       `json:"userEmail"`
	ParentCommentID *string      `json:"parentCommentId,omitempty"`
	CommentText     string       `json:"commentText"`
	Likes           int          `json:"likes"`
	IsLiked         bool         `json:"isLiked"`
	ReplyCount      int64        `json:"replyCount"`
	Replies         []CommentDTO `json:"replies,omitempty"`
	HasMoreReplies  bool         `json:"hasMoreReplies"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// CommentListResponse - страница top-level комментариев
type CommentListResponse struct {
	Comments []CommentDTO `json:"comments"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
}

// CommentLikeResponse - результат переключения лайка
type CommentLikeResponse struct {
	Action  string `json:"action"` // "liked" | "unliked"
	Likes   int    `json:"likes"`
	IsLiked bool   `json:"isLiked"`
}
