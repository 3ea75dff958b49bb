package models

import "time"

// Comment - комментарий к записи, один уровень вложенности.
// Удаление мягкое; у удаленного top-level комментария флаг
// каскадируется на ответы, чтобы не оставались сироты.
type Comment struct {
	BaseModel
	EntryID   string  `gorm:"not null;index" json:"entryId"`
	UserEmail string  `gorm:"not null;index" json:"userEmail"`
	ParentID  *string `gorm:"type:uuid;index" json:"parentCommentId"`
	Text      string  `gorm:"type:text;not null" json:"commentText"`
	IsDeleted bool    `gorm:"default:false;index" json:"isDeleted"`

	// Кэш числа лайков; источник истины - comment_likes
	Likes int `gorm:"default:0" json:"likes"`

	Replies  []Comment     `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
	LikeRows []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

// CommentLike - join-строка (commentID, userEmail), тот же
// паттерн кэшированного счетчика, что и EntryUpvote.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID string    `gorm:"not null;uniqueIndex:idx_comment_like" json:"commentId"`
	UserEmail string    `gorm:"not null;uniqueIndex:idx_comment_like" json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
}
