package dto

import (
	"benchracers_backend/internal/models"
)

// FeedRequest - тело POST /api/explore/cars.
// swipedCars и likedCars - это ID, которые клиент уже показывал
// в текущей сессии; они исключаются из выборки.
type FeedRequest struct {
	SwipedCars []string        `json:"swipedCars"`
	LikedCars  []string        `json:"likedCars"`
	Limit      int             `json:"limit"`
	Region     models.Region   `json:"region" binding:"omitempty" validate:"is-region"`
	Category   models.Category `json:"category" binding:"omitempty" validate:"is-category"`
}

// FeedCar - запись ленты, обогащенная фото, тегами и модами
type FeedCar struct {
	models.Entry
	HasUpvoted bool                `json:"hasUpvoted"`
	Photos     []models.EntryPhoto `json:"photos"`
	Tags       []models.Tag        `json:"tags"`
	Mods       []models.Mod        `json:"mods"`
}

// FeedResponse - ответ ленты
type FeedResponse struct {
	Cars  []FeedCar `json:"cars"`
	Count int       `json:"count"`
}

// LikeRequest - тело POST /api/explore/like
type LikeRequest struct {
	CarID string `json:"carId" binding:"required"`
}

// LikeResponse - результат переключения голоса
type LikeResponse struct {
	Action     string `json:"action"` // "upvoted" | "unupvoted"
	Upvotes    int    `json:"upvotes"`
	HasUpvoted bool   `json:"hasUpvoted"`
}

// ReportRequest - жалоба на запись
type ReportRequest struct {
	CarID  string `json:"carId" binding:"required"`
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// StatsResponse - статистика текущего пользователя
type StatsResponse struct {
	TotalEntries    int64 `json:"totalEntries"`
	UpvotesReceived int64 `json:"upvotesReceived"`
	UpvotesGiven    int64 `json:"upvotesGiven"`
	CommentsWritten int64 `json:"commentsWritten"`
}

// RankingEntry - позиция в топе
type RankingEntry struct {
	Rank  int          `json:"rank"`
	Entry models.Entry `json:"entry"`
}

// RankingsResponse - топ записей по голосам
type RankingsResponse struct {
	Rankings []RankingEntry `json:"rankings"`
}
