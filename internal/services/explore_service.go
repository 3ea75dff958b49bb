package services

import (
	"context"
	"errors"
	"math/rand"

	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"
	"benchracers_backend/internal/services/dto"
	"benchracers_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
	rankingsLimit    = 25
)

// ExploreService - публичная лента, голоса, жалобы и статистика
type ExploreService interface {
	GetFeed(ctx context.Context, db *gorm.DB, viewerEmail string, req *dto.FeedRequest) (*dto.FeedResponse, error)
	ToggleUpvote(ctx context.Context, db *gorm.DB, userEmail, entryID string) (*dto.LikeResponse, error)
	ReportEntry(ctx context.Context, db *gorm.DB, userEmail string, req *dto.ReportRequest) error
	GetStats(ctx context.Context, db *gorm.DB, userEmail string) (*dto.StatsResponse, error)
	GetRankings(ctx context.Context, db *gorm.DB) (*dto.RankingsResponse, error)
}

type exploreService struct {
	entryRepo   repositories.EntryRepository
	commentRepo repositories.CommentRepository
	reportRepo  repositories.ReportRepository
}

func NewExploreService(
	entryRepo repositories.EntryRepository,
	commentRepo repositories.CommentRepository,
	reportRepo repositories.ReportRepository,
) ExploreService {
	return &exploreService{
		entryRepo:   entryRepo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
	}
}

// GetFeed отдает окно ленты со случайным смещением. Кандидаты -
// записи верифицированных владельцев, кроме собственных записей
// просматривающего и ID из swipedCars/likedCars. Окно выбирается
// по случайному offset в [0, max(0, total-limit)] со стабильным
// порядком по первичному ключу.
func (s *exploreService) GetFeed(ctx context.Context, db *gorm.DB, viewerEmail string, req *dto.FeedRequest) (*dto.FeedResponse, error) {
	limit := req.Limit
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	exclude := make([]string, 0, len(req.SwipedCars)+len(req.LikedCars))
	exclude = append(exclude, req.SwipedCars...)
	exclude = append(exclude, req.LikedCars...)

	filter := repositories.FeedFilter{
		ViewerEmail: viewerEmail,
		ExcludeIDs:  exclude,
		Region:      req.Region,
		Category:    req.Category,
	}

	total, err := s.entryRepo.CountCandidates(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if total == 0 {
		return &dto.FeedResponse{Cars: []dto.FeedCar{}, Count: 0}, nil
	}

	maxOffset := int(total) - limit
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := 0
	if maxOffset > 0 {
		offset = rand.Intn(maxOffset + 1)
	}

	rows, err := s.entryRepo.FindWindow(db, filter, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Entry.ID
	}

	photos, err := s.entryRepo.FindPhotosByEntryIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	tags, err := s.entryRepo.FindTagsByEntryIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	mods, err := s.entryRepo.FindModsByEntryIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cars := make([]dto.FeedCar, len(rows))
	for i, r := range rows {
		cars[i] = dto.FeedCar{
			Entry:      r.Entry,
			HasUpvoted: r.HasUpvoted,
			Photos:     orEmptyPhotos(photos[r.Entry.ID]),
			Tags:       orEmptyTags(tags[r.Entry.ID]),
			Mods:       orEmptyMods(mods[r.Entry.ID]),
		}
	}

	return &dto.FeedResponse{Cars: cars, Count: len(cars)}, nil
}

// ToggleUpvote переключает голос пользователя. Вставка/удаление
// join-строки и коррекция счетчика выполняются в одной транзакции,
// счетчик не опускается ниже нуля.
func (s *exploreService) ToggleUpvote(ctx context.Context, db *gorm.DB, userEmail, entryID string) (*dto.LikeResponse, error) {
	if _, err := s.entryRepo.FindByID(db, entryID); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	var resp dto.LikeResponse
	err := db.Transaction(func(tx *gorm.DB) error {
		has, err := s.entryRepo.HasUpvote(tx, entryID, userEmail)
		if err != nil {
			return err
		}

		if has {
			if err := s.entryRepo.DeleteUpvote(tx, entryID, userEmail); err != nil {
				return err
			}
			if err := s.entryRepo.AdjustUpvoteCount(tx, entryID, -1); err != nil {
				return err
			}
			resp.Action = "unupvoted"
			resp.HasUpvoted = false
		} else {
			if err := s.entryRepo.CreateUpvote(tx, entryID, userEmail); err != nil {
				return err
			}
			if err := s.entryRepo.AdjustUpvoteCount(tx, entryID, 1); err != nil {
				return err
			}
			resp.Action = "upvoted"
			resp.HasUpvoted = true
		}

		count, err := s.entryRepo.GetUpvoteCount(tx, entryID)
		if err != nil {
			return err
		}
		resp.Upvotes = count
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Upvote toggled", "entry_id", entryID, "action", resp.Action)
	return &resp, nil
}

func (s *exploreService) ReportEntry(ctx context.Context, db *gorm.DB, userEmail string, req *dto.ReportRequest) error {
	if _, err := s.entryRepo.FindByID(db, req.CarID); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return apperrors.ErrEntryNotFound
		}
		return apperrors.InternalError(err)
	}

	report := &models.Report{
		EntryID:       req.CarID,
		ReporterEmail: userEmail,
		Reason:        req.Reason,
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxWarn(ctx, "Entry reported", "entry_id", req.CarID, "reporter", userEmail)
	return nil
}

func (s *exploreService) GetStats(ctx context.Context, db *gorm.DB, userEmail string) (*dto.StatsResponse, error) {
	entries, err := s.entryRepo.CountByOwner(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	received, err := s.entryRepo.SumUpvotesReceived(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	given, err := s.entryRepo.CountUpvotesGiven(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	comments, err := s.commentRepo.CountByAuthor(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.StatsResponse{
		TotalEntries:    entries,
		UpvotesReceived: received,
		UpvotesGiven:    given,
		CommentsWritten: comments,
	}, nil
}

func (s *exploreService) GetRankings(ctx context.Context, db *gorm.DB) (*dto.RankingsResponse, error) {
	entries, err := s.entryRepo.TopByUpvotes(db, rankingsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rankings := make([]dto.RankingEntry, len(entries))
	for i, e := range entries {
		rankings[i] = dto.RankingEntry{Rank: i + 1, Entry: e}
	}
	return &dto.RankingsResponse{Rankings: rankings}, nil
}
