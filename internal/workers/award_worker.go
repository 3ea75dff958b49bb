package workers

import (
	"context"
	"time"

	"benchracers_backend/internal/logger"
	"benchracers_backend/internal/models"
	"benchracers_backend/internal/repositories"

	"gorm.io/gorm"
)

type AwardWorker struct {
	db        *gorm.DB
	awardRepo repositories.AwardRepository
}

func NewAwardWorker(db *gorm.DB, awardRepo repositories.AwardRepository) *AwardWorker {
	return &AwardWorker{db: db, awardRepo: awardRepo}
}

// Start запускает фоновые задачи наград и очистки
func (w *AwardWorker) Start(ctx context.Context) {
	// Выдача milestone-наград каждые 15 минут
	go w.grantMilestoneAwards(ctx)

	// Очистка истекших reset-токенов каждый час
	go w.cleanExpiredResetTokens(ctx)
}

// grantMilestoneAwards выдает награды за пороги активности.
// Награды идемпотентны: повторная проверка ничего не дублирует.
func (w *AwardWorker) grantMilestoneAwards(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Award worker stopped")
			return
		case <-ticker.C:
			w.runMilestonePass()
		}
	}
}

func (w *AwardWorker) runMilestonePass() {
	milestones := []struct {
		awardType models.AwardType
		query     string
	}{
		{
			models.AwardFirstEntry,
			`SELECT u.email FROM users u
			 WHERE EXISTS (SELECT 1 FROM entries e WHERE e.user_email = u.email)`,
		},
		{
			models.AwardTenUpvotes,
			`SELECT u.email FROM users u
			 WHERE (SELECT COALESCE(SUM(e.upvotes), 0) FROM entries e WHERE e.user_email = u.email) >= 10`,
		},
		{
			models.AwardHundredUpvotes,
			`SELECT u.email FROM users u
			 WHERE (SELECT COALESCE(SUM(e.upvotes), 0) FROM entries e WHERE e.user_email = u.email) >= 100`,
		},
	}

	for _, m := range milestones {
		var emails []string
		if err := w.db.Raw(m.query).Scan(&emails).Error; err != nil {
			logger.WorkerLog("award", "milestone query", err)
			continue
		}

		granted := 0
		for _, email := range emails {
			has, err := w.awardRepo.HasAward(w.db, email, m.awardType)
			if err != nil || has {
				continue
			}
			award := &models.Award{
				UserEmail: email,
				AwardType: m.awardType,
				AwardDate: time.Now(),
			}
			if err := w.awardRepo.Create(w.db, award); err != nil {
				logger.WorkerLog("award", "grant award", err)
				continue
			}
			granted++
		}
		if granted > 0 {
			logger.Info("Milestone awards granted", "award_type", string(m.awardType), "count", granted)
		}
	}
}

// cleanExpiredResetTokens гасит просроченные токены сброса пароля
func (w *AwardWorker) cleanExpiredResetTokens(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reset token cleaner stopped")
			return
		case <-ticker.C:
			result := w.db.Exec(`
				UPDATE users
				SET reset_token = '', reset_token_exp = NULL
				WHERE reset_token_exp IS NOT NULL
				AND reset_token_exp < NOW()
			`)
			if result.Error != nil {
				logger.WorkerLog("award", "clean reset tokens", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Expired reset tokens cleaned", "count", result.RowsAffected)
			}
		}
	}
}
