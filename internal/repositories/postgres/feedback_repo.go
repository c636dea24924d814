package postgres

import (
	"context"

	"github.com/Perfect-Cube/Reflex/internal/models"
	"gorm.io/gorm"
)

type FeedbackRepo interface {
	Append(ctx context.Context, fb *models.AgentFeedback) error
	// LatestN returns the most recent feedback entries, newest first.
	LatestN(ctx context.Context, n int) ([]models.AgentFeedback, error)
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepo {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Append(ctx context.Context, fb *models.AgentFeedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepo) LatestN(ctx context.Context, n int) ([]models.AgentFeedback, error) {
	if n <= 0 {
		n = 5
	}
	var rows []models.AgentFeedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}
