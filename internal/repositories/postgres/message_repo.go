package postgres

import (
	"context"

	"github.com/Perfect-Cube/Reflex/internal/models"
	"gorm.io/gorm"
)

type MessageRepo interface {
	Append(ctx context.Context, msg *models.Message) error
	ListByInterview(ctx context.Context, interviewID string) ([]models.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Append(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByInterview returns the conversation in insertion order.
func (r *messageRepo) ListByInterview(ctx context.Context, interviewID string) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
