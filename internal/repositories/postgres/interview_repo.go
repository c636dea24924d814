package postgres

import (
	"context"
	"errors"

	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/utils"
	"gorm.io/gorm"
)

type InterviewRepo interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	List(ctx context.Context) ([]models.Interview, error)
	SetStatus(ctx context.Context, id, status string) error
	// IncrementWarnings bumps the warning count atomically and returns the new
	// total. It only matches rows still in "started" status, so a warning can
	// never be recorded on a terminated interview; recorded=false means the
	// interview is gone or already terminal.
	IncrementWarnings(ctx context.Context, id string) (count int, recorded bool, err error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepo {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	return r.db.WithContext(ctx).Create(iv).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var row models.Interview
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *interviewRepo) List(ctx context.Context) ([]models.Interview, error) {
	var rows []models.Interview
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) SetStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) IncrementWarnings(ctx context.Context, id string) (int, bool, error) {
	var counts []int
	err := r.db.WithContext(ctx).
		Raw(`UPDATE interviews SET warnings = warnings + 1 WHERE id = ? AND status = ? RETURNING warnings`,
			id, models.StatusStarted).
		Scan(&counts).Error
	if err != nil {
		return 0, false, err
	}
	if len(counts) == 0 {
		return 0, false, nil
	}
	return counts[0], true, nil
}
