package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Perfect-Cube/Reflex/internal/models"
	"github.com/Perfect-Cube/Reflex/internal/utils"
	"gorm.io/gorm"
)

type ReportRepo interface {
	// Create inserts the report; a second insert for the same interview fails
	// with ErrDuplicate (backed by the unique index on interview_id).
	Create(ctx context.Context, rep *models.Report) error
	GetByInterview(ctx context.Context, interviewID string) (*models.Report, error)
}

var ErrDuplicate = errors.New("report already exists")

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *models.Report) error {
	err := r.db.WithContext(ctx).Create(rep).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *reportRepo) GetByInterview(ctx context.Context, interviewID string) (*models.Report, error) {
	var row models.Report
	err := r.db.WithContext(ctx).Where("interview_id = ?", interviewID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx "23505" / sqlite "UNIQUE constraint failed" without driver-specific imports
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "duplicate key")
}
