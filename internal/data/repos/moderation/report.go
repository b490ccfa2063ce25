package moderation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type ReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Report, error)
	List(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID, status *string) ([]*types.Report, error)
	// UpdateStatus transitions only rows still in fromStatus and reports
	// whether the transition happened.
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, fromStatus, toStatus string) (bool, error)
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	repoLog := baseLog.With("repo", "ReportRepo")
	return &reportRepo{db: db, log: repoLog}
}

func (r *reportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.Report) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reports) == 0 {
		return []*types.Report{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Report
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reportRepo) List(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID, status *string) ([]*types.Report, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("institution_id = ?", institutionID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var results []*types.Report
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reportRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, fromStatus, toStatus string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Report{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
