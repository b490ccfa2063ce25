package tenant

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type InstitutionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, institutions []*types.Institution) ([]*types.Institution, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Institution, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Institution, error)
}

type institutionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstitutionRepo(db *gorm.DB, baseLog *logger.Logger) InstitutionRepo {
	repoLog := baseLog.With("repo", "InstitutionRepo")
	return &institutionRepo{db: db, log: repoLog}
}

func (r *institutionRepo) Create(ctx context.Context, tx *gorm.DB, institutions []*types.Institution) ([]*types.Institution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(institutions) == 0 {
		return []*types.Institution{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&institutions).Error; err != nil {
		return nil, err
	}
	return institutions, nil
}

func (r *institutionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Institution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Institution
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

func (r *institutionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Institution, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Institution
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
