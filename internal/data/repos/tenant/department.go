package tenant

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type DepartmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, departments []*types.Department) ([]*types.Department, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Department, error)
	ListLocal(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]*types.Department, error)
	ListGlobal(ctx context.Context, tx *gorm.DB) ([]*types.Department, error)
	// CreateOrFetch inserts a local department under the (institution_id,
	// name) unique index, or returns the existing row when another writer got
	// there first. Single atomic primitive, not check-then-insert.
	CreateOrFetch(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID, name string) (*types.Department, error)
}

type departmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDepartmentRepo(db *gorm.DB, baseLog *logger.Logger) DepartmentRepo {
	repoLog := baseLog.With("repo", "DepartmentRepo")
	return &departmentRepo{db: db, log: repoLog}
}

func (r *departmentRepo) Create(ctx context.Context, tx *gorm.DB, departments []*types.Department) ([]*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(departments) == 0 {
		return []*types.Department{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Department
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

func (r *departmentRepo) ListLocal(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Department
	if err := transaction.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *departmentRepo) ListGlobal(ctx context.Context, tx *gorm.DB) ([]*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Department
	if err := transaction.WithContext(ctx).
		Where("institution_id IS NULL").
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *departmentRepo) CreateOrFetch(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID, name string) (*types.Department, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	dept := &types.Department{
		ID:            uuid.New(),
		InstitutionID: &institutionID,
		Name:          name,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "institution_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(dept).Error; err != nil {
		return nil, err
	}

	// Re-select: on conflict the insert was a no-op and dept.ID is not the
	// persisted row's id.
	var persisted types.Department
	if err := transaction.WithContext(ctx).
		Where("institution_id = ? AND name = ?", institutionID, name).
		First(&persisted).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}
