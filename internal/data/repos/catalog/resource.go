package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

// Directory sort modes.
const (
	SortNewest  = "newest"
	SortPopular = "popular"
)

// ResourceFilter scopes a directory query. InstitutionID is mandatory and
// enforced by the service; the repo trusts it is set. When DepartmentID is
// set the result is the union of that department's resources and resources
// whose course code carries one of GenEdPrefixes (institution-wide courses).
type ResourceFilter struct {
	InstitutionID uuid.UUID
	DepartmentID  *uuid.UUID
	Level         *int
	Session       *string
	Type          *string
	Sort          string
	GenEdPrefixes []string
}

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error)
	List(ctx context.Context, tx *gorm.DB, filter ResourceFilter) ([]*types.Resource, error)
	SetVerified(ctx context.Context, tx *gorm.DB, id uuid.UUID, verified bool) error
	UpdateType(ctx context.Context, tx *gorm.DB, id uuid.UUID, resourceType string) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	repoLog := baseLog.With("repo", "ResourceRepo")
	return &resourceRepo{db: db, log: repoLog}
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(resources) == 0 {
		return []*types.Resource{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Resource
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Course").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) List(ctx context.Context, tx *gorm.DB, filter ResourceFilter) ([]*types.Resource, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.Resource{}).
		Preload("Course").
		Where("resources.institution_id = ?", filter.InstitutionID)

	if filter.DepartmentID != nil {
		if len(filter.GenEdPrefixes) > 0 {
			genEd := transaction.Session(&gorm.Session{NewDB: true}).
				Model(&types.Course{}).
				Select("id").
				Where("institution_id = ?", filter.InstitutionID)
			prefixScope := transaction.Session(&gorm.Session{NewDB: true}).Model(&types.Course{})
			for i, prefix := range filter.GenEdPrefixes {
				if i == 0 {
					prefixScope = prefixScope.Where("code LIKE ?", prefix+"%")
				} else {
					prefixScope = prefixScope.Or("code LIKE ?", prefix+"%")
				}
			}
			genEd = genEd.Where(prefixScope)
			q = q.Where("resources.department_id = ? OR resources.course_id IN (?)", *filter.DepartmentID, genEd)
		} else {
			q = q.Where("resources.department_id = ?", *filter.DepartmentID)
		}
	}
	if filter.Level != nil {
		q = q.Where("resources.level = ?", *filter.Level)
	}
	if filter.Session != nil {
		q = q.Where("resources.session = ?", *filter.Session)
	}
	if filter.Type != nil {
		q = q.Where("resources.type = ?", *filter.Type)
	}

	switch filter.Sort {
	case SortPopular:
		q = q.Order("resources.upvotes_count DESC").
			Order("resources.created_at DESC").
			Order("resources.id DESC")
	default:
		q = q.Order("resources.created_at DESC").
			Order("resources.id DESC")
	}

	var results []*types.Resource
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceRepo) SetVerified(ctx context.Context, tx *gorm.DB, id uuid.UUID, verified bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Resource{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *resourceRepo) UpdateType(ctx context.Context, tx *gorm.DB, id uuid.UUID, resourceType string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Resource{}).
		Where("id = ?", id).
		Update("type", resourceType)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *resourceRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Resource{}).Error; err != nil {
		return err
	}
	return nil
}
