package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type CourseRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error)
	ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID uuid.UUID) ([]*types.Course, error)
	// CreateOrFetch lazily creates the (institution, department, code) course
	// on first use, or returns the existing row under the unique index.
	CreateOrFetch(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
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

func (r *courseRepo) ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID uuid.UUID) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if err := transaction.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) CreateOrFetch(ctx context.Context, tx *gorm.DB, course *types.Course) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "institution_id"}, {Name: "department_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(course).Error; err != nil {
		return nil, err
	}

	var persisted types.Course
	if err := transaction.WithContext(ctx).
		Where("institution_id = ? AND department_id = ? AND code = ?",
			course.InstitutionID, course.DepartmentID, course.Code).
		First(&persisted).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}
