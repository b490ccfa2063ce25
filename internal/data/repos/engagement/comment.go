package engagement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type CommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comments []*types.Comment) ([]*types.Comment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Comment, error)
	ListByResource(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) ([]*types.Comment, error)
	DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	repoLog := baseLog.With("repo", "CommentRepo")
	return &commentRepo{db: db, log: repoLog}
}

func (r *commentRepo) Create(ctx context.Context, tx *gorm.DB, comments []*types.Comment) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(comments) == 0 {
		return []*types.Comment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Comment
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

func (r *commentRepo) ListByResource(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) ([]*types.Comment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Comment
	if err := transaction.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *commentRepo) DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(resourceIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Delete(&types.Comment{}).Error; err != nil {
		return err
	}
	return nil
}
