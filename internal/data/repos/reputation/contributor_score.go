package reputation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

// UploadAggregate is one uploader's raw directory contribution within an
// institution.
type UploadAggregate struct {
	UserID          uuid.UUID
	UploadCount     int
	ResourceUpvotes int
}

// CommentAggregate is one author's received comment upvotes within an
// institution.
type CommentAggregate struct {
	UserID         uuid.UUID
	CommentUpvotes int
}

type ContributorScoreRepo interface {
	AggregateUploads(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]UploadAggregate, error)
	AggregateComments(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]CommentAggregate, error)
	UpsertAll(ctx context.Context, tx *gorm.DB, scores []*types.ContributorScore) error
	ListByInstitution(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]*types.ContributorScore, error)
	Get(ctx context.Context, tx *gorm.DB, userID, institutionID uuid.UUID) (*types.ContributorScore, error)
	DeleteByInstitution(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) error
}

type contributorScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContributorScoreRepo(db *gorm.DB, baseLog *logger.Logger) ContributorScoreRepo {
	repoLog := baseLog.With("repo", "ContributorScoreRepo")
	return &contributorScoreRepo{db: db, log: repoLog}
}

func (r *contributorScoreRepo) AggregateUploads(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]UploadAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []UploadAggregate
	err := transaction.WithContext(ctx).
		Model(&types.Resource{}).
		Select("uploader_id AS user_id, COUNT(*) AS upload_count, COALESCE(SUM(upvotes_count), 0) AS resource_upvotes").
		Where("institution_id = ?", institutionID).
		Group("uploader_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contributorScoreRepo) AggregateComments(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]CommentAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []CommentAggregate
	err := transaction.WithContext(ctx).
		Model(&types.Comment{}).
		Select("comments.author_id AS user_id, COALESCE(SUM(comments.upvotes_count), 0) AS comment_upvotes").
		Joins("JOIN resources ON resources.id = comments.resource_id").
		Where("resources.institution_id = ?", institutionID).
		Group("comments.author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contributorScoreRepo) UpsertAll(ctx context.Context, tx *gorm.DB, scores []*types.ContributorScore) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(scores) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "institution_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"upload_count", "resource_upvotes", "comment_upvotes", "score", "computed_at",
			}),
		}).
		Create(&scores).Error
}

func (r *contributorScoreRepo) ListByInstitution(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) ([]*types.ContributorScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContributorScore
	if err := transaction.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("score DESC").
		Order("upload_count DESC").
		Order("user_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contributorScoreRepo) Get(ctx context.Context, tx *gorm.DB, userID, institutionID uuid.UUID) (*types.ContributorScore, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var score types.ContributorScore
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND institution_id = ?", userID, institutionID).
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *contributorScoreRepo) DeleteByInstitution(ctx context.Context, tx *gorm.DB, institutionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Delete(&types.ContributorScore{}).Error; err != nil {
		return err
	}
	return nil
}
