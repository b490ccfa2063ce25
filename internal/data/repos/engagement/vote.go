package engagement

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

// VoteRepo is the raw ledger. Rows are created and deleted, never updated;
// count synchronization is the vote service's job inside one transaction.
type VoteRepo interface {
	CreateResourceVote(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error
	// DeleteResourceVote reports whether a row actually existed.
	DeleteResourceVote(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) (bool, error)
	CountResourceVotes(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (int64, error)
	DeleteVotesByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error

	CreateCommentVote(ctx context.Context, tx *gorm.DB, userID, commentID uuid.UUID) error
	DeleteCommentVote(ctx context.Context, tx *gorm.DB, userID, commentID uuid.UUID) (bool, error)
	CountCommentVotes(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (int64, error)
	DeleteCommentVotesByCommentIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) error
}

type voteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	repoLog := baseLog.With("repo", "VoteRepo")
	return &voteRepo{db: db, log: repoLog}
}

func (r *voteRepo) CreateResourceVote(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	vote := &types.ResourceVote{UserID: userID, ResourceID: resourceID}
	return transaction.WithContext(ctx).Create(vote).Error
}

func (r *voteRepo) DeleteResourceVote(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Delete(&types.ResourceVote{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *voteRepo) CountResourceVotes(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.ResourceVote{}).
		Where("resource_id = ?", resourceID).
		Count(&count).Error
	return count, err
}

func (r *voteRepo) DeleteVotesByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(resourceIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Delete(&types.ResourceVote{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *voteRepo) CreateCommentVote(ctx context.Context, tx *gorm.DB, userID, commentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	vote := &types.CommentVote{UserID: userID, CommentID: commentID}
	return transaction.WithContext(ctx).Create(vote).Error
}

func (r *voteRepo) DeleteCommentVote(ctx context.Context, tx *gorm.DB, userID, commentID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&types.CommentVote{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *voteRepo) CountCommentVotes(ctx context.Context, tx *gorm.DB, commentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.CommentVote{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *voteRepo) DeleteCommentVotesByCommentIDs(ctx context.Context, tx *gorm.DB, commentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(commentIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Delete(&types.CommentVote{}).Error; err != nil {
		return err
	}
	return nil
}
