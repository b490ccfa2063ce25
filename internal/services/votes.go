package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	engagementrepo "github.com/campushare/campushare-backend/internal/data/repos/engagement"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

// ToggleResult is the post-toggle state: whether the caller's vote now exists
// and the target's count read back in the same transaction.
type ToggleResult struct {
	Voted    bool `json:"voted"`
	NewCount int  `json:"new_count"`
}

type VoteService interface {
	// ToggleResourceVote flips the caller's vote on a resource. The vote row
	// and the denormalized count move together in one transaction, so the
	// count always equals the number of ledger rows. Toggling twice restores
	// the original state.
	ToggleResourceVote(ctx context.Context, userID, resourceID uuid.UUID) (*ToggleResult, error)
	ToggleCommentVote(ctx context.Context, userID, commentID uuid.UUID) (*ToggleResult, error)
}

type voteService struct {
	db       *gorm.DB
	log      *logger.Logger
	votes    engagementrepo.VoteRepo
	notifier *Notifier
}

func NewVoteService(db *gorm.DB, votes engagementrepo.VoteRepo, notifier *Notifier, baseLog *logger.Logger) VoteService {
	return &voteService{
		db:       db,
		log:      baseLog.With("service", "VoteService"),
		votes:    votes,
		notifier: notifier,
	}
}

func (s *voteService) ToggleResourceVote(ctx context.Context, userID, resourceID uuid.UUID) (*ToggleResult, error) {
	var result ToggleResult
	var institutionID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resource types.Resource
		if err := tx.Where("id = ?", resourceID).First(&resource).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFoundf("resource %s not found", resourceID)
			}
			return apierr.Store(err)
		}
		institutionID = resource.InstitutionID

		existed, err := s.votes.DeleteResourceVote(ctx, tx, userID, resourceID)
		if err != nil {
			return apierr.Store(err)
		}
		delta := 1
		if existed {
			delta = -1
		} else if err := s.votes.CreateResourceVote(ctx, tx, userID, resourceID); err != nil {
			return apierr.Store(err)
		}

		if err := tx.Model(&types.Resource{}).
			Where("id = ?", resourceID).
			UpdateColumn("upvotes_count", gorm.Expr("upvotes_count + ?", delta)).Error; err != nil {
			return apierr.Store(err)
		}

		var updated types.Resource
		if err := tx.Select("upvotes_count").Where("id = ?", resourceID).First(&updated).Error; err != nil {
			return apierr.Store(err)
		}
		result = ToggleResult{Voted: !existed, NewCount: updated.UpvotesCount}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ResourceChanged(ctx, institutionID, resourceID)
	return &result, nil
}

func (s *voteService) ToggleCommentVote(ctx context.Context, userID, commentID uuid.UUID) (*ToggleResult, error) {
	var result ToggleResult
	var institutionID, resourceID uuid.UUID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment types.Comment
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFoundf("comment %s not found", commentID)
			}
			return apierr.Store(err)
		}

		var resource types.Resource
		if err := tx.Where("id = ?", comment.ResourceID).First(&resource).Error; err == nil {
			institutionID = resource.InstitutionID
			resourceID = resource.ID
		}

		existed, err := s.votes.DeleteCommentVote(ctx, tx, userID, commentID)
		if err != nil {
			return apierr.Store(err)
		}
		delta := 1
		if existed {
			delta = -1
		} else if err := s.votes.CreateCommentVote(ctx, tx, userID, commentID); err != nil {
			return apierr.Store(err)
		}

		if err := tx.Model(&types.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("upvotes_count", gorm.Expr("upvotes_count + ?", delta)).Error; err != nil {
			return apierr.Store(err)
		}

		var updated types.Comment
		if err := tx.Select("upvotes_count").Where("id = ?", commentID).First(&updated).Error; err != nil {
			return apierr.Store(err)
		}
		result = ToggleResult{Voted: !existed, NewCount: updated.UpvotesCount}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if institutionID != uuid.Nil {
		s.notifier.ResourceChanged(ctx, institutionID, resourceID)
	}
	return &result, nil
}
