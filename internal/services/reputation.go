package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	reputationrepo "github.com/campushare/campushare-backend/internal/data/repos/reputation"
	tenantrepo "github.com/campushare/campushare-backend/internal/data/repos/tenant"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

const recomputeConcurrency = 4

type ReputationService interface {
	// ComputeScores rebuilds an institution's contributor scores from the raw
	// contribution data and returns the resulting leaderboard.
	ComputeScores(ctx context.Context, institutionID uuid.UUID) ([]*types.ContributorScore, error)
	Leaderboard(ctx context.Context, institutionID uuid.UUID) ([]*types.ContributorScore, error)
	// RankOf returns the user's 1-based leaderboard position, or nil when the
	// user has no score row.
	RankOf(ctx context.Context, userID, institutionID uuid.UUID) (*int, error)
	// RecomputeAll refreshes every institution's scores, a few at a time.
	RecomputeAll(ctx context.Context) error
}

type reputationService struct {
	db           *gorm.DB
	log          *logger.Logger
	scores       reputationrepo.ContributorScoreRepo
	institutions tenantrepo.InstitutionRepo
	weights      types.ScoreWeights
}

func NewReputationService(
	db *gorm.DB,
	scores reputationrepo.ContributorScoreRepo,
	institutions tenantrepo.InstitutionRepo,
	weights types.ScoreWeights,
	baseLog *logger.Logger,
) ReputationService {
	return &reputationService{
		db:           db,
		log:          baseLog.With("service", "ReputationService"),
		scores:       scores,
		institutions: institutions,
		weights:      weights,
	}
}

func (s *reputationService) ComputeScores(ctx context.Context, institutionID uuid.UUID) ([]*types.ContributorScore, error) {
	if institutionID == uuid.Nil {
		return nil, apierr.Validationf("institution id is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		uploads, err := s.scores.AggregateUploads(ctx, tx, institutionID)
		if err != nil {
			return err
		}
		comments, err := s.scores.AggregateComments(ctx, tx, institutionID)
		if err != nil {
			return err
		}

		byUser := make(map[uuid.UUID]*types.ContributorScore, len(uploads))
		for _, u := range uploads {
			byUser[u.UserID] = &types.ContributorScore{
				UserID:          u.UserID,
				InstitutionID:   institutionID,
				UploadCount:     u.UploadCount,
				ResourceUpvotes: u.ResourceUpvotes,
			}
		}
		for _, c := range comments {
			row, ok := byUser[c.UserID]
			if !ok {
				row = &types.ContributorScore{UserID: c.UserID, InstitutionID: institutionID}
				byUser[c.UserID] = row
			}
			row.CommentUpvotes = c.CommentUpvotes
		}

		now := time.Now().UTC()
		rows := make([]*types.ContributorScore, 0, len(byUser))
		for _, row := range byUser {
			row.Score = s.weights.ScoreOf(row.UploadCount, row.ResourceUpvotes, row.CommentUpvotes)
			row.ComputedAt = now
			rows = append(rows, row)
		}

		// Full rebuild: drop rows for users whose contributions vanished.
		if err := s.scores.DeleteByInstitution(ctx, tx, institutionID); err != nil {
			return err
		}
		return s.scores.UpsertAll(ctx, tx, rows)
	})
	if err != nil {
		return nil, apierr.Store(err)
	}

	return s.Leaderboard(ctx, institutionID)
}

func (s *reputationService) Leaderboard(ctx context.Context, institutionID uuid.UUID) ([]*types.ContributorScore, error) {
	if institutionID == uuid.Nil {
		return nil, apierr.Validationf("institution id is required")
	}
	rows, err := s.scores.ListByInstitution(ctx, nil, institutionID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return rows, nil
}

func (s *reputationService) RankOf(ctx context.Context, userID, institutionID uuid.UUID) (*int, error) {
	if _, err := s.scores.Get(ctx, nil, userID, institutionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apierr.Store(err)
	}

	// Walk the leaderboard order so ties rank exactly as they are listed.
	rows, err := s.scores.ListByInstitution(ctx, nil, institutionID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	for i, row := range rows {
		if row.UserID == userID {
			rank := i + 1
			return &rank, nil
		}
	}
	return nil, nil
}

func (s *reputationService) RecomputeAll(ctx context.Context) error {
	institutions, err := s.institutions.List(ctx, nil)
	if err != nil {
		return apierr.Store(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)
	for _, inst := range institutions {
		g.Go(func() error {
			if _, err := s.ComputeScores(gctx, inst.ID); err != nil {
				s.log.Error("Failed to recompute scores", "institutionID", inst.ID, "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
