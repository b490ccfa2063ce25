package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	moderationrepo "github.com/campushare/campushare-backend/internal/data/repos/moderation"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type SubmitReportInput struct {
	ResourceID uuid.UUID
	ReporterID uuid.UUID
	Reason     string
}

// ResolveAndDeleteResult reports the compound outcome. ResourceDeleted is
// false when the resource was already gone; the report still resolves.
type ResolveAndDeleteResult struct {
	Report          *types.Report `json:"report"`
	ResourceDeleted bool          `json:"resource_deleted"`
}

type ModerationService interface {
	// SubmitReport files a report against a resource, capturing a snapshot of
	// the resource so the report stays reviewable after deletion.
	SubmitReport(ctx context.Context, input SubmitReportInput) (*types.Report, error)
	GetReport(ctx context.Context, id uuid.UUID) (*types.Report, error)
	ListReports(ctx context.Context, institutionID uuid.UUID, status *string) ([]*types.Report, error)
	// Resolve moves a pending report to resolved or rejected. Terminal
	// reports are immutable. The resource is never touched.
	Resolve(ctx context.Context, reportID uuid.UUID, outcome string) (*types.Report, error)
	// ResolveAndDelete resolves the report and hard-deletes the offending
	// resource with its votes and comments, all in one transaction.
	ResolveAndDelete(ctx context.Context, reportID uuid.UUID) (*ResolveAndDeleteResult, error)
}

type moderationService struct {
	db        *gorm.DB
	log       *logger.Logger
	reports   moderationrepo.ReportRepo
	directory DirectoryService
	notifier  *Notifier
}

func NewModerationService(
	db *gorm.DB,
	reports moderationrepo.ReportRepo,
	directory DirectoryService,
	notifier *Notifier,
	baseLog *logger.Logger,
) ModerationService {
	return &moderationService{
		db:        db,
		log:       baseLog.With("service", "ModerationService"),
		reports:   reports,
		directory: directory,
		notifier:  notifier,
	}
}

func (s *moderationService) SubmitReport(ctx context.Context, input SubmitReportInput) (*types.Report, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apierr.Validationf("report reason must not be empty")
	}

	resource, err := s.directory.GetResource(ctx, input.ResourceID)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(types.ResourceSnapshot{
		Title:      resource.Title,
		Type:       resource.Type,
		IsVerified: resource.IsVerified,
		FileURL:    resource.FileURL,
	})
	if err != nil {
		return nil, apierr.Storef(err, "could not capture a snapshot of resource %s", resource.ID)
	}

	created, err := s.reports.Create(ctx, nil, []*types.Report{{
		ResourceID:       resource.ID,
		InstitutionID:    resource.InstitutionID,
		ReporterID:       input.ReporterID,
		Reason:           reason,
		Status:           types.ReportStatusPending,
		ResourceSnapshot: snapshot,
	}})
	if err != nil {
		return nil, apierr.Store(err)
	}
	report := created[0]

	s.notifier.ReportChanged(ctx, report.InstitutionID, report.ID)
	return report, nil
}

func (s *moderationService) GetReport(ctx context.Context, id uuid.UUID) (*types.Report, error) {
	found, err := s.reports.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apierr.Store(err)
	}
	if len(found) == 0 {
		return nil, apierr.NotFoundf("report %s not found", id)
	}
	return found[0], nil
}

func (s *moderationService) ListReports(ctx context.Context, institutionID uuid.UUID, status *string) ([]*types.Report, error) {
	if institutionID == uuid.Nil {
		return nil, apierr.Validationf("institution id is required")
	}
	if status != nil {
		switch *status {
		case types.ReportStatusPending, types.ReportStatusResolved, types.ReportStatusRejected:
		default:
			return nil, apierr.Validationf("unknown report status %q", *status)
		}
	}

	reports, err := s.reports.List(ctx, nil, institutionID, status)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return reports, nil
}

func (s *moderationService) Resolve(ctx context.Context, reportID uuid.UUID, outcome string) (*types.Report, error) {
	if outcome != types.ReportStatusResolved && outcome != types.ReportStatusRejected {
		return nil, apierr.Validationf("outcome must be %q or %q", types.ReportStatusResolved, types.ReportStatusRejected)
	}

	transitioned, err := s.reports.UpdateStatus(ctx, nil, reportID, types.ReportStatusPending, outcome)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if !transitioned {
		report, err := s.GetReport(ctx, reportID)
		if err != nil {
			return nil, err
		}
		return nil, apierr.Conflictf("report %s is already %s", reportID, report.Status)
	}

	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	s.notifier.ReportChanged(ctx, report.InstitutionID, report.ID)
	return report, nil
}

func (s *moderationService) ResolveAndDelete(ctx context.Context, reportID uuid.UUID) (*ResolveAndDeleteResult, error) {
	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var deleted bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transitioned, err := s.reports.UpdateStatus(ctx, tx, reportID, types.ReportStatusPending, types.ReportStatusResolved)
		if err != nil {
			return apierr.Store(err)
		}
		if !transitioned {
			return apierr.Conflictf("report %s is already %s", reportID, report.Status)
		}

		var resource types.Resource
		if err := tx.Where("id = ?", report.ResourceID).First(&resource).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Resource already gone; the resolution still stands.
				return nil
			}
			return apierr.Store(err)
		}

		if err := tx.Where("comment_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).
				Model(&types.Comment{}).
				Select("id").
				Where("resource_id = ?", resource.ID)).
			Delete(&types.CommentVote{}).Error; err != nil {
			return apierr.Store(err)
		}
		if err := tx.Where("resource_id = ?", resource.ID).Delete(&types.Comment{}).Error; err != nil {
			return apierr.Store(err)
		}
		if err := tx.Where("resource_id = ?", resource.ID).Delete(&types.ResourceVote{}).Error; err != nil {
			return apierr.Store(err)
		}
		if err := tx.Where("id = ?", resource.ID).Delete(&types.Resource{}).Error; err != nil {
			return apierr.Store(err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	resolved, err := s.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	s.notifier.ReportChanged(ctx, resolved.InstitutionID, resolved.ID)
	if deleted {
		s.notifier.ResourceChanged(ctx, resolved.InstitutionID, resolved.ResourceID)
	}
	return &ResolveAndDeleteResult{Report: resolved, ResourceDeleted: deleted}, nil
}
