package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/campushare/campushare-backend/internal/data/repos/catalog"
	engagementrepo "github.com/campushare/campushare-backend/internal/data/repos/engagement"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/domain/catalog"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/requestdata"
)

// DirectoryQuery scopes a directory listing. InstitutionID is mandatory; a
// query without it fails closed rather than leaking cross-tenant rows.
type DirectoryQuery struct {
	InstitutionID uuid.UUID
	DepartmentID  *uuid.UUID
	Level         *int
	Session       *string
	Type          *string
	Sort          string
}

type CreateResourceInput struct {
	InstitutionID uuid.UUID
	UploaderID    uuid.UUID
	Department    DepartmentSelection
	CourseCode    string
	CourseTitle   string
	Title         string
	Type          string
	Level         int
	Session       string
	FileURL       string
}

type DirectoryService interface {
	Query(ctx context.Context, q DirectoryQuery) ([]*types.Resource, error)
	// CreateResource resolves the department selection, lazily creates the
	// course on first use, and inserts the resource.
	CreateResource(ctx context.Context, input CreateResourceInput) (*types.Resource, error)
	GetResource(ctx context.Context, id uuid.UUID) (*types.Resource, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	UpdateType(ctx context.Context, id uuid.UUID, resourceType string) error
	// DeleteResource removes the resource and everything hanging off it
	// (votes, comments, comment votes) in one transaction. Only the uploader
	// or a moderator may delete.
	DeleteResource(ctx context.Context, id uuid.UUID, viewer *requestdata.RequestData) error

	ListComments(ctx context.Context, resourceID uuid.UUID) ([]*types.Comment, error)
	AddComment(ctx context.Context, resourceID, authorID uuid.UUID, body string) (*types.Comment, error)
}

type directoryService struct {
	db            *gorm.DB
	log           *logger.Logger
	resources     catalogrepo.ResourceRepo
	courses       catalogrepo.CourseRepo
	comments      engagementrepo.CommentRepo
	votes         engagementrepo.VoteRepo
	resolver      DepartmentService
	notifier      *Notifier
	genEdPrefixes []string
}

func NewDirectoryService(
	db *gorm.DB,
	resources catalogrepo.ResourceRepo,
	courses catalogrepo.CourseRepo,
	comments engagementrepo.CommentRepo,
	votes engagementrepo.VoteRepo,
	resolver DepartmentService,
	notifier *Notifier,
	genEdPrefixes []string,
	baseLog *logger.Logger,
) DirectoryService {
	return &directoryService{
		db:            db,
		log:           baseLog.With("service", "DirectoryService"),
		resources:     resources,
		courses:       courses,
		comments:      comments,
		votes:         votes,
		resolver:      resolver,
		notifier:      notifier,
		genEdPrefixes: genEdPrefixes,
	}
}

func (s *directoryService) Query(ctx context.Context, q DirectoryQuery) ([]*types.Resource, error) {
	if q.InstitutionID == uuid.Nil {
		return nil, apierr.Validationf("institution scope is required")
	}
	if q.Type != nil && !catalog.IsValidType(*q.Type) {
		return nil, apierr.Validationf("unknown resource type %q", *q.Type)
	}
	if q.Level != nil && !catalog.IsValidLevel(*q.Level) {
		return nil, apierr.Validationf("unknown level %d", *q.Level)
	}
	switch q.Sort {
	case "", catalogrepo.SortNewest, catalogrepo.SortPopular:
	default:
		return nil, apierr.Validationf("unknown sort %q", q.Sort)
	}

	results, err := s.resources.List(ctx, nil, catalogrepo.ResourceFilter{
		InstitutionID: q.InstitutionID,
		DepartmentID:  q.DepartmentID,
		Level:         q.Level,
		Session:       q.Session,
		Type:          q.Type,
		Sort:          q.Sort,
		GenEdPrefixes: s.genEdPrefixes,
	})
	if err != nil {
		return nil, apierr.Store(err)
	}
	return results, nil
}

func (s *directoryService) CreateResource(ctx context.Context, input CreateResourceInput) (*types.Resource, error) {
	if input.InstitutionID == uuid.Nil {
		return nil, apierr.Validationf("institution scope is required")
	}
	if input.UploaderID == uuid.Nil {
		return nil, apierr.Validationf("uploader is required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.Validationf("title must not be empty")
	}
	if !catalog.IsValidType(input.Type) {
		return nil, apierr.Validationf("unknown resource type %q", input.Type)
	}
	if !catalog.IsValidLevel(input.Level) {
		return nil, apierr.Validationf("unknown level %d", input.Level)
	}
	code := strings.TrimSpace(input.CourseCode)
	if code == "" {
		return nil, apierr.Validationf("course code must not be empty")
	}

	dept, err := s.resolver.ResolveSelection(ctx, input.InstitutionID, input.Department)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.CreateOrFetch(ctx, nil, &types.Course{
		InstitutionID: input.InstitutionID,
		DepartmentID:  dept.ID,
		Code:          code,
		Title:         strings.TrimSpace(input.CourseTitle),
		Level:         input.Level,
	})
	if err != nil {
		return nil, apierr.Store(err)
	}

	created, err := s.resources.Create(ctx, nil, []*types.Resource{{
		InstitutionID: input.InstitutionID,
		DepartmentID:  dept.ID,
		CourseID:      course.ID,
		UploaderID:    input.UploaderID,
		Title:         title,
		Type:          input.Type,
		Level:         input.Level,
		Session:       strings.TrimSpace(input.Session),
		FileURL:       strings.TrimSpace(input.FileURL),
	}})
	if err != nil {
		return nil, apierr.Store(err)
	}
	resource := created[0]
	resource.Course = course

	s.notifier.ResourceChanged(ctx, resource.InstitutionID, resource.ID)
	return resource, nil
}

func (s *directoryService) GetResource(ctx context.Context, id uuid.UUID) (*types.Resource, error) {
	found, err := s.resources.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apierr.Store(err)
	}
	if len(found) == 0 {
		return nil, apierr.NotFoundf("resource %s not found", id)
	}
	return found[0], nil
}

func (s *directoryService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	err := s.resources.SetVerified(ctx, nil, id, verified)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.NotFoundf("resource %s not found", id)
	}
	if err != nil {
		return apierr.Store(err)
	}

	resource, err := s.GetResource(ctx, id)
	if err == nil {
		s.notifier.ResourceChanged(ctx, resource.InstitutionID, resource.ID)
	}
	return nil
}

func (s *directoryService) UpdateType(ctx context.Context, id uuid.UUID, resourceType string) error {
	if !catalog.IsValidType(resourceType) {
		return apierr.Validationf("unknown resource type %q", resourceType)
	}

	err := s.resources.UpdateType(ctx, nil, id, resourceType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierr.NotFoundf("resource %s not found", id)
	}
	if err != nil {
		return apierr.Store(err)
	}

	resource, err := s.GetResource(ctx, id)
	if err == nil {
		s.notifier.ResourceChanged(ctx, resource.InstitutionID, resource.ID)
	}
	return nil
}

func (s *directoryService) DeleteResource(ctx context.Context, id uuid.UUID, viewer *requestdata.RequestData) error {
	resource, err := s.GetResource(ctx, id)
	if err != nil {
		return err
	}
	if viewer == nil || (!viewer.Moderator && viewer.UserID != resource.UploaderID) {
		return apierr.Conflictf("only the uploader or a moderator may delete a resource")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments, err := s.comments.ListByResource(ctx, tx, id)
		if err != nil {
			return err
		}
		commentIDs := make([]uuid.UUID, 0, len(comments))
		for _, c := range comments {
			commentIDs = append(commentIDs, c.ID)
		}
		if err := s.votes.DeleteCommentVotesByCommentIDs(ctx, tx, commentIDs); err != nil {
			return err
		}
		if err := s.comments.DeleteByResourceIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		if err := s.votes.DeleteVotesByResourceIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.resources.DeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apierr.Store(err)
	}

	s.notifier.ResourceChanged(ctx, resource.InstitutionID, resource.ID)
	return nil
}

func (s *directoryService) ListComments(ctx context.Context, resourceID uuid.UUID) ([]*types.Comment, error) {
	if _, err := s.GetResource(ctx, resourceID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByResource(ctx, nil, resourceID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return comments, nil
}

func (s *directoryService) AddComment(ctx context.Context, resourceID, authorID uuid.UUID, body string) (*types.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apierr.Validationf("comment body must not be empty")
	}

	resource, err := s.GetResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, nil, []*types.Comment{{
		ResourceID: resourceID,
		AuthorID:   authorID,
		Body:       body,
	}})
	if err != nil {
		return nil, apierr.Store(err)
	}

	s.notifier.ResourceChanged(ctx, resource.InstitutionID, resource.ID)
	return created[0], nil
}
