package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tenantrepo "github.com/campushare/campushare-backend/internal/data/repos/tenant"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

// DepartmentCandidate is one selectable entry in the upload flow, tagged with
// where the name came from.
type DepartmentCandidate struct {
	Department *types.Department `json:"department"`
	Origin     string            `json:"origin"`
}

// DepartmentSelection is a caller's pick: an existing candidate by id, or a
// free-typed name. Exactly one of the two is used; the id wins when both are
// set.
type DepartmentSelection struct {
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	Name         string     `json:"name,omitempty"`
}

type DepartmentService interface {
	// ListCandidates returns the institution's own departments first
	// (alphabetical), then global suggestions whose names are not already
	// taken locally, by exact case-sensitive match.
	ListCandidates(ctx context.Context, institutionID uuid.UUID) ([]DepartmentCandidate, error)
	// ResolveSelection turns a selection into a concrete local department,
	// creating one when needed. Picking a global suggestion, or typing a name
	// that already exists locally, converges on the existing local row; the
	// caller never sees a uniqueness conflict.
	ResolveSelection(ctx context.Context, institutionID uuid.UUID, sel DepartmentSelection) (*types.Department, error)
}

type departmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	departments tenantrepo.DepartmentRepo
}

func NewDepartmentService(db *gorm.DB, departments tenantrepo.DepartmentRepo, baseLog *logger.Logger) DepartmentService {
	return &departmentService{
		db:          db,
		log:         baseLog.With("service", "DepartmentService"),
		departments: departments,
	}
}

func (s *departmentService) ListCandidates(ctx context.Context, institutionID uuid.UUID) ([]DepartmentCandidate, error) {
	if institutionID == uuid.Nil {
		return nil, apierr.Validationf("institution id is required")
	}

	locals, err := s.departments.ListLocal(ctx, nil, institutionID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	globals, err := s.departments.ListGlobal(ctx, nil)
	if err != nil {
		return nil, apierr.Store(err)
	}

	localNames := make(map[string]bool, len(locals))
	candidates := make([]DepartmentCandidate, 0, len(locals)+len(globals))
	for _, d := range locals {
		localNames[d.Name] = true
		candidates = append(candidates, DepartmentCandidate{Department: d, Origin: types.DepartmentOriginLocal})
	}
	for _, d := range globals {
		if localNames[d.Name] {
			continue
		}
		candidates = append(candidates, DepartmentCandidate{Department: d, Origin: types.DepartmentOriginGlobal})
	}
	return candidates, nil
}

func (s *departmentService) ResolveSelection(ctx context.Context, institutionID uuid.UUID, sel DepartmentSelection) (*types.Department, error) {
	if institutionID == uuid.Nil {
		return nil, apierr.Validationf("institution id is required")
	}

	if sel.DepartmentID != nil {
		found, err := s.departments.GetByIDs(ctx, nil, []uuid.UUID{*sel.DepartmentID})
		if err != nil {
			return nil, apierr.Store(err)
		}
		if len(found) == 0 {
			return nil, apierr.NotFoundf("department %s not found", *sel.DepartmentID)
		}
		dept := found[0]

		if dept.IsGlobal() {
			// Selecting a suggestion materializes it as a local department.
			resolved, err := s.departments.CreateOrFetch(ctx, nil, institutionID, dept.Name)
			if err != nil {
				return nil, apierr.Store(err)
			}
			return resolved, nil
		}
		if *dept.InstitutionID != institutionID {
			// Another institution's department is invisible here.
			return nil, apierr.NotFoundf("department %s not found", *sel.DepartmentID)
		}
		return dept, nil
	}

	name := strings.TrimSpace(sel.Name)
	if name == "" {
		return nil, apierr.Validationf("department name must not be empty")
	}
	resolved, err := s.departments.CreateOrFetch(ctx, nil, institutionID, name)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return resolved, nil
}
