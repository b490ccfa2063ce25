package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushare/campushare-backend/internal/data/repos/testutil"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/requestdata"
	"github.com/campushare/campushare-backend/internal/services"
)

func TestQueryFailsClosedWithoutInstitution(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService(t)

	_, err := svc.Query(ctx, services.DirectoryQuery{})
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("unscoped query must be rejected, got %v", err)
	}
}

func TestQueryRejectsUnknownSortAndType(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newDirectoryService(t)
	inst := testutil.SeedInstitution(t, ctx, db, "Query-"+uuid.NewString()[:8])

	if _, err := svc.Query(ctx, services.DirectoryQuery{InstitutionID: inst.ID, Sort: "loudest"}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("unknown sort must be rejected, got %v", err)
	}
	bogus := "screencast"
	if _, err := svc.Query(ctx, services.DirectoryQuery{InstitutionID: inst.ID, Type: &bogus}); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("unknown type must be rejected, got %v", err)
	}
}

func TestCreateResourceLazilyCreatesTheCourse(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newDirectoryService(t)

	inst := testutil.SeedInstitution(t, ctx, db, "Lazy-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, db, testutil.PtrUUID(inst.ID), "CS")
	code := "CSC" + uuid.NewString()[:6]

	input := services.CreateResourceInput{
		InstitutionID: inst.ID,
		UploaderID:    uuid.New(),
		Department:    services.DepartmentSelection{DepartmentID: testutil.PtrUUID(dept.ID)},
		CourseCode:    code,
		CourseTitle:   "Operating Systems",
		Title:         "midterm past questions",
		Type:          types.ResourceTypePastQuestion,
		Level:         300,
		Session:       "2024/2025",
		FileURL:       "https://files.example/os-midterm.pdf",
	}

	first, err := svc.CreateResource(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Course == nil || first.Course.Code != code {
		t.Fatalf("resource must carry the freshly created course")
	}

	input.Title = "final past questions"
	second, err := svc.CreateResource(ctx, input)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.CourseID != first.CourseID {
		t.Fatalf("same course code must reuse the course row")
	}

	var courseCount int64
	db.Model(&types.Course{}).Where("institution_id = ? AND code = ?", inst.ID, code).Count(&courseCount)
	if courseCount != 1 {
		t.Fatalf("expected a single course row, got %d", courseCount)
	}
}

func TestCreateResourceValidatesInput(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newDirectoryService(t)

	inst := testutil.SeedInstitution(t, ctx, db, "Valid-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, db, testutil.PtrUUID(inst.ID), "CS")

	base := services.CreateResourceInput{
		InstitutionID: inst.ID,
		UploaderID:    uuid.New(),
		Department:    services.DepartmentSelection{DepartmentID: testutil.PtrUUID(dept.ID)},
		CourseCode:    "CSC101",
		Title:         "notes",
		Type:          types.ResourceTypeLectureNote,
		Level:         100,
	}

	blankTitle := base
	blankTitle.Title = "  "
	if _, err := svc.CreateResource(ctx, blankTitle); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("blank title must be rejected, got %v", err)
	}

	badLevel := base
	badLevel.Level = 150
	if _, err := svc.CreateResource(ctx, badLevel); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("off-scale level must be rejected, got %v", err)
	}

	blankCode := base
	blankCode.CourseCode = ""
	if _, err := svc.CreateResource(ctx, blankCode); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("blank course code must be rejected, got %v", err)
	}
}

func TestDeleteResourceChecksPermission(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newDirectoryService(t)
	res := seedModerationTarget(t, ctx)

	stranger := &requestdata.RequestData{UserID: uuid.New(), InstitutionID: res.InstitutionID}
	if err := svc.DeleteResource(ctx, res.ID, stranger); !apierr.IsKind(err, apierr.KindConflict) {
		t.Fatalf("a stranger must not delete, got %v", err)
	}

	moderator := &requestdata.RequestData{UserID: uuid.New(), InstitutionID: res.InstitutionID, Moderator: true}
	if err := svc.DeleteResource(ctx, res.ID, moderator); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
	if err := db.Where("id = ?", res.ID).First(&types.Resource{}).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("resource must be gone, got %v", err)
	}
}

func TestAddCommentRequiresBodyAndTarget(t *testing.T) {
	ctx := context.Background()
	svc := newDirectoryService(t)
	res := seedModerationTarget(t, ctx)

	if _, err := svc.AddComment(ctx, res.ID, uuid.New(), "   "); !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("blank comment must be rejected, got %v", err)
	}
	if _, err := svc.AddComment(ctx, uuid.New(), uuid.New(), "lost"); !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("comment on a missing resource must be not-found, got %v", err)
	}

	created, err := svc.AddComment(ctx, res.ID, uuid.New(), " helpful summary ")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if created.Body != "helpful summary" {
		t.Fatalf("comment body must be trimmed, got %q", created.Body)
	}
}
