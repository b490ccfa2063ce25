package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campushare/campushare-backend/internal/data/repos/catalog"
	"github.com/campushare/campushare-backend/internal/data/repos/testutil"
	types "github.com/campushare/campushare-backend/internal/domain"
)

func TestListSortsNewestWithDeterministicTieBreak(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := catalog.NewResourceRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Sort-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "CS")
	course := testutil.SeedCourse(t, ctx, tx, inst.ID, dept.ID, "CSC101", 100)

	uploader := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := testutil.SeedResource(t, ctx, tx, course, uploader, "old", base)
	tiedA := testutil.SeedResource(t, ctx, tx, course, uploader, "tied-a", base.Add(time.Hour))
	tiedB := testutil.SeedResource(t, ctx, tx, course, uploader, "tied-b", base.Add(time.Hour))

	results, err := repo.List(ctx, tx, catalog.ResourceFilter{InstitutionID: inst.ID, Sort: catalog.SortNewest})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(results))
	}
	if results[2].ID != old.ID {
		t.Fatalf("oldest resource must come last")
	}

	// The tied pair must break by id descending.
	wantFirst, wantSecond := tiedA.ID, tiedB.ID
	if tiedB.ID.String() > tiedA.ID.String() {
		wantFirst, wantSecond = tiedB.ID, tiedA.ID
	}
	if results[0].ID != wantFirst || results[1].ID != wantSecond {
		t.Fatalf("tie not broken by id descending")
	}
}

func TestListSortsPopularByCount(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := catalog.NewResourceRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Popular-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "CS")
	course := testutil.SeedCourse(t, ctx, tx, inst.ID, dept.ID, "CSC102", 100)

	uploader := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	quiet := testutil.SeedResource(t, ctx, tx, course, uploader, "quiet", now)
	loved := testutil.SeedResource(t, ctx, tx, course, uploader, "loved", now.Add(-time.Hour))
	if err := tx.Model(&types.Resource{}).Where("id = ?", loved.ID).Update("upvotes_count", 5).Error; err != nil {
		t.Fatalf("bump upvotes: %v", err)
	}

	results, err := repo.List(ctx, tx, catalog.ResourceFilter{InstitutionID: inst.ID, Sort: catalog.SortPopular})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 2 || results[0].ID != loved.ID || results[1].ID != quiet.ID {
		t.Fatalf("popular sort must rank by upvotes before recency")
	}
}

func TestListDepartmentFilterIncludesGenEdCourses(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := catalog.NewResourceRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "GenEd-"+uuid.NewString()[:8])
	cs := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "CS")
	genStudies := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "General Studies")
	law := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "Law")

	csCourse := testutil.SeedCourse(t, ctx, tx, inst.ID, cs.ID, "CSC201", 200)
	gstCourse := testutil.SeedCourse(t, ctx, tx, inst.ID, genStudies.ID, "GST103", 100)
	lawCourse := testutil.SeedCourse(t, ctx, tx, inst.ID, law.ID, "LAW201", 200)

	uploader := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	csRes := testutil.SeedResource(t, ctx, tx, csCourse, uploader, "cs-notes", now)
	gstRes := testutil.SeedResource(t, ctx, tx, gstCourse, uploader, "gst-notes", now)
	lawRes := testutil.SeedResource(t, ctx, tx, lawCourse, uploader, "law-notes", now)

	results, err := repo.List(ctx, tx, catalog.ResourceFilter{
		InstitutionID: inst.ID,
		DepartmentID:  testutil.PtrUUID(cs.ID),
		GenEdPrefixes: []string{"GST", "GES"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	ids := map[uuid.UUID]bool{}
	for _, r := range results {
		ids[r.ID] = true
	}
	if !ids[csRes.ID] {
		t.Fatalf("own-department resource missing")
	}
	if !ids[gstRes.ID] {
		t.Fatalf("general-education resource must pass through the department filter")
	}
	if ids[lawRes.ID] {
		t.Fatalf("other-department resource leaked through the filter")
	}
}

func TestListFiltersByLevelSessionType(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := catalog.NewResourceRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Filter-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "CS")
	course100 := testutil.SeedCourse(t, ctx, tx, inst.ID, dept.ID, "CSC103", 100)
	course200 := testutil.SeedCourse(t, ctx, tx, inst.ID, dept.ID, "CSC203", 200)

	uploader := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	keep := testutil.SeedResource(t, ctx, tx, course100, uploader, "keep", now)
	testutil.SeedResource(t, ctx, tx, course200, uploader, "wrong-level", now)

	results, err := repo.List(ctx, tx, catalog.ResourceFilter{
		InstitutionID: inst.ID,
		Level:         testutil.PtrInt(100),
		Session:       testutil.PtrString("2025/2026"),
		Type:          testutil.PtrString(types.ResourceTypeLectureNote),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(results) != 1 || results[0].ID != keep.ID {
		t.Fatalf("expected only the level-100 lecture note, got %d rows", len(results))
	}
}

func TestSetVerifiedMissingResource(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := catalog.NewResourceRepo(db, testutil.Logger(t))

	err := repo.SetVerified(ctx, tx, uuid.New(), true)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}
