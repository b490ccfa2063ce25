package reputation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/data/repos/reputation"
	"github.com/campushare/campushare-backend/internal/data/repos/testutil"
	types "github.com/campushare/campushare-backend/internal/domain"
)

func TestAggregateUploadsGroupsByUploader(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := reputation.NewContributorScoreRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Agg-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, tx, testutil.PtrUUID(inst.ID), "CS")
	course := testutil.SeedCourse(t, ctx, tx, inst.ID, dept.ID, "CSC401", 400)

	prolific := uuid.New()
	casual := uuid.New()
	now := time.Now().UTC()
	r1 := testutil.SeedResource(t, ctx, tx, course, prolific, "a", now)
	testutil.SeedResource(t, ctx, tx, course, prolific, "b", now)
	testutil.SeedResource(t, ctx, tx, course, casual, "c", now)
	if err := tx.Model(&types.Resource{}).Where("id = ?", r1.ID).Update("upvotes_count", 3).Error; err != nil {
		t.Fatalf("bump upvotes: %v", err)
	}

	rows, err := repo.AggregateUploads(ctx, tx, inst.ID)
	if err != nil {
		t.Fatalf("aggregate uploads: %v", err)
	}
	byUser := map[uuid.UUID]reputation.UploadAggregate{}
	for _, row := range rows {
		byUser[row.UserID] = row
	}
	if got := byUser[prolific]; got.UploadCount != 2 || got.ResourceUpvotes != 3 {
		t.Fatalf("prolific aggregate wrong: %+v", got)
	}
	if got := byUser[casual]; got.UploadCount != 1 || got.ResourceUpvotes != 0 {
		t.Fatalf("casual aggregate wrong: %+v", got)
	}
}

func TestUpsertAllReplacesExistingRows(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := reputation.NewContributorScoreRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Upsert-"+uuid.NewString()[:8])
	userID := uuid.New()

	first := &types.ContributorScore{
		UserID: userID, InstitutionID: inst.ID,
		UploadCount: 1, Score: 1, ComputedAt: time.Now().UTC(),
	}
	if err := repo.UpsertAll(ctx, tx, []*types.ContributorScore{first}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &types.ContributorScore{
		UserID: userID, InstitutionID: inst.ID,
		UploadCount: 4, ResourceUpvotes: 2, Score: 8, ComputedAt: time.Now().UTC(),
	}
	if err := repo.UpsertAll(ctx, tx, []*types.ContributorScore{second}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Get(ctx, tx, userID, inst.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UploadCount != 4 || got.Score != 8 {
		t.Fatalf("upsert did not replace the row: %+v", got)
	}
}

func TestListByInstitutionOrdersDeterministically(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := reputation.NewContributorScoreRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Order-"+uuid.NewString()[:8])
	now := time.Now().UTC()

	top := &types.ContributorScore{UserID: uuid.New(), InstitutionID: inst.ID, UploadCount: 1, Score: 10, ComputedAt: now}
	tiedBusy := &types.ContributorScore{UserID: uuid.New(), InstitutionID: inst.ID, UploadCount: 5, Score: 5, ComputedAt: now}
	tiedIdle := &types.ContributorScore{UserID: uuid.New(), InstitutionID: inst.ID, UploadCount: 2, Score: 5, ComputedAt: now}
	if err := repo.UpsertAll(ctx, tx, []*types.ContributorScore{tiedIdle, top, tiedBusy}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, err := repo.ListByInstitution(ctx, tx, inst.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].UserID != top.UserID {
		t.Fatalf("highest score must lead")
	}
	if rows[1].UserID != tiedBusy.UserID || rows[2].UserID != tiedIdle.UserID {
		t.Fatalf("score tie must break by upload count descending")
	}
}
