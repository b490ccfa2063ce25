package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	engagementrepo "github.com/campushare/campushare-backend/internal/data/repos/engagement"
	"github.com/campushare/campushare-backend/internal/data/repos/testutil"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/services"
)

func newVoteService(t *testing.T) services.VoteService {
	t.Helper()
	db := testutil.DB(t)
	return services.NewVoteService(db, engagementrepo.NewVoteRepo(db, testutil.Logger(t)), nil, testutil.Logger(t))
}

func seedVoteTarget(t *testing.T, ctx context.Context) *types.Resource {
	t.Helper()
	db := testutil.DB(t)
	inst := testutil.SeedInstitution(t, ctx, db, "Votes-"+uuid.NewString()[:8])
	dept := testutil.SeedDepartment(t, ctx, db, testutil.PtrUUID(inst.ID), "CS")
	course := testutil.SeedCourse(t, ctx, db, inst.ID, dept.ID, "CSC501", 500)
	return testutil.SeedResource(t, ctx, db, course, uuid.New(), "votable", time.Now().UTC())
}

func TestToggleResourceVoteIsAnInvolution(t *testing.T) {
	ctx := context.Background()
	svc := newVoteService(t)
	res := seedVoteTarget(t, ctx)
	voter := uuid.New()

	on, err := svc.ToggleResourceVote(ctx, voter, res.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !on.Voted || on.NewCount != 1 {
		t.Fatalf("first toggle: %+v", on)
	}

	off, err := svc.ToggleResourceVote(ctx, voter, res.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if off.Voted || off.NewCount != 0 {
		t.Fatalf("second toggle must restore original state: %+v", off)
	}
}

func TestToggleResourceVoteCountsDistinctVoters(t *testing.T) {
	ctx := context.Background()
	svc := newVoteService(t)
	res := seedVoteTarget(t, ctx)

	if _, err := svc.ToggleResourceVote(ctx, uuid.New(), res.ID); err != nil {
		t.Fatalf("first voter: %v", err)
	}
	second, err := svc.ToggleResourceVote(ctx, uuid.New(), res.ID)
	if err != nil {
		t.Fatalf("second voter: %v", err)
	}
	if second.NewCount != 2 {
		t.Fatalf("expected 2 votes, got %d", second.NewCount)
	}
}

func TestToggleResourceVoteMissingTarget(t *testing.T) {
	ctx := context.Background()
	svc := newVoteService(t)

	_, err := svc.ToggleResourceVote(ctx, uuid.New(), uuid.New())
	if !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestToggleCommentVoteKeepsCountInSync(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := newVoteService(t)
	res := seedVoteTarget(t, ctx)
	comment := testutil.SeedComment(t, ctx, db, res.ID, uuid.New(), "helpful note")
	voter := uuid.New()

	on, err := svc.ToggleCommentVote(ctx, voter, comment.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !on.Voted || on.NewCount != 1 {
		t.Fatalf("first toggle: %+v", on)
	}

	var persisted types.Comment
	if err := db.Where("id = ?", comment.ID).First(&persisted).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	if persisted.UpvotesCount != 1 {
		t.Fatalf("denormalized count out of sync: %d", persisted.UpvotesCount)
	}

	off, err := svc.ToggleCommentVote(ctx, voter, comment.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if off.Voted || off.NewCount != 0 {
		t.Fatalf("second toggle must remove the vote: %+v", off)
	}
}
