package services_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/data/repos/testutil"
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/requestdata"
	"github.com/campushare/campushare-backend/internal/services"
)

func TestRankPartitionsDepartmentThenLevel(t *testing.T) {
	dept := uuid.New()
	otherDept := uuid.New()

	other := &types.Resource{ID: uuid.New(), DepartmentID: otherDept, Level: 300}
	levelMatch := &types.Resource{ID: uuid.New(), DepartmentID: otherDept, Level: 200}
	deptMatch := &types.Resource{ID: uuid.New(), DepartmentID: dept, Level: 300}

	viewer := &requestdata.RequestData{
		DepartmentID: testutil.PtrUUID(dept),
		Level:        testutil.PtrInt(200),
	}

	var ranker services.AffinityRanker
	ranked := ranker.Rank([]*types.Resource{other, levelMatch, deptMatch}, viewer)

	if len(ranked) != 3 {
		t.Fatalf("rank must be a permutation, got %d of 3", len(ranked))
	}
	if ranked[0].ID != deptMatch.ID {
		t.Fatalf("department match must come first")
	}
	if ranked[1].ID != levelMatch.ID {
		t.Fatalf("level match must come second")
	}
	if ranked[2].ID != other.ID {
		t.Fatalf("unrelated resource must come last")
	}
}

func TestRankIsStableWithinBuckets(t *testing.T) {
	dept := uuid.New()
	a := &types.Resource{ID: uuid.New(), DepartmentID: dept, Level: 100}
	b := &types.Resource{ID: uuid.New(), DepartmentID: dept, Level: 100}
	c := &types.Resource{ID: uuid.New(), DepartmentID: dept, Level: 100}

	viewer := &requestdata.RequestData{DepartmentID: testutil.PtrUUID(dept)}

	var ranker services.AffinityRanker
	ranked := ranker.Rank([]*types.Resource{a, b, c}, viewer)

	if ranked[0].ID != a.ID || ranked[1].ID != b.ID || ranked[2].ID != c.ID {
		t.Fatalf("ranking must preserve input order within a bucket")
	}
}

func TestRankWithoutViewerProfileIsIdentity(t *testing.T) {
	in := []*types.Resource{
		{ID: uuid.New(), Level: 100},
		{ID: uuid.New(), Level: 200},
	}

	var ranker services.AffinityRanker
	for _, viewer := range []*requestdata.RequestData{nil, {}} {
		out := ranker.Rank(in, viewer)
		if len(out) != len(in) {
			t.Fatalf("expected identity, got %d rows", len(out))
		}
		for i := range in {
			if out[i].ID != in[i].ID {
				t.Fatalf("viewer without profile must not reorder")
			}
		}
	}
}
