package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	tenantrepo "github.com/campushare/campushare-backend/internal/data/repos/tenant"
	"github.com/campushare/campushare-backend/internal/data/repos/testutil"
	"github.com/campushare/campushare-backend/internal/pkg/apierr"
	"github.com/campushare/campushare-backend/internal/services"
)

func newDepartmentService(t *testing.T) services.DepartmentService {
	t.Helper()
	db := testutil.DB(t)
	return services.NewDepartmentService(db, tenantrepo.NewDepartmentRepo(db, testutil.Logger(t)), testutil.Logger(t))
}

func TestListCandidatesDeduplicatesGlobalSuggestions(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newDepartmentService(t)

	physics := "Physics-" + uuid.NewString()[:8]
	chemistry := "Chemistry-" + uuid.NewString()[:8]

	inst := testutil.SeedInstitution(t, ctx, db, "Candidates-"+uuid.NewString()[:8])
	local := testutil.SeedDepartment(t, ctx, db, testutil.PtrUUID(inst.ID), physics)
	testutil.SeedDepartment(t, ctx, db, nil, physics)
	globalChem := testutil.SeedDepartment(t, ctx, db, nil, chemistry)

	candidates, err := svc.ListCandidates(ctx, inst.ID)
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}

	var sawLocalPhysics, sawGlobalChem bool
	for _, c := range candidates {
		switch c.Department.ID {
		case local.ID:
			sawLocalPhysics = true
			if c.Origin != "local" {
				t.Fatalf("local department tagged %q", c.Origin)
			}
		case globalChem.ID:
			sawGlobalChem = true
			if c.Origin != "global" {
				t.Fatalf("global suggestion tagged %q", c.Origin)
			}
		}
		if c.Origin == "global" && c.Department.Name == physics {
			t.Fatalf("global suggestion shadowed by local name must be dropped")
		}
	}
	if !sawLocalPhysics || !sawGlobalChem {
		t.Fatalf("expected local physics and global chemistry in candidates")
	}
}

func TestResolveSelectionConvergesOnExistingLocal(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newDepartmentService(t)

	name := "Botany-" + uuid.NewString()[:8]
	inst := testutil.SeedInstitution(t, ctx, db, "Resolve-"+uuid.NewString()[:8])
	local := testutil.SeedDepartment(t, ctx, db, testutil.PtrUUID(inst.ID), name)

	// Typing the same name again lands on the same local row.
	resolved, err := svc.ResolveSelection(ctx, inst.ID, services.DepartmentSelection{Name: "  " + name + "  "})
	if err != nil {
		t.Fatalf("resolve by name: %v", err)
	}
	if resolved.ID != local.ID {
		t.Fatalf("resolving an existing name must return the existing row")
	}
}

func TestResolveSelectionMaterializesGlobalSuggestion(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newDepartmentService(t)

	name := "Geology-" + uuid.NewString()[:8]
	inst := testutil.SeedInstitution(t, ctx, db, "Materialize-"+uuid.NewString()[:8])
	global := testutil.SeedDepartment(t, ctx, db, nil, name)

	resolved, err := svc.ResolveSelection(ctx, inst.ID, services.DepartmentSelection{DepartmentID: testutil.PtrUUID(global.ID)})
	if err != nil {
		t.Fatalf("resolve global: %v", err)
	}
	if resolved.ID == global.ID {
		t.Fatalf("global suggestion must materialize as a new local department")
	}
	if resolved.InstitutionID == nil || *resolved.InstitutionID != inst.ID {
		t.Fatalf("materialized department must belong to the institution")
	}
	if resolved.Name != name {
		t.Fatalf("materialized department must keep the suggestion name")
	}

	// Resolving the suggestion again converges on the same local row.
	again, err := svc.ResolveSelection(ctx, inst.ID, services.DepartmentSelection{DepartmentID: testutil.PtrUUID(global.ID)})
	if err != nil {
		t.Fatalf("resolve global twice: %v", err)
	}
	if again.ID != resolved.ID {
		t.Fatalf("repeated resolution must converge, got %s then %s", resolved.ID, again.ID)
	}
}

func TestResolveSelectionRejectsEmptyName(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newDepartmentService(t)

	inst := testutil.SeedInstitution(t, ctx, db, "Empty-"+uuid.NewString()[:8])
	_, err := svc.ResolveSelection(ctx, inst.ID, services.DepartmentSelection{Name: "   "})
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveSelectionHidesForeignDepartments(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := newDepartmentService(t)

	instA := testutil.SeedInstitution(t, ctx, db, "Own-"+uuid.NewString()[:8])
	instB := testutil.SeedInstitution(t, ctx, db, "Foreign-"+uuid.NewString()[:8])
	foreign := testutil.SeedDepartment(t, ctx, db, testutil.PtrUUID(instB.ID), "Secret-"+uuid.NewString()[:8])

	_, err := svc.ResolveSelection(ctx, instA.ID, services.DepartmentSelection{DepartmentID: testutil.PtrUUID(foreign.ID)})
	if !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("expected not-found for another institution's department, got %v", err)
	}
}
