package services

import (
	types "github.com/campushare/campushare-backend/internal/domain"
	"github.com/campushare/campushare-backend/internal/requestdata"
)

// AffinityRanker reorders a directory page for the viewer: resources from the
// viewer's own department first, then other resources at the viewer's level,
// then the rest. The partition is stable, so within each bucket the store's
// sort order survives. Pure; no store access.
type AffinityRanker struct{}

func (AffinityRanker) Rank(resources []*types.Resource, viewer *requestdata.RequestData) []*types.Resource {
	if viewer == nil || (viewer.DepartmentID == nil && viewer.Level == nil) {
		return resources
	}

	department := make([]*types.Resource, 0, len(resources))
	level := make([]*types.Resource, 0)
	rest := make([]*types.Resource, 0)

	for _, r := range resources {
		switch {
		case viewer.DepartmentID != nil && r.DepartmentID == *viewer.DepartmentID:
			department = append(department, r)
		case viewer.Level != nil && r.Level == *viewer.Level:
			level = append(level, r)
		default:
			rest = append(rest, r)
		}
	}

	ranked := make([]*types.Resource, 0, len(resources))
	ranked = append(ranked, department...)
	ranked = append(ranked, level...)
	ranked = append(ranked, rest...)
	return ranked
}
