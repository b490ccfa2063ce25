package domain

import (
	"github.com/campushare/campushare-backend/internal/domain/catalog"
	"github.com/campushare/campushare-backend/internal/domain/engagement"
	"github.com/campushare/campushare-backend/internal/domain/moderation"
	"github.com/campushare/campushare-backend/internal/domain/reputation"
	"github.com/campushare/campushare-backend/internal/domain/tenant"
)

type Institution = tenant.Institution
type Department = tenant.Department

type Course = catalog.Course
type Resource = catalog.Resource

type Comment = engagement.Comment
type ResourceVote = engagement.ResourceVote
type CommentVote = engagement.CommentVote

type Report = moderation.Report
type ResourceSnapshot = moderation.ResourceSnapshot

type ContributorScore = reputation.ContributorScore
type ScoreWeights = reputation.Weights

const (
	DepartmentOriginLocal  = tenant.OriginLocal
	DepartmentOriginGlobal = tenant.OriginGlobal

	ResourceTypeLectureNote  = catalog.TypeLectureNote
	ResourceTypePastQuestion = catalog.TypePastQuestion
	ResourceTypeTextbook     = catalog.TypeTextbook
	ResourceTypeAssignment   = catalog.TypeAssignment

	ReportStatusPending  = moderation.StatusPending
	ReportStatusResolved = moderation.StatusResolved
	ReportStatusRejected = moderation.StatusRejected
)
