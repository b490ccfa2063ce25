package app

import (
	"gorm.io/gorm"

	catalogrepo "github.com/campushare/campushare-backend/internal/data/repos/catalog"
	engagementrepo "github.com/campushare/campushare-backend/internal/data/repos/engagement"
	moderationrepo "github.com/campushare/campushare-backend/internal/data/repos/moderation"
	reputationrepo "github.com/campushare/campushare-backend/internal/data/repos/reputation"
	tenantrepo "github.com/campushare/campushare-backend/internal/data/repos/tenant"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

type Repos struct {
	Institution tenantrepo.InstitutionRepo
	Department  tenantrepo.DepartmentRepo
	Course      catalogrepo.CourseRepo
	Resource    catalogrepo.ResourceRepo
	Comment     engagementrepo.CommentRepo
	Vote        engagementrepo.VoteRepo
	Report      moderationrepo.ReportRepo
	Score       reputationrepo.ContributorScoreRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Institution: tenantrepo.NewInstitutionRepo(db, log),
		Department:  tenantrepo.NewDepartmentRepo(db, log),
		Course:      catalogrepo.NewCourseRepo(db, log),
		Resource:    catalogrepo.NewResourceRepo(db, log),
		Comment:     engagementrepo.NewCommentRepo(db, log),
		Vote:        engagementrepo.NewVoteRepo(db, log),
		Report:      moderationrepo.NewReportRepo(db, log),
		Score:       reputationrepo.NewContributorScoreRepo(db, log),
	}
}
